package pipeline

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/round"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeJPEG(t, dir, "good.jpg", 200, 150)
	if !Validate(good) {
		t.Error("Validate(good.jpg) = false")
	}

	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	if Validate(bad) {
		t.Error("Validate(bad.jpg) = true")
	}
	if Validate(filepath.Join(dir, "missing.png")) {
		t.Error("Validate(missing) = true")
	}
	if Validate(dir) {
		t.Error("Validate(directory) = true")
	}
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	info, err := Describe(writeJPEG(t, dir, "photo.jpg", 512, 384))
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.Width != 512 || info.Height != 384 || info.Format != "jpeg" || info.ColorMode != "YCbCr" {
		t.Errorf("unexpected info: %+v", info)
	}

	_, err = Describe(filepath.Join(dir, "nope.jpg"))
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("missing file: expected ErrSourceNotFound, got %v", err)
	}

	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Describe(text)
	if !errors.Is(err, ErrDecodeFailure) {
		t.Errorf("text file: expected ErrDecodeFailure, got %v", err)
	}
}

func TestRender(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	for i := range src.Pix {
		src.Pix[i] = 0xc0
	}
	sizes := round.SizeSpec{{Width: 256, Height: 256}, {Width: 64, Height: 32}, {Width: 16, Height: 16}}
	icons, err := Render(src, sizes, imaging.Lanczos)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(icons) != len(sizes) {
		t.Fatalf("got %d icons for %d sizes", len(icons), len(sizes))
	}
	for i, icon := range icons {
		b := icon.Bounds()
		if b.Dx() != sizes[i].Width || b.Dy() != sizes[i].Height {
			t.Errorf("icon %d is %v, expected %s", i, b, sizes[i])
		}
		checkRound(t, sizes[i].String(), icon)
	}

	if _, err := Render(src, nil, imaging.Lanczos); !errors.Is(err, ErrPipelineFailure) {
		t.Errorf("nil sizes: expected ErrPipelineFailure, got %v", err)
	}
	if _, err := Render(image.NewNRGBA(image.Rect(0, 0, 0, 0)), sizes, imaging.Lanczos); !errors.Is(err, ErrPipelineFailure) {
		t.Errorf("empty image: expected ErrPipelineFailure, got %v", err)
	}
}

func TestPreviewIgnoresMinimum(t *testing.T) {
	dir := t.TempDir()
	tiny := writePNG(t, dir, "tiny.png", 40, 40)

	icon, err := Preview(tiny, round.Size{Width: 100, Height: 100}, "")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if icon.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Errorf("preview bounds %v", icon.Bounds())
	}
	checkRound(t, "preview", icon)

	if _, err := Preview(filepath.Join(dir, "none.png"), round.Size{Width: 100, Height: 100}, ""); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
	if _, err := Preview(tiny, round.Size{}, ""); !errors.Is(err, ErrPipelineFailure) {
		t.Errorf("zero size: expected ErrPipelineFailure, got %v", err)
	}
}

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("disk on fire")
	err := newError(ErrOutputUnwritable, "/tmp/out", cause, "writing %s", "icon")
	msg := err.Error()
	for _, want := range []string{"output not writable", "/tmp/out", "writing icon", "disk on fire"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q lacks %q", msg, want)
		}
	}
	if !errors.Is(err, ErrOutputUnwritable) || !errors.Is(err, cause) {
		t.Error("errors.Is does not reach kind and cause")
	}
	if KindOf(err) != ErrOutputUnwritable {
		t.Errorf("KindOf = %v", KindOf(err))
	}
	if KindOf(cause) != nil {
		t.Error("KindOf on a foreign error should be nil")
	}

	bare := &Error{Kind: ErrImageTooSmall}
	if bare.Error() != "image too small" {
		t.Errorf("bare error = %q", bare.Error())
	}
}

func TestDefaultOptionsAreIndependent(t *testing.T) {
	a := DefaultOptions()
	a.Sizes[0] = round.Size{Width: 1, Height: 1}
	if round.DefaultSizes[0] != (round.Size{Width: 256, Height: 256}) {
		t.Fatal("DefaultOptions shares the DefaultSizes backing array")
	}
}
