package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func writeJPEG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	return writeFile(t, "photo.jpg", buf.Bytes())
}

func TestGetInfoJPEG(t *testing.T) {
	path := writeJPEG(t, 320, 200)
	info, err := GetInfo(path)
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.Width != 320 || info.Height != 200 {
		t.Errorf("unexpected dimensions: %dx%d", info.Width, info.Height)
	}
	if info.Format != "jpeg" {
		t.Errorf("format = %q, expected jpeg", info.Format)
	}
	if info.ColorMode != "YCbCr" {
		t.Errorf("color mode = %q, expected YCbCr", info.ColorMode)
	}
}

func TestGetInfoBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, gradient(130, 140)); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	info, err := GetInfo(writeFile(t, "logo.bmp", buf.Bytes()))
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.Format != "bmp" || info.Width != 130 || info.Height != 140 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestGetInfoMissing(t *testing.T) {
	_, err := GetInfo(filepath.Join(t.TempDir(), "nope.png"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDecodeAddsOpaqueAlpha(t *testing.T) {
	dec, err := Decode(writeJPEG(t, 64, 32))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dec.Width != 64 || dec.Height != 32 {
		t.Errorf("unexpected native size %dx%d", dec.Width, dec.Height)
	}
	b := dec.Image.Bounds()
	if b.Dx() != 64 || b.Dy() != 32 {
		t.Fatalf("decoded bounds %v", b)
	}
	for i := 3; i < len(dec.Image.Pix); i += 4 {
		if dec.Image.Pix[i] != 0xff {
			t.Fatalf("alpha byte %d = %d, expected opaque", i, dec.Image.Pix[i])
		}
	}
}

func TestDecodeKeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src.SetNRGBA(3, 3, color.NRGBA{R: 200, A: 77})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	dec, err := Decode(writeFile(t, "alpha.png", buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := dec.Image.NRGBAAt(3, 3); got.A != 77 || got.R != 200 {
		t.Errorf("pixel (3,3) = %v, expected alpha preserved", got)
	}
	if dec.ColorMode != "NRGBA" {
		t.Errorf("color mode = %q, expected NRGBA", dec.ColorMode)
	}
}

func TestVerifyRejectsCorruptData(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(200, 200)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	full := buf.Bytes()

	if err := Verify(writeFile(t, "ok.png", full)); err != nil {
		t.Fatalf("Verify on valid PNG: %v", err)
	}

	// Header survives, pixel data does not.
	truncated := writeFile(t, "truncated.png", full[:len(full)/2])
	if err := Verify(truncated); err == nil {
		t.Error("expected Verify to fail on truncated PNG")
	}

	garbage := writeFile(t, "garbage.png", []byte("definitely not an image"))
	if err := Verify(garbage); err == nil {
		t.Error("expected Verify to fail on garbage")
	}
}

func TestEncodeICORoundTrip(t *testing.T) {
	sizes := []int{256, 48, 16}
	var icons []*image.NRGBA
	for _, n := range sizes {
		m := image.NewNRGBA(image.Rect(0, 0, n, n))
		for i := range m.Pix {
			m.Pix[i] = 0xff
		}
		icons = append(icons, m)
	}

	data, err := EncodeICO(icons)
	if err != nil {
		t.Fatalf("EncodeICO: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0, 0, 1, 0}) {
		t.Fatalf("missing ICO header: % x", data[:4])
	}

	mm, err := DecodeICO(data)
	if err != nil {
		t.Fatalf("DecodeICO: %v", err)
	}
	if len(mm) != len(sizes) {
		t.Fatalf("expected %d entries, got %d", len(sizes), len(mm))
	}
	for i, m := range mm {
		if m.Bounds().Dx() != sizes[i] || m.Bounds().Dy() != sizes[i] {
			t.Errorf("entry %d is %v, expected %dx%d", i, m.Bounds(), sizes[i], sizes[i])
		}
	}

	// The registered decoder picks the largest entry.
	info, err := readInfo(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readInfo on ICO: %v", err)
	}
	if info.Format != "ico" || info.Width != 256 {
		t.Errorf("unexpected ICO info: %+v", info)
	}
}

func TestEncodeICORejectsEmpty(t *testing.T) {
	if _, err := EncodeICO(nil); err == nil {
		t.Error("expected error for empty icon list")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(gradient(16, 16))
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.DecodeConfig: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}
