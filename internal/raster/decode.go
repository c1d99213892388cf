package raster

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// Decoded is a source picture normalized to straight-alpha RGBA.
// Sources without an alpha channel come out fully opaque.
type Decoded struct {
	ImageInfo // header values of the source file
	Image     *image.NRGBA
}

// Decode reads the picture at path, applies any EXIF orientation and converts
// it to NRGBA. Errors from opening the file are returned unwrapped so callers
// can test them with errors.Is(err, fs.ErrNotExist).
func Decode(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := readInfo(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s data: %w", info.Format, err)
	}

	return &Decoded{
		ImageInfo: *info,
		Image:     imaging.Clone(img),
	}, nil
}

// Verify checks that the file at path has a readable header and that its
// pixel data decodes completely. The decoded pixels are discarded.
func Verify(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := readInfo(f); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", path, err)
	}
	if _, _, err := image.Decode(f); err != nil {
		return fmt.Errorf("decoding pixel data: %w", err)
	}
	return nil
}
