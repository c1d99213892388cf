// Package raster decodes source pictures and encodes the PNG and ICO
// artifacts. Decoders for JPEG, PNG, GIF, BMP, TIFF, WebP and ICO are
// registered on import.
package raster

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo contains metadata read from an image header.
type ImageInfo struct {
	Width     int
	Height    int
	Format    string // decoder name: "jpeg", "png", "bmp", "ico", ...
	ColorMode string
}

// GetInfo reads image metadata without decoding the pixel data.
func GetInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readInfo(f)
}

func readInfo(r io.Reader) (*ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return &ImageInfo{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		ColorMode: ColorModeName(cfg.ColorModel),
	}, nil
}

// ColorModeName returns a short name for a color model.
func ColorModeName(m color.Model) string {
	if p, ok := m.(color.Palette); ok {
		return fmt.Sprintf("Paletted(%d)", len(p))
	}
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.NRGBAModel:
		return "NRGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	}
	return "Unknown"
}
