package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// EncodePNG encodes img as a single-frame PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeICO packs every raster into one ICO container, in the order given.
// Each entry is tagged with its own dimensions; 256x256 entries are stored as
// PNG, smaller ones as 32-bit BMP with an AND mask.
func EncodeICO(icons []*image.NRGBA) ([]byte, error) {
	if len(icons) == 0 {
		return nil, fmt.Errorf("ico encode: no images")
	}
	mm := make([]image.Image, len(icons))
	for i, m := range icons {
		mm[i] = m
	}
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, mm); err != nil {
		return nil, fmt.Errorf("ico encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeICO returns every entry stored in an ICO container, in directory order.
func DecodeICO(data []byte) ([]image.Image, error) {
	mm, err := ico.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ico decode: %w", err)
	}
	return mm, nil
}

// ReadICO reads and decodes the ICO container at path.
func ReadICO(path string) ([]image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeICO(data)
}
