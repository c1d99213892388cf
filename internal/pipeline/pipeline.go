// Package pipeline turns a source picture into a round boot-logo icon set:
// a PNG preview at the first requested size and an ICO container holding
// every requested size.
package pipeline

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/raster"
	"github.com/xujz66666/Windows-Boot-Logo-Changer/internal/round"
)

// Defaults applied to zero-valued Options fields.
const (
	DefaultMinWidth    = 128
	DefaultMinHeight   = 128
	DefaultPreviewName = "boot_icon.png"
	DefaultIconName    = "boot_icon.ico"
)

// Options controls a conversion run.
type Options struct {
	Sizes       round.SizeSpec // required; Sizes[0] is the preview resolution
	Filter      string         // resampling filter name, see round.ParseFilter
	MinWidth    int            // smallest accepted source width
	MinHeight   int            // smallest accepted source height
	PreviewName string         // file name of the PNG preview inside the output dir
	IconName    string         // file name of the ICO container inside the output dir
}

// DefaultOptions returns Options with the Windows boot-logo size set.
func DefaultOptions() Options {
	return Options{
		Sizes:       append(round.SizeSpec(nil), round.DefaultSizes...),
		Filter:      round.DefaultFilter,
		MinWidth:    DefaultMinWidth,
		MinHeight:   DefaultMinHeight,
		PreviewName: DefaultPreviewName,
		IconName:    DefaultIconName,
	}
}

func (o Options) withDefaults() Options {
	if o.MinWidth == 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight == 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.PreviewName == "" {
		o.PreviewName = DefaultPreviewName
	}
	if o.IconName == "" {
		o.IconName = DefaultIconName
	}
	return o
}

// Result holds the output of a conversion.
type Result struct {
	PreviewPath string
	IconPath    string
	SrcWidth    int
	SrcHeight   int
	Sizes       round.SizeSpec // sizes stored in the icon, in order
}

// Info is the metadata Describe reports.
type Info = raster.ImageInfo

// Validate reports whether path holds a picture that decodes cleanly.
// It never returns an error and has no side effects.
func Validate(path string) bool {
	return raster.Verify(path) == nil
}

// Describe reads the dimensions, format and color mode of the picture at
// path without decoding its pixels.
func Describe(path string) (*Info, error) {
	info, err := raster.GetInfo(path)
	if err != nil {
		return nil, sourceError(path, err)
	}
	return info, nil
}

// Convert decodes the picture at path, renders one round icon per entry of
// opts.Sizes and writes the preview PNG and the ICO container into outputDir.
// outputDir must already exist. Nothing is written unless every size
// rendered and encoded successfully.
func Convert(path, outputDir string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if err := opts.Sizes.Validate(); err != nil {
		return nil, newError(ErrPipelineFailure, "", err, "invalid sizes")
	}
	filter, err := round.ParseFilter(opts.Filter)
	if err != nil {
		return nil, newError(ErrPipelineFailure, "", err, "invalid options")
	}

	// 1. Probe the header so undersized input fails before any decode work.
	info, err := raster.GetInfo(path)
	if err != nil {
		return nil, sourceError(path, err)
	}
	if info.Width < opts.MinWidth || info.Height < opts.MinHeight {
		return nil, newError(ErrImageTooSmall, path, nil,
			"%dx%d is below the %dx%d minimum, use at least 256x256",
			info.Width, info.Height, opts.MinWidth, opts.MinHeight)
	}
	if err := checkOutputDir(outputDir); err != nil {
		return nil, err
	}

	// 2. Decode and normalize to RGBA.
	decoded, err := raster.Decode(path)
	if err != nil {
		return nil, sourceError(path, err)
	}

	// 3. Resize and mask every size.
	icons, err := Render(decoded.Image, opts.Sizes, filter)
	if err != nil {
		return nil, err
	}

	// 4. Encode both artifacts in memory.
	previewData, err := raster.EncodePNG(icons[0])
	if err != nil {
		return nil, newError(ErrPipelineFailure, path, err, "encoding preview")
	}
	iconData, err := raster.EncodeICO(icons)
	if err != nil {
		return nil, newError(ErrPipelineFailure, path, err, "encoding icon")
	}

	// 5. Write.
	res := &Result{
		PreviewPath: filepath.Join(outputDir, opts.PreviewName),
		IconPath:    filepath.Join(outputDir, opts.IconName),
		SrcWidth:    info.Width,
		SrcHeight:   info.Height,
		Sizes:       append(round.SizeSpec(nil), opts.Sizes...),
	}
	if err := writeArtifact(res.PreviewPath, previewData); err != nil {
		return nil, err
	}
	if err := writeArtifact(res.IconPath, iconData); err != nil {
		return nil, err
	}
	return res, nil
}

// Render resizes img to every entry of sizes, in order, and applies the
// circular mask to each.
func Render(img image.Image, sizes round.SizeSpec, filter imaging.ResampleFilter) ([]*image.NRGBA, error) {
	if err := sizes.Validate(); err != nil {
		return nil, newError(ErrPipelineFailure, "", err, "invalid sizes")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, newError(ErrPipelineFailure, "", nil, "source image is empty")
	}
	icons := make([]*image.NRGBA, 0, len(sizes))
	for _, sz := range sizes {
		icons = append(icons, round.Icon(img, sz, filter))
	}
	return icons, nil
}

// Preview renders a single round icon of the given size from the picture at
// path. No minimum source size applies and nothing is written.
func Preview(path string, size round.Size, filterName string) (*image.NRGBA, error) {
	if size.Width < 1 || size.Height < 1 {
		return nil, newError(ErrPipelineFailure, "", nil, "invalid preview size %s", size)
	}
	filter, err := round.ParseFilter(filterName)
	if err != nil {
		return nil, newError(ErrPipelineFailure, "", err, "invalid options")
	}
	decoded, err := raster.Decode(path)
	if err != nil {
		return nil, sourceError(path, err)
	}
	return round.Icon(decoded.Image, size, filter), nil
}

func sourceError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return newError(ErrSourceNotFound, path, err, "")
	}
	return newError(ErrDecodeFailure, path, err, "")
}

func checkOutputDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return newError(ErrOutputUnwritable, dir, err, "")
	}
	if !st.IsDir() {
		return newError(ErrOutputUnwritable, dir, nil, "not a directory")
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return newError(ErrOutputUnwritable, path, err, "")
	}
	return nil
}

// String summarizes the result for logs.
func (r *Result) String() string {
	return fmt.Sprintf("%dx%d -> %s, %s [%s]", r.SrcWidth, r.SrcHeight, r.PreviewPath, r.IconPath, r.Sizes)
}
