package round

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// DefaultFilter is the resampling filter used when none is named.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ParseFilter converts a filter name to an imaging resampling filter.
// The empty string selects DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if name == "" {
		name = DefaultFilter
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter: %q", name)
	}
	return f, nil
}

// FilterNames lists the names ParseFilter accepts.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resize scales the whole of img to exactly size, ignoring aspect ratio.
func Resize(img image.Image, size Size, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(img, size.Width, size.Height, filter)
}

// Mask returns a copy of img whose pixels outside the inscribed circle are
// fully transparent. The circle is centered and its diameter is the shorter
// edge. Pixels inside keep their color and alpha.
func Mask(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(dst, dst.Bounds(), img, b.Min, newCircle(b.Dx(), b.Dy()), image.Point{}, draw.Src)
	return dst
}

// Icon resizes img to size and applies the circular mask.
func Icon(img image.Image, size Size, filter imaging.ResampleFilter) *image.NRGBA {
	return Mask(Resize(img, size, filter))
}

// circle is a hard-edged alpha mask. A pixel belongs to the circle when its
// center lies within the radius.
type circle struct {
	w, h   int
	cx, cy float64
	r2     float64
}

func newCircle(w, h int) *circle {
	r := float64(min(w, h)) / 2
	return &circle{
		w:  w,
		h:  h,
		cx: float64(w) / 2,
		cy: float64(h) / 2,
		r2: r * r,
	}
}

func (c *circle) ColorModel() color.Model { return color.AlphaModel }

func (c *circle) Bounds() image.Rectangle { return image.Rect(0, 0, c.w, c.h) }

func (c *circle) At(x, y int) color.Color {
	if c.Inside(x, y) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// Inside reports whether pixel (x, y) is kept by the mask.
func (c *circle) Inside(x, y int) bool {
	dx := float64(x) + 0.5 - c.cx
	dy := float64(y) + 0.5 - c.cy
	return dx*dx+dy*dy <= c.r2
}
