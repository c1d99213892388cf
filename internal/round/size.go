package round

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxDimension is the largest edge an ICO directory entry can describe.
const MaxDimension = 256

// Size is one target resolution in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// SizeSpec is the ordered list of resolutions one conversion produces.
// The first entry is the preview resolution.
type SizeSpec []Size

// DefaultSizes is the set Windows uses for the boot logo icon group,
// largest first.
var DefaultSizes = SizeSpec{
	{256, 256},
	{128, 128},
	{64, 64},
	{48, 48},
	{32, 32},
	{16, 16},
}

// Preview returns the entry used for the flat preview file.
func (s SizeSpec) Preview() Size {
	return s[0]
}

// Validate checks that s is non-empty, every edge is in 1..MaxDimension and
// no resolution appears twice.
func (s SizeSpec) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("size list is empty")
	}
	seen := make(map[Size]bool, len(s))
	for i, sz := range s {
		if sz.Width < 1 || sz.Height < 1 {
			return fmt.Errorf("size #%d (%s): dimensions must be positive", i+1, sz)
		}
		if sz.Width > MaxDimension || sz.Height > MaxDimension {
			return fmt.Errorf("size #%d (%s): icon entries are limited to %dx%d", i+1, sz, MaxDimension, MaxDimension)
		}
		if seen[sz] {
			return fmt.Errorf("size #%d (%s): duplicate entry", i+1, sz)
		}
		seen[sz] = true
	}
	return nil
}

// Equal reports whether s and o list the same sizes in the same order.
func (s SizeSpec) Equal(o SizeSpec) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s SizeSpec) String() string {
	parts := make([]string, len(s))
	for i, sz := range s {
		parts[i] = sz.String()
	}
	return strings.Join(parts, ",")
}

// ParseSize accepts "WxH" or a bare "N" meaning NxN.
func ParseSize(v string) (Size, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	w, h, found := strings.Cut(v, "x")
	if !found {
		h = w
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", v, err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Size{}, fmt.Errorf("invalid size %q: %w", v, err)
	}
	if width < 1 || height < 1 {
		return Size{}, fmt.Errorf("invalid size %q: dimensions must be positive", v)
	}
	return Size{Width: width, Height: height}, nil
}

// ParseSizeSpec parses each value with ParseSize, keeping order.
func ParseSizeSpec(values []string) (SizeSpec, error) {
	spec := make(SizeSpec, 0, len(values))
	for _, v := range values {
		sz, err := ParseSize(v)
		if err != nil {
			return nil, err
		}
		spec = append(spec, sz)
	}
	return spec, nil
}
