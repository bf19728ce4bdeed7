package monofont

import (
	"fmt"
	"strconv"
	"strings"
)

// Size selects one of the point sizes every font family in this module is
// produced in.
type Size uint8

// Supported sizes.
const (
	Size7Point Size = iota
	Size9Point
	Size10Point
	Size12Point
	Size14Point
	Size18Point
	Size24Point
)

type sizeInfo struct {
	point   int
	ppem    int
	spacing int
}

// sizes is indexed by Size. Pixel sizes assume 96 dpi.
var sizes = [...]sizeInfo{
	Size7Point:  {point: 7, ppem: 9, spacing: 0},
	Size9Point:  {point: 9, ppem: 12, spacing: 0},
	Size10Point: {point: 10, ppem: 13, spacing: 1},
	Size12Point: {point: 12, ppem: 16, spacing: 1},
	Size14Point: {point: 14, ppem: 19, spacing: 0},
	Size18Point: {point: 18, ppem: 24, spacing: 0},
	Size24Point: {point: 24, ppem: 32, spacing: 0},
}

// Sizes returns all sizes from smallest to largest.
func Sizes() []Size {
	out := make([]Size, len(sizes))
	for i := range out {
		out[i] = Size(i)
	}
	return out
}

// Valid reports whether s is one of the supported sizes.
func (s Size) Valid() bool {
	return int(s) < len(sizes)
}

// Point returns the size in typographic points.
func (s Size) Point() int {
	if !s.Valid() {
		return 0
	}
	return sizes[s].point
}

// PixelSize returns the pixels per em the size is rasterized at.
func (s Size) PixelSize() int {
	if !s.Valid() {
		return 0
	}
	return sizes[s].ppem
}

// Spacing returns the default character spacing for the size.
func (s Size) Spacing() int {
	if !s.Valid() {
		return 0
	}
	return sizes[s].spacing
}

// String returns the size as "12pt".
func (s Size) String() string {
	if !s.Valid() {
		return "Size(" + strconv.Itoa(int(s)) + ")"
	}
	return strconv.Itoa(sizes[s].point) + "pt"
}

// ParseSize parses a point size such as "12" or "12pt".
func ParseSize(text string) (Size, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(text), "pt"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSize, text)
	}
	for i, info := range sizes {
		if info.point == n {
			return Size(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %dpt", ErrUnknownSize, n)
}
