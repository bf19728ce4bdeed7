package sheet

import (
	"image"

	"github.com/gogpu/monofont"
)

// GlyphID identifies a glyph within a Face.
type GlyphID uint32

// Glyph is a rasterized glyph with its placement.
type Glyph struct {
	// Mask holds the glyph pixels. It may be empty for blank glyphs.
	Mask *monofont.Bitmap

	// Offset is the position of the top-left of Mask relative to the pen
	// position on the baseline. Y grows down, so glyph parts above the
	// baseline have a negative Y.
	Offset image.Point

	// Advance is the horizontal advance in pixels.
	Advance int

	// Ascent and Descent are the line metrics of the face at this size,
	// both positive, measured up and down from the baseline.
	Ascent  int
	Descent int
}

// Bounds returns the glyph pixels relative to the pen position.
func (g *Glyph) Bounds() image.Rectangle {
	if g.Mask == nil {
		return image.Rectangle{Min: g.Offset, Max: g.Offset}
	}
	return g.Mask.Bounds().Add(g.Offset)
}

// Face is a source font at one pixel size.
//
// Implementations need not be safe for concurrent use; Generate
// serializes calls into a Face.
type Face interface {
	// Lookup resolves a character to a glyph.
	Lookup(r rune) (GlyphID, bool)

	// Glyph rasterizes a glyph to a 1-bit mask.
	Glyph(id GlyphID) (*Glyph, error)

	// PixelSize returns the pixels per em the face renders at.
	PixelSize() int

	// Name returns a human readable name for logs and reports.
	Name() string
}
