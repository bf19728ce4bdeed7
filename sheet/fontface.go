package sheet

import (
	"fmt"
	"image"

	"github.com/zachomedia/go-bdf"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/monofont"
)

// FontFace adapts a golang.org/x/image/font.Face. Glyph IDs are the runes
// themselves.
type FontFace struct {
	face font.Face
	ppem int
	name string

	ascent  int
	descent int
}

// FromFontFace wraps face, which renders at ppem pixels per em.
func FromFontFace(face font.Face, ppem int, name string) *FontFace {
	m := face.Metrics()
	return &FontFace{
		face:    face,
		ppem:    ppem,
		name:    name,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}
}

// NewBDFFace parses a BDF bitmap font. Its pixel size is the font's
// ascent plus descent.
func NewBDFFace(data []byte) (*FontFace, error) {
	f, err := bdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: bdf: %w", ErrSourceUnreadable, err)
	}
	face := f.NewFace()
	m := face.Metrics()
	return FromFontFace(face, (m.Ascent + m.Descent).Ceil(), "BDF font"), nil
}

// Lookup implements Face.
func (f *FontFace) Lookup(r rune) (GlyphID, bool) {
	if _, ok := f.face.GlyphAdvance(r); !ok {
		return 0, false
	}
	return GlyphID(r), true
}

// Glyph implements Face.
func (f *FontFace) Glyph(id GlyphID) (*Glyph, error) {
	r := rune(id)
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, fmt.Errorf("face has no glyph for %q", r)
	}
	g := &Glyph{
		Offset:  dr.Min,
		Advance: advance.Round(),
		Ascent:  f.ascent,
		Descent: f.descent,
	}
	if dr.Empty() || mask == nil {
		g.Mask = monofont.NewBitmap(0, 0)
		return g, nil
	}
	alpha := image.NewAlpha(image.Rectangle{Max: dr.Size()})
	draw.Draw(alpha, alpha.Bounds(), mask, maskp, draw.Src)
	g.Mask = monofont.BitmapFromImage(alpha, inkThreshold)
	return g, nil
}

// PixelSize implements Face.
func (f *FontFace) PixelSize() int { return f.ppem }

// Name implements Face.
func (f *FontFace) Name() string { return f.name }
