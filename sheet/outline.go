package sheet

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/monofont"
)

// inkThreshold is the coverage from which an outline pixel becomes ink.
const inkThreshold = 0x80

// OutlineFace rasterizes TrueType or CFF outlines at a fixed pixel size,
// without hinting or anti-aliasing.
type OutlineFace struct {
	font  *sfnt.Font
	buf   sfnt.Buffer
	rast  *vector.Rasterizer
	ppem  int
	scale fixed.Int26_6
	name  string

	ascent  int
	descent int
}

// NewOutlineFace parses an outline font for rasterization at ppem pixels
// per em.
func NewOutlineFace(data []byte, ppem int) (*OutlineFace, error) {
	if err := checkPixelSize(ppem); err != nil {
		return nil, err
	}
	ld, err := loadTables(data)
	if err != nil {
		return nil, err
	}
	if err := requireTables(ld, append(baseTables, "hhea", "hmtx")...); err != nil {
		return nil, err
	}
	if !hasOutlines(ld) {
		return nil, &TableMissingError{Table: "glyf"}
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	face := &OutlineFace{
		font:  f,
		rast:  vector.NewRasterizer(0, 0),
		ppem:  ppem,
		scale: fixed.I(ppem),
	}
	m, err := f.Metrics(&face.buf, face.scale, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	face.ascent = m.Ascent.Ceil()
	face.descent = m.Descent.Ceil()

	face.name, err = f.Name(&face.buf, sfnt.NameIDFull)
	if err != nil || face.name == "" {
		face.name = "outline font"
	}
	return face, nil
}

// Lookup implements Face. Glyph 0 (.notdef) counts as missing.
func (f *OutlineFace) Lookup(r rune) (GlyphID, bool) {
	x, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil || x == 0 {
		return 0, false
	}
	return GlyphID(x), true
}

// Glyph implements Face.
func (f *OutlineFace) Glyph(id GlyphID) (*Glyph, error) {
	x := sfnt.GlyphIndex(id)

	// GlyphAdvance must run before LoadGlyph: the segments alias f.buf.
	advance, err := f.font.GlyphAdvance(&f.buf, x, f.scale, font.HintingNone)
	if err != nil {
		return nil, err
	}
	segments, err := f.font.LoadGlyph(&f.buf, x, f.scale, nil)
	if err != nil {
		return nil, err
	}

	b := segments.Bounds()
	dr := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	g := &Glyph{
		Offset:  dr.Min,
		Advance: advance.Round(),
		Ascent:  f.ascent,
		Descent: f.descent,
	}
	if dr.Empty() {
		g.Mask = monofont.NewBitmap(0, 0)
		return g, nil
	}

	biasX := -fixed.Int26_6(dr.Min.X << 6)
	biasY := -fixed.Int26_6(dr.Min.Y << 6)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X+biasX) / 64, float32(p.Y+biasY) / 64
	}

	f.rast.Reset(dr.Dx(), dr.Dy())
	f.rast.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			f.rast.MoveTo(pt(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			f.rast.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			ax, ay := pt(seg.Args[0])
			bx, by := pt(seg.Args[1])
			f.rast.QuadTo(ax, ay, bx, by)
		case sfnt.SegmentOpCubeTo:
			ax, ay := pt(seg.Args[0])
			bx, by := pt(seg.Args[1])
			cx, cy := pt(seg.Args[2])
			f.rast.CubeTo(ax, ay, bx, by, cx, cy)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	f.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	g.Mask = monofont.BitmapFromImage(mask, inkThreshold)
	return g, nil
}

// PixelSize implements Face.
func (f *OutlineFace) PixelSize() int { return f.ppem }

// Name implements Face.
func (f *OutlineFace) Name() string { return f.name }
