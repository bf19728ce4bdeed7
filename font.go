package monofont

import (
	"fmt"
	"image"
)

// Decoration is the geometry of a horizontal decoration line, in pixels
// relative to the top of a character cell.
type Decoration struct {
	Offset    int
	Thickness int
}

// Metrics holds the per-size constants that accompany a packed sheet.
type Metrics struct {
	// CharacterSize is the fixed cell size in pixels.
	CharacterSize image.Point

	// CharacterSpacing is the number of blank pixels drawn between
	// characters. It is not part of the cell.
	CharacterSpacing int

	// Baseline is the distance from the top of a cell to the baseline.
	Baseline int

	Underline     Decoration
	Strikethrough Decoration
}

// Font is one size variant: a packed glyph sheet plus its metrics.
// A Font is immutable once built and safe for concurrent use.
type Font struct {
	Metrics

	// Image is the glyph sheet, CharsPerRow cells wide and SheetRows cells
	// tall, with no padding between cells.
	Image *Bitmap
}

// SheetSize returns the sheet dimensions for a cell size.
func SheetSize(cell image.Point) image.Point {
	return image.Pt(cell.X*CharsPerRow, cell.Y*SheetRows)
}

// NewFont builds a font from packed sheet data and its metrics.
// The data is not copied.
func NewFont(raw []byte, m Metrics) (*Font, error) {
	size := SheetSize(m.CharacterSize)
	img, err := BitmapFromBytes(size.X, size.Y, raw)
	if err != nil {
		return nil, err
	}
	f := &Font{Metrics: m, Image: img}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustFont is like NewFont but panics on error. It is meant for package
// level variables holding embedded sheets.
func MustFont(raw []byte, m Metrics) *Font {
	f, err := NewFont(raw, m)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks that the sheet matches the cell size and that both
// decorations lie inside the cell.
func (f *Font) Validate() error {
	cell := f.CharacterSize
	if cell.X <= 0 || cell.Y <= 0 {
		return &FontError{Field: "CharacterSize", Reason: fmt.Sprintf("must be positive, got %dx%d", cell.X, cell.Y)}
	}
	if f.CharacterSpacing < 0 {
		return &FontError{Field: "CharacterSpacing", Reason: "must not be negative"}
	}
	if f.Baseline < 0 || f.Baseline > cell.Y {
		return &FontError{Field: "Baseline", Reason: fmt.Sprintf("must be in [0, %d]", cell.Y)}
	}
	if f.Image == nil {
		return &FontError{Field: "Image", Reason: "missing"}
	}
	want := SheetSize(cell)
	if f.Image.Width() != want.X || f.Image.Height() != want.Y {
		return &FontError{Field: "Image", Reason: fmt.Sprintf("is %dx%d, want %dx%d",
			f.Image.Width(), f.Image.Height(), want.X, want.Y)}
	}
	if err := checkDecoration("Underline", f.Underline, cell.Y); err != nil {
		return err
	}
	return checkDecoration("Strikethrough", f.Strikethrough, cell.Y)
}

func checkDecoration(field string, d Decoration, height int) error {
	if d.Thickness <= 0 {
		return &FontError{Field: field, Reason: "thickness must be positive"}
	}
	if d.Offset < 0 || d.Offset+d.Thickness > height {
		return &FontError{Field: field, Reason: fmt.Sprintf("line %d+%d is outside the cell height %d",
			d.Offset, d.Thickness, height)}
	}
	return nil
}

// GlyphRect returns the cell of a glyph index within the sheet.
// index must be in [0, RepertoireSize); GlyphIndex always returns such a value.
func (f *Font) GlyphRect(index int) image.Rectangle {
	return CellRect(index, f.CharacterSize)
}

// GlyphRectFor returns the sheet cell used to draw r.
func (f *Font) GlyphRectFor(r rune) image.Rectangle {
	return f.GlyphRect(GlyphIndex(r))
}

// CellRect returns the rectangle of cell index in a sheet of the given
// cell size.
func CellRect(index int, cell image.Point) image.Rectangle {
	col := index % CharsPerRow
	row := index / CharsPerRow
	origin := image.Pt(col*cell.X, row*cell.Y)
	return image.Rectangle{Min: origin, Max: origin.Add(cell)}
}

// Glyph returns a copy of the pixels used to draw r.
func (f *Font) Glyph(r rune) *Bitmap {
	return f.Image.SubBitmap(f.GlyphRectFor(r))
}

// Advance returns the horizontal distance between the origins of two
// consecutive characters.
func (f *Font) Advance() int {
	return f.CharacterSize.X + f.CharacterSpacing
}

// Descent returns the number of pixel rows below the baseline.
func (f *Font) Descent() int {
	return f.CharacterSize.Y - f.Baseline
}

// String describes the variant, for example "7x15 baseline 11".
func (f *Font) String() string {
	return fmt.Sprintf("%dx%d baseline %d", f.CharacterSize.X, f.CharacterSize.Y, f.Baseline)
}
