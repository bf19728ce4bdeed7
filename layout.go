package monofont

import "image"

// LayoutOptions configures multi-line layout.
type LayoutOptions struct {
	// LineSpacing is the number of extra pixels between lines.
	LineSpacing int
}

// Placement is one laid out character.
type Placement struct {
	Rune rune

	// Index is the glyph index of Rune, FallbackIndex for unsupported
	// characters.
	Index int

	// Src is the glyph cell within the sheet.
	Src image.Rectangle

	// Dst is the top-left corner of the cell on the destination.
	Dst image.Point
}

// Layout positions every character of text, left to right and top to
// bottom, starting with the top-left of the first cell at origin.
// A '\n' starts a new line; '\r' is ignored. There is no wrapping.
func Layout(f *Font, text string, origin image.Point, opts LayoutOptions) []Placement {
	out := make([]Placement, 0, len(text))
	pos := origin
	for _, r := range text {
		switch r {
		case '\n':
			pos.X = origin.X
			pos.Y += f.lineHeight(opts)
			continue
		case '\r':
			continue
		}
		i := GlyphIndex(r)
		out = append(out, Placement{
			Rune:  r,
			Index: i,
			Src:   f.GlyphRect(i),
			Dst:   pos,
		})
		pos.X += f.Advance()
	}
	return out
}

// Cursor returns the position following the last character of text laid
// out from origin.
func Cursor(f *Font, text string, origin image.Point, opts LayoutOptions) image.Point {
	pos := origin
	for _, r := range text {
		switch r {
		case '\n':
			pos.X = origin.X
			pos.Y += f.lineHeight(opts)
		case '\r':
		default:
			pos.X += f.Advance()
		}
	}
	return pos
}

// Measure returns the size of the box covering text laid out with opts.
// Spacing is counted between characters but not after the last one.
func Measure(f *Font, text string, opts LayoutOptions) image.Point {
	if text == "" {
		return image.Point{}
	}
	var width, cols, lines int
	lines = 1
	for _, r := range text {
		switch r {
		case '\n':
			width = max(width, lineWidth(f, cols))
			cols = 0
			lines++
		case '\r':
		default:
			cols++
		}
	}
	width = max(width, lineWidth(f, cols))
	height := lines*f.CharacterSize.Y + (lines-1)*opts.LineSpacing
	return image.Pt(width, height)
}

func lineWidth(f *Font, cols int) int {
	if cols == 0 {
		return 0
	}
	return cols*f.CharacterSize.X + (cols-1)*f.CharacterSpacing
}

func (f *Font) lineHeight(opts LayoutOptions) int {
	return f.CharacterSize.Y + opts.LineSpacing
}
