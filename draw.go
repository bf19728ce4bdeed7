package monofont

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Baseline selects which part of the first line the draw position refers to.
type Baseline int

const (
	// BaselineTop places the top of the cells at the draw position.
	BaselineTop Baseline = iota
	// BaselineAlphabetic places the text baseline at the draw position.
	BaselineAlphabetic
	// BaselineBottom places the bottom of the cells at the draw position.
	BaselineBottom
)

// String returns the string representation of the baseline.
func (b Baseline) String() string {
	switch b {
	case BaselineTop:
		return "Top"
	case BaselineAlphabetic:
		return "Alphabetic"
	case BaselineBottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// TextStyle controls how Draw renders text.
type TextStyle struct {
	// Color of the glyphs and decorations. Nil means black.
	Color color.Color

	// Background fills each character box, spacing included, when non-nil.
	Background color.Color

	Underline     bool
	Strikethrough bool

	Baseline    Baseline
	LineSpacing int
}

// Draw renders text onto dst starting at pt and returns the position where
// the next character would be drawn, using the same baseline convention.
// Pixels outside dst are clipped.
func Draw(dst draw.Image, f *Font, text string, pt image.Point, style TextStyle) image.Point {
	fg := style.Color
	if fg == nil {
		fg = color.Black
	}
	src := image.NewUniform(fg)

	top := pt.Sub(image.Pt(0, style.offset(f)))
	opts := LayoutOptions{LineSpacing: style.LineSpacing}
	for _, p := range Layout(f, text, top, opts) {
		box := image.Rectangle{Min: p.Dst, Max: p.Dst.Add(image.Pt(f.Advance(), f.CharacterSize.Y))}
		if style.Background != nil {
			draw.Draw(dst, box, image.NewUniform(style.Background), image.Point{}, draw.Src)
		}
		cell := image.Rectangle{Min: p.Dst, Max: p.Dst.Add(f.CharacterSize)}
		draw.DrawMask(dst, cell, src, image.Point{}, f.Image, p.Src.Min, draw.Over)
		if style.Underline {
			drawLine(dst, box, f.Underline, src)
		}
		if style.Strikethrough {
			drawLine(dst, box, f.Strikethrough, src)
		}
	}
	return Cursor(f, text, top, opts).Add(image.Pt(0, style.offset(f)))
}

// offset is the distance from the top of a cell to the draw position.
func (s TextStyle) offset(f *Font) int {
	switch s.Baseline {
	case BaselineAlphabetic:
		return f.Baseline
	case BaselineBottom:
		return f.CharacterSize.Y
	default:
		return 0
	}
}

func drawLine(dst draw.Image, box image.Rectangle, d Decoration, src image.Image) {
	line := image.Rect(box.Min.X, box.Min.Y+d.Offset, box.Max.X, box.Min.Y+d.Offset+d.Thickness)
	draw.Draw(dst, line, src, image.Point{}, draw.Over)
}
