// Package monofont provides fixed-size monospace bitmap fonts packed into
// glyph sheets, and the arithmetic needed to draw from them.
//
// # Overview
//
// Every size variant stores the same 191 characters, printable ASCII
// (U+0020..U+007E) followed by the Latin-1 supplement (U+00A0..U+00FF), in
// one 1-bit image. The image is a grid of CharsPerRow columns by SheetRows
// rows of equally sized cells, in repertoire order, without padding.
//
// Looking a character up never fails. Characters outside the repertoire are
// drawn with the '?' glyph:
//
//	i := monofont.GlyphIndex('é')   // 168
//	r := f.GlyphRect(i)             // cell of 'é' inside f.Image
//
// # Drawing
//
// Draw composites a string onto any draw.Image, advancing by
// CharacterSize.X + CharacterSpacing per character and by CharacterSize.Y
// (plus an optional line spacing) per line:
//
//	f := fonts.Get(monofont.Size12Point)
//	dst := image.NewRGBA(image.Rect(0, 0, 200, 40))
//	monofont.Draw(dst, f, "Hello world!", image.Pt(2, 2), monofont.TextStyle{
//	    Color:     color.Black,
//	    Underline: true,
//	})
//
// Layout and Measure expose the same positions without drawing.
//
// # Producing sheets
//
// Sheets are generated offline by package sheet from a TrueType, OpenType
// bitmap (OTB) or BDF source font, written out by package export, and loaded
// back with NewFont from the raw blob plus its Metrics. Package fonts builds
// one variant per Size from the embedded Go Mono font on first use.
//
// # Coordinate System
//
// Origin (0,0) at the top-left, X grows right, Y grows down. Decoration
// offsets and the baseline are measured from the top of a cell.
package monofont
