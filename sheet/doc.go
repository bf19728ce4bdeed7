// Package sheet builds monofont glyph sheets from source fonts.
//
// A Face is a source font opened at one pixel size. Three backends are
// provided:
//
//   - StrikeFace reads 1-bit embedded bitmap strikes (EBLC/EBDT), the
//     format of OTB bitmap fonts. The strike must exist at exactly the
//     requested size and hold an image for every glyph drawn.
//   - OutlineFace rasterizes TrueType or CFF outlines without
//     anti-aliasing.
//   - FontFace wraps any golang.org/x/image/font.Face, including BDF fonts
//     through NewBDFFace.
//
// Open picks the backend from the font data.
//
// Generate lays out the whole repertoire on the 32 column grid and
// returns the variant together with warnings for clipped or blank glyphs:
//
//	face, err := sheet.Open(data, 16)
//	if err != nil {
//		return err
//	}
//	opts := sheet.DefaultOptions()
//	opts.AdvanceOverrides = sheet.ProFontAdvanceOverrides // ProFont only
//	f, warnings, err := sheet.Generate(face, nil, opts)
//
// Errors match ErrSourceUnreadable, ErrRequiredTableMissing,
// ErrInvalidSize or ErrGlyphUnavailable with errors.Is.
package sheet
