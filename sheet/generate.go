package sheet

import (
	"fmt"
	"image"
	"unicode"

	"github.com/gogpu/monofont"
)

// WarningKind classifies non-fatal generation findings.
type WarningKind int

const (
	// WarnClipped means part of the glyph fell outside its cell.
	WarnClipped WarningKind = iota + 1
	// WarnBlank means a visible character rendered without any ink.
	WarnBlank
)

// String returns the string representation of the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnClipped:
		return "clipped"
	case WarnBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Warning is a glyph that was generated but may not look right.
type Warning struct {
	Rune rune
	Kind WarningKind

	// Pixels is the number of ink pixels lost to clipping.
	Pixels int
}

func (w Warning) String() string {
	if w.Kind == WarnClipped {
		return fmt.Sprintf("%q (%U): %s, %d pixels lost", w.Rune, w.Rune, w.Kind, w.Pixels)
	}
	return fmt.Sprintf("%q (%U): %s", w.Rune, w.Rune, w.Kind)
}

// Generate rasterizes repertoire from face into a packed glyph sheet.
// A nil repertoire means monofont.Repertoire().
//
// The space glyph defines the cell: its advance is the cell width (unless
// overridden for the face's pixel size) and the face's ascent plus descent
// is the cell height, with the baseline at the ascent. Every glyph is
// placed in its cell relative to that baseline and clipped to the cell.
//
// Generation is all or nothing: if any character cannot be resolved or
// rasterized, no font is returned.
func Generate(face Face, repertoire []rune, opts Options) (*monofont.Font, []Warning, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	ppem := face.PixelSize()
	if ppem < MinPixelSize || ppem > MaxPixelSize {
		return nil, nil, fmt.Errorf("%w: %d pixels per em, want [%d, %d]", ErrInvalidSize, ppem, MinPixelSize, MaxPixelSize)
	}
	if repertoire == nil {
		repertoire = monofont.Repertoire()
	}
	if len(repertoire) != monofont.RepertoireSize {
		return nil, nil, fmt.Errorf("sheet: repertoire has %d characters, want %d", len(repertoire), monofont.RepertoireSize)
	}

	log := monofont.Logger().With("face", face.Name(), "ppem", ppem)

	ids := make([]GlyphID, len(repertoire))
	for i, r := range repertoire {
		id, ok := face.Lookup(r)
		if !ok {
			return nil, nil, &GlyphUnavailableError{Rune: r}
		}
		ids[i] = id
	}

	spaceID, ok := face.Lookup(' ')
	if !ok {
		return nil, nil, &GlyphUnavailableError{Rune: ' '}
	}
	space, err := face.Glyph(spaceID)
	if err != nil {
		return nil, nil, &GlyphUnavailableError{Rune: ' ', Err: err}
	}

	cell := image.Pt(opts.advance(ppem, space.Advance), space.Ascent+space.Descent)
	baseline := space.Ascent
	if cell.X <= 0 || cell.Y <= 0 || baseline < 0 || baseline > cell.Y {
		return nil, nil, fmt.Errorf("%w: cell %dx%d with baseline %d at %d pixels per em",
			ErrInvalidSize, cell.X, cell.Y, baseline, ppem)
	}
	if cell.X != space.Advance {
		log.Debug("advance override applied", "reported", space.Advance, "used", cell.X)
	}

	size := monofont.SheetSize(cell)
	img := monofont.NewBitmap(size.X, size.Y)

	var warnings []Warning
	for i, id := range ids {
		r := repertoire[i]
		g := space
		if id != spaceID {
			g, err = face.Glyph(id)
			if err != nil {
				return nil, nil, &GlyphUnavailableError{Rune: r, Err: err}
			}
		}
		ink, lost := composite(img, monofont.CellRect(i, cell), baseline, g)
		if lost > 0 {
			warnings = append(warnings, Warning{Rune: r, Kind: WarnClipped, Pixels: lost})
		} else if ink == 0 && unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			warnings = append(warnings, Warning{Rune: r, Kind: WarnBlank})
		}
	}

	m := monofont.Metrics{
		CharacterSize:    cell,
		CharacterSpacing: opts.Spacing,
		Baseline:         baseline,
	}
	m.Underline, m.Strikethrough = Decorations(cell, baseline)
	if opts.Underline.Thickness > 0 {
		m.Underline = opts.Underline
	}
	if opts.Strikethrough.Thickness > 0 {
		m.Strikethrough = opts.Strikethrough
	}

	f := &monofont.Font{Metrics: m, Image: img}
	if err := f.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	for _, w := range warnings {
		log.Warn("glyph", "detail", w.String())
	}
	log.Info("sheet generated", "cell", fmt.Sprintf("%dx%d", cell.X, cell.Y), "baseline", baseline, "warnings", len(warnings))
	return f, warnings, nil
}

// composite copies the ink of g into cell, with the pen at the cell's left
// edge on the baseline. It returns the ink pixels kept and those clipped.
func composite(dst *monofont.Bitmap, cell image.Rectangle, baseline int, g *Glyph) (ink, lost int) {
	if g.Mask == nil {
		return 0, 0
	}
	origin := cell.Min.Add(image.Pt(0, baseline)).Add(g.Offset)
	for y := 0; y < g.Mask.Height(); y++ {
		for x := 0; x < g.Mask.Width(); x++ {
			if !g.Mask.Bit(x, y) {
				continue
			}
			p := origin.Add(image.Pt(x, y))
			if !p.In(cell) {
				lost++
				continue
			}
			dst.SetBit(p.X, p.Y, true)
			ink++
		}
	}
	return ink, lost
}
