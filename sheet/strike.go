package sheet

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"

	"github.com/gogpu/monofont"
)

// errNoImage is returned for glyphs the strike has no image for.
var errNoImage = errors.New("no image in strike")

// StrikeFace reads glyphs from an embedded bitmap strike (EBLC/EBDT), as
// found in OTB fonts. The strike must match the requested size exactly.
type StrikeFace struct {
	font      *font.Font
	subtables []tables.BitmapSubtable
	ebdt      []byte
	ppem      int
	name      string

	ascent  int
	descent int
}

// NewStrikeFace opens the strike of data drawn at ppem pixels per em.
func NewStrikeFace(data []byte, ppem int) (*StrikeFace, error) {
	if err := checkPixelSize(ppem); err != nil {
		return nil, err
	}
	ld, err := loadTables(data)
	if err != nil {
		return nil, err
	}
	if err := requireTables(ld, append(baseTables, "EBLC", "EBDT")...); err != nil {
		return nil, err
	}
	raw, err := ld.RawTable(ot.MustNewTag("EBLC"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	eblc, _, err := tables.ParseCBLC(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: EBLC: %w", ErrSourceUnreadable, err)
	}
	i, err := findStrike(eblc.BitmapSizes, ppem)
	if err != nil {
		return nil, err
	}
	ebdt, err := ld.RawTable(ot.MustNewTag("EBDT"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	fnt, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	strike := eblc.BitmapSizes[i]
	s := &StrikeFace{
		font:      fnt,
		subtables: eblc.IndexSubTables[i],
		ebdt:      ebdt,
		ppem:      ppem,
		name:      fmt.Sprintf("bitmap strike %d", ppem),
		ascent:    int(strike.Hori.Ascender),
		descent:   -int(strike.Hori.Descender),
	}
	if family := fnt.Describe().Family; family != "" {
		s.name = family + " " + strconv.Itoa(ppem) + "px"
	}
	return s, nil
}

// findStrike returns the index of the strike drawn at exactly ppem pixels.
func findStrike(sizes []tables.BitmapSize, ppem int) (int, error) {
	available := make([]string, 0, len(sizes))
	for i := range sizes {
		if int(sizes[i].PpemX) == ppem {
			return i, nil
		}
		available = append(available, strconv.Itoa(int(sizes[i].PpemX)))
	}
	return 0, fmt.Errorf("%w: unable to find strike with size %d. Available: %s",
		ErrInvalidSize, ppem, strings.Join(available, ", "))
}

// Lookup implements Face.
func (s *StrikeFace) Lookup(r rune) (GlyphID, bool) {
	gid, ok := s.font.NominalGlyph(r)
	if !ok || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// Glyph implements Face. Every glyph needs an image in the strike; images
// with a zero width or height are blank. The advance and placement come
// from the strike's own glyph metrics.
func (s *StrikeFace) Glyph(id GlyphID) (*Glyph, error) {
	img, err := s.image(id)
	if err != nil {
		return nil, fmt.Errorf("glyph %d in the %d pixel strike: %w", id, s.ppem, err)
	}
	return &Glyph{
		Mask:    img.mask,
		Offset:  image.Pt(int(img.metrics.BearingX), -int(img.metrics.BearingY)),
		Advance: int(img.metrics.Advance),
		Ascent:  s.ascent,
		Descent: s.descent,
	}, nil
}

type strikeImage struct {
	metrics tables.SmallGlyphMetrics
	mask    *monofont.Bitmap
}

// image locates and decodes the EBDT image of id.
func (s *StrikeFace) image(id GlyphID) (strikeImage, error) {
	if id > 0xffff {
		return strikeImage{}, errNoImage
	}
	gid := tables.GlyphID(id)
	for _, st := range s.subtables {
		if gid < st.FirstGlyph || gid > st.LastGlyph {
			continue
		}
		if int(st.ImageDataOffset) > len(s.ebdt) {
			return strikeImage{}, fmt.Errorf("image data offset %d beyond EBDT", st.ImageDataOffset)
		}
		data := s.ebdt[st.ImageDataOffset:]
		i := int(gid - st.FirstGlyph)

		switch idx := st.IndexData.(type) {
		case tables.IndexData1:
			return decodeWithMetrics(st.ImageFormat, data, int(idx.SbitOffsets[i]), int(idx.SbitOffsets[i+1]))
		case tables.IndexData3:
			return decodeWithMetrics(st.ImageFormat, data, int(idx.SbitOffsets[i]), int(idx.SbitOffsets[i+1]))
		case tables.IndexData4:
			pairs := idx.GlyphArray
			for j := 0; j+1 < len(pairs); j++ {
				if pairs[j].GlyphID == gid {
					return decodeWithMetrics(st.ImageFormat, data, int(pairs[j].SbitOffset), int(pairs[j+1].SbitOffset))
				}
			}
			return strikeImage{}, errNoImage
		case tables.IndexData2:
			size := int(idx.ImageSize)
			return decodeStandalone(st.ImageFormat, data, size*i, size*(i+1), idx.BigMetrics.SmallGlyphMetrics)
		case tables.IndexData5:
			j, found := slices.BinarySearch(idx.GlyphIdArray, gid)
			if !found {
				return strikeImage{}, errNoImage
			}
			size := int(idx.ImageSize)
			return decodeStandalone(st.ImageFormat, data, size*j, size*(j+1), idx.BigMetrics.SmallGlyphMetrics)
		default:
			return strikeImage{}, fmt.Errorf("unsupported index format %T", idx)
		}
	}
	return strikeImage{}, errNoImage
}

// decodeWithMetrics decodes image formats that start with small glyph
// metrics: 1 (byte-aligned rows) and 2 (bit-aligned rows).
func decodeWithMetrics(format uint16, data []byte, start, end int) (strikeImage, error) {
	if start == end {
		return strikeImage{}, errNoImage
	}
	if start > end || end > len(data) {
		return strikeImage{}, fmt.Errorf("image range [%d, %d) beyond EBDT", start, end)
	}
	if format != 1 && format != 2 {
		return strikeImage{}, fmt.Errorf("unsupported image format %d, want 1, 2 or 5", format)
	}
	d, _, err := tables.ParseBitmapData2(data[start:end])
	if err != nil {
		return strikeImage{}, err
	}
	w, h := int(d.Width), int(d.Height)
	var mask *monofont.Bitmap
	if format == 1 {
		mask, err = unpackRows(w, h, d.Image)
	} else {
		mask, err = unpackBits(w, h, d.Image)
	}
	if err != nil {
		return strikeImage{}, err
	}
	return strikeImage{metrics: d.SmallGlyphMetrics, mask: mask}, nil
}

// decodeStandalone decodes image format 5, bit-aligned data whose metrics
// live in the EBLC index.
func decodeStandalone(format uint16, data []byte, start, end int, m tables.SmallGlyphMetrics) (strikeImage, error) {
	if format != 5 {
		return strikeImage{}, fmt.Errorf("unsupported image format %d, want 1, 2 or 5", format)
	}
	if start > end || end > len(data) {
		return strikeImage{}, fmt.Errorf("image range [%d, %d) beyond EBDT", start, end)
	}
	mask, err := unpackBits(int(m.Width), int(m.Height), data[start:end])
	if err != nil {
		return strikeImage{}, err
	}
	return strikeImage{metrics: m, mask: mask}, nil
}

// unpackBits converts bit-aligned glyph data, rows packed back to back
// without padding, into a byte-aligned bitmap.
func unpackBits(width, height int, data []byte) (*monofont.Bitmap, error) {
	if width < 0 || height < 0 || len(data)*8 < width*height {
		return nil, fmt.Errorf("bitmap data too short for %dx%d", width, height)
	}
	b := monofont.NewBitmap(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bit := y*width + x
			if data[bit>>3]&(0x80>>(bit&7)) != 0 {
				b.SetBit(x, y, true)
			}
		}
	}
	return b, nil
}

// unpackRows converts byte-aligned glyph data, each row padded to a whole
// byte. Padding bits are dropped.
func unpackRows(width, height int, data []byte) (*monofont.Bitmap, error) {
	stride := monofont.BitmapStride(width)
	if width < 0 || height < 0 || len(data) < stride*height {
		return nil, fmt.Errorf("bitmap data too short for %dx%d", width, height)
	}
	b := monofont.NewBitmap(width, height)
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			if row[x>>3]&(0x80>>(x&7)) != 0 {
				b.SetBit(x, y, true)
			}
		}
	}
	return b, nil
}

// PixelSize implements Face.
func (s *StrikeFace) PixelSize() int { return s.ppem }

// Name implements Face.
func (s *StrikeFace) Name() string { return s.name }
