package sheet

import (
	"encoding/binary"
	"image"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/monofont"
)

// buildSFNT assembles a TrueType container around the given raw tables.
// Only the table directory is meaningful; checksums are left zero.
func buildSFNT(tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	header := 12 + 16*len(tags)
	out := make([]byte, header)
	binary.BigEndian.PutUint32(out[0:], 0x00010000)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))

	for i, tag := range tags {
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(tables[tag])))
		out = append(out, tables[tag]...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out
}

// eblcWithStrikes encodes an EBLC table listing strikes without any glyph
// index data.
func eblcWithStrikes(ppems ...int) []byte {
	b := make([]byte, 8+48*len(ppems))
	binary.BigEndian.PutUint16(b[0:], 2)
	binary.BigEndian.PutUint32(b[4:], uint32(len(ppems)))
	for i, ppem := range ppems {
		rec := b[8+48*i:]
		binary.BigEndian.PutUint32(rec[0:], uint32(len(b)))
		rec[16] = byte(ppem) - 2 // ascender
		rec[17] = 0xfe           // descender, -2
		rec[44] = byte(ppem)
		rec[45] = byte(ppem)
		rec[46] = 1
		rec[47] = 1
	}
	return b
}

func stub() []byte { return make([]byte, 8) }

// sfntTables splits an sfnt font into its raw tables.
func sfntTables(data []byte) map[string][]byte {
	n := int(binary.BigEndian.Uint16(data[4:]))
	out := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		rec := data[12+16*i:]
		off := binary.BigEndian.Uint32(rec[8:])
		length := binary.BigEndian.Uint32(rec[12:])
		out[string(rec[:4])] = data[off : off+length]
	}
	return out
}

// strikeGlyph is one glyph of a test strike. A nil art lists the glyph in
// the index without any image data.
type strikeGlyph struct {
	r        rune
	format   uint16
	bearingX int8
	bearingY int8
	advance  uint8
	art      []string
}

// artBitmap converts rows of '#' and '.' to a bitmap.
func artBitmap(art []string) *monofont.Bitmap {
	w := 0
	if len(art) > 0 {
		w = len(art[0])
	}
	b := monofont.NewBitmap(w, len(art))
	for y, row := range art {
		for x, c := range row {
			b.SetBit(x, y, c == '#')
		}
	}
	return b
}

// encodeStrikeImage encodes g as EBDT image format 1 (byte-aligned rows)
// or 2 (bit-aligned rows), both led by small glyph metrics. Other formats
// get the format 2 encoding.
func encodeStrikeImage(g strikeGlyph) []byte {
	b := artBitmap(g.art)
	w, h := b.Width(), b.Height()
	out := []byte{byte(h), byte(w), byte(g.bearingX), byte(g.bearingY), g.advance}
	if g.format == 1 {
		return append(out, b.Bytes()...)
	}
	bits := make([]byte, (w*h+7)/8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if b.Bit(x, y) {
				bit := y*w + x
				bits[bit>>3] |= 0x80 >> (bit & 7)
			}
		}
	}
	return append(out, bits...)
}

// withStrike adds a 16 pixel EBLC/EBDT strike to Go Mono, with ascender
// 12, descender -4 and one index format 1 subtable per glyph. Tables named
// in drop are removed.
func withStrike(t *testing.T, glyphs []strikeGlyph, drop ...string) []byte {
	t.Helper()
	tables := sfntTables(gomono.TTF)
	for _, tag := range drop {
		delete(tables, tag)
	}
	src, err := sfnt.Parse(gomono.TTF)
	require.NoError(t, err)
	var buf sfnt.Buffer

	const arrayOffset = 8 + 48
	n := len(glyphs)
	eblc := make([]byte, arrayOffset+24*n)
	binary.BigEndian.PutUint16(eblc[0:], 2)
	binary.BigEndian.PutUint32(eblc[4:], 1)
	size := eblc[8:]
	binary.BigEndian.PutUint32(size[0:], arrayOffset)
	binary.BigEndian.PutUint32(size[4:], uint32(24*n))
	binary.BigEndian.PutUint32(size[8:], uint32(n))
	size[16] = 12
	size[17] = 0xfc // -4
	size[44], size[45], size[46], size[47] = 16, 16, 1, 1

	ebdt := []byte{0, 2, 0, 0}
	for i, g := range glyphs {
		gid, err := src.GlyphIndex(&buf, g.r)
		require.NoError(t, err)
		require.NotZero(t, gid, "%q", g.r)

		entry := eblc[arrayOffset+8*i:]
		binary.BigEndian.PutUint16(entry[0:], uint16(gid))
		binary.BigEndian.PutUint16(entry[2:], uint16(gid))
		binary.BigEndian.PutUint32(entry[4:], uint32(8*n+16*i))

		sub := eblc[arrayOffset+8*n+16*i:]
		binary.BigEndian.PutUint16(sub[0:], 1)
		binary.BigEndian.PutUint16(sub[2:], g.format)
		binary.BigEndian.PutUint32(sub[4:], uint32(len(ebdt)))
		if g.art == nil {
			continue
		}
		img := encodeStrikeImage(g)
		ebdt = append(ebdt, img...)
		binary.BigEndian.PutUint32(sub[12:], uint32(len(img)))
	}
	tables["EBLC"] = eblc
	tables["EBDT"] = ebdt
	return buildSFNT(tables)
}

var strikeGlyphs = []strikeGlyph{
	{r: ' ', format: 2, advance: 7, art: []string{}},
	{r: 'A', format: 2, bearingX: 1, bearingY: 6, advance: 7, art: []string{
		".###.",
		"#...#",
		"#...#",
		"#####",
		"#...#",
		"#...#",
	}},
	{r: 'C', format: 1, bearingX: 1, bearingY: 6, advance: 7, art: []string{
		".####",
		"#....",
		"#....",
		"#....",
		"#....",
		".####",
	}},
	{r: 'D', format: 2, advance: 7},
	{r: 'E', format: 6, advance: 7, art: []string{"#"}},
}

func TestOutlineFace_GoMono(t *testing.T) {
	face, err := NewOutlineFace(gomono.TTF, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, face.PixelSize())
	assert.NotEmpty(t, face.Name())

	_, ok := face.Lookup('\u0378') // unassigned
	assert.False(t, ok)

	f, _, err := Generate(face, nil, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	assert.Greater(t, f.CharacterSize.X, 5)
	assert.Less(t, f.CharacterSize.X, 16)
	assert.Greater(t, f.Baseline, f.CharacterSize.Y/2)
	assert.False(t, f.Glyph('A').Empty())
	assert.False(t, f.Glyph('ÿ').Empty())
	assert.True(t, f.Glyph(' ').Empty())

	// Outlines are unhinted but the cell width is a whole advance, so
	// every glyph of a monospace font shares it.
	id, ok := face.Lookup('W')
	require.True(t, ok)
	g, err := face.Glyph(id)
	require.NoError(t, err)
	assert.Equal(t, f.CharacterSize.X, g.Advance)
}

func TestOutlineFace_Errors(t *testing.T) {
	_, err := NewOutlineFace([]byte("not a font"), 16)
	assert.ErrorIs(t, err, ErrSourceUnreadable)

	_, err = NewOutlineFace(gomono.TTF, 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	data := buildSFNT(map[string][]byte{"cmap": stub(), "head": stub(), "maxp": stub()})
	_, err = NewOutlineFace(data, 16)
	var tme *TableMissingError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, "hhea", tme.Table)
	assert.ErrorIs(t, err, ErrRequiredTableMissing)

	data = buildSFNT(map[string][]byte{"cmap": stub(), "head": stub(), "maxp": stub(), "hhea": stub(), "hmtx": stub()})
	_, err = NewOutlineFace(data, 16)
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, "glyf", tme.Table)
}

func TestStrikeFace_Errors(t *testing.T) {
	_, err := NewStrikeFace(gomono.TTF, 16)
	var tme *TableMissingError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, "EBLC", tme.Table)
	assert.EqualError(t, err, "sheet: font does not have EBLC table")

	_, err = NewStrikeFace([]byte{0, 1, 2}, 16)
	assert.ErrorIs(t, err, ErrSourceUnreadable)

	_, err = NewStrikeFace(gomono.TTF, 300)
	assert.ErrorIs(t, err, ErrInvalidSize)

	garbage := buildSFNT(map[string][]byte{
		"cmap": stub(), "head": stub(), "maxp": stub(),
		"EBLC": {0, 2, 0},
		"EBDT": stub(),
	})
	_, err = NewStrikeFace(garbage, 16)
	assert.ErrorIs(t, err, ErrSourceUnreadable)
}

func TestStrikeFace_NoMatchingStrike(t *testing.T) {
	data := buildSFNT(map[string][]byte{
		"cmap": stub(), "head": stub(), "maxp": stub(),
		"EBLC": eblcWithStrikes(12, 13),
		"EBDT": stub(),
	})
	_, err := NewStrikeFace(data, 16)
	require.ErrorIs(t, err, ErrInvalidSize)
	assert.Contains(t, err.Error(), "unable to find strike with size 16. Available: 12, 13")
}

func TestStrikeFace_Glyph(t *testing.T) {
	face, err := NewStrikeFace(withStrike(t, strikeGlyphs), 16)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(face.Name(), "16px"), face.Name())

	id, ok := face.Lookup('A')
	require.True(t, ok)
	g, err := face.Glyph(id)
	require.NoError(t, err)
	assert.Equal(t, 7, g.Advance, "advance of the strike, not hmtx")
	assert.Equal(t, image.Pt(1, -6), g.Offset)
	assert.Equal(t, 12, g.Ascent)
	assert.Equal(t, 4, g.Descent)
	assert.True(t, artBitmap(strikeGlyphs[1].art).Equal(g.Mask))

	id, ok = face.Lookup('C')
	require.True(t, ok)
	g, err = face.Glyph(id)
	require.NoError(t, err)
	assert.True(t, artBitmap(strikeGlyphs[2].art).Equal(g.Mask), "byte-aligned rows")

	id, ok = face.Lookup(' ')
	require.True(t, ok)
	g, err = face.Glyph(id)
	require.NoError(t, err)
	assert.True(t, g.Mask.Empty())
	assert.Equal(t, 7, g.Advance)
}

func TestStrikeFace_MissingImage(t *testing.T) {
	face, err := NewStrikeFace(withStrike(t, strikeGlyphs), 16)
	require.NoError(t, err)

	tests := []struct {
		r       rune
		noImage bool
	}{
		{'D', true},  // listed with an empty image range
		{'F', true},  // not in any index subtable
		{'E', false}, // image format 6 is not supported
	}
	for _, tt := range tests {
		id, ok := face.Lookup(tt.r)
		require.True(t, ok)
		_, err := face.Glyph(id)
		require.Error(t, err, "%q", tt.r)
		if tt.noImage {
			assert.ErrorIs(t, err, errNoImage, "%q", tt.r)
		}
	}
}

func TestStrikeFace_Generate(t *testing.T) {
	data := withStrike(t, strikeGlyphs[:3], "glyf", "loca")
	face, err := Open(data, 16)
	require.NoError(t, err)
	require.IsType(t, &StrikeFace{}, face)

	// The strike holds three glyphs, so the full repertoire fails at the
	// first character without an image.
	_, _, err = Generate(face, nil, DefaultOptions())
	var gue *GlyphUnavailableError
	require.ErrorAs(t, err, &gue)
	assert.Equal(t, '!', gue.Rune)
	assert.ErrorIs(t, err, errNoImage)

	repertoire := monofont.Repertoire()
	for i := range repertoire {
		repertoire[i] = ' '
	}
	repertoire[monofont.GlyphIndex('A')] = 'A'
	repertoire[monofont.GlyphIndex('C')] = 'C'
	f, warnings, err := Generate(face, repertoire, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, image.Pt(7, 16), f.CharacterSize)
	assert.Equal(t, 12, f.Baseline)

	// The image top sits BearingY rows above the baseline, at row 12-6.
	want := artBitmap(strikeGlyphs[1].art)
	cell := f.Glyph('A')
	for y := 0; y < cell.Height(); y++ {
		for x := 0; x < cell.Width(); x++ {
			assert.Equal(t, want.Bit(x-1, y-6), cell.Bit(x, y), "A at (%d, %d)", x, y)
		}
	}
}

func TestOpen(t *testing.T) {
	face, err := Open(gomono.TTF, 12)
	require.NoError(t, err)
	assert.IsType(t, &OutlineFace{}, face)

	strikeOnly := buildSFNT(map[string][]byte{
		"cmap": stub(), "head": stub(), "maxp": stub(),
		"EBLC": eblcWithStrikes(12),
		"EBDT": stub(),
	})
	_, err = Open(strikeOnly, 16)
	assert.ErrorIs(t, err, ErrInvalidSize, "strike-only fonts use the strike backend")

	_, err = Open([]byte("garbage"), 12)
	assert.ErrorIs(t, err, ErrSourceUnreadable)

	face, err = Open([]byte(testBDF), 0)
	require.NoError(t, err)
	assert.IsType(t, &FontFace{}, face)
}

const testBDF = `STARTFONT 2.1
FONT -test-fixed-medium-r-normal--8-80-75-75-C-50-ISO10646-1
SIZE 8 75 75
FONTBOUNDINGBOX 5 8 0 -2
STARTPROPERTIES 3
FONT_ASCENT 6
FONT_DESCENT 2
DEFAULT_CHAR 32
ENDPROPERTIES
CHARS 2
STARTCHAR space
ENCODING 32
SWIDTH 625 0
DWIDTH 5 0
BBX 5 8 0 -2
BITMAP
00
00
00
00
00
00
00
00
ENDCHAR
STARTCHAR A
ENCODING 65
SWIDTH 625 0
DWIDTH 5 0
BBX 5 8 0 -2
BITMAP
00
20
50
88
F8
88
00
00
ENDCHAR
ENDFONT
`

func TestBDFFace(t *testing.T) {
	face, err := NewBDFFace([]byte(testBDF))
	require.NoError(t, err)
	assert.Positive(t, face.PixelSize())

	id, ok := face.Lookup('A')
	require.True(t, ok)
	g, err := face.Glyph(id)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Advance)
	require.NotNil(t, g.Mask)
	assert.False(t, g.Mask.Empty())

	// The font covers two characters, far from the full repertoire.
	_, _, err = Generate(face, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrGlyphUnavailable)
}

func TestUnpackBits(t *testing.T) {
	// 3x3 ring, rows packed without padding: 111 101 111.
	b, err := unpackBits(3, 3, []byte{0xef, 0x80})
	require.NoError(t, err)
	want := monofont.NewBitmap(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want.SetBit(x, y, x != 1 || y != 1)
		}
	}
	assert.True(t, want.Equal(b))

	_, err = unpackBits(8, 2, []byte{0xff})
	assert.Error(t, err)
}

func TestUnpackRows(t *testing.T) {
	// 3x2, each row padded to a byte; padding bits are ignored.
	b, err := unpackRows(3, 2, []byte{0xbf, 0x40})
	require.NoError(t, err)
	assert.True(t, artBitmap([]string{"#.#", ".#."}).Equal(b))
	assert.Equal(t, []byte{0xa0, 0x40}, b.Bytes())

	_, err = unpackRows(9, 2, []byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
