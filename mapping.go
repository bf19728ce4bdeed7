package monofont

import "golang.org/x/text/encoding/charmap"

// Repertoire layout shared by every size variant.
const (
	// CharsPerRow is the number of glyph cells in one row of a sheet.
	CharsPerRow = 32

	// RepertoireSize is the number of glyphs in every sheet.
	RepertoireSize = int(basicLen + latin1Len)

	// SheetRows is the number of cell rows in every sheet.
	SheetRows = (RepertoireSize + CharsPerRow - 1) / CharsPerRow

	// FallbackIndex is the glyph index of '?', used for every character
	// outside the repertoire.
	FallbackIndex = int('?' - ' ')
)

const (
	basicFirst  = ' '
	basicLast   = '~'
	latin1First = '\u00a0'
	latin1Last  = '\u00ff'

	basicLen  = basicLast - basicFirst + 1
	latin1Len = latin1Last - latin1First + 1

	// rangeGap is the number of code points skipped between the two ranges
	// so that index space stays dense.
	rangeGap = latin1First - basicFirst - basicLen
)

// GlyphIndex maps a character to its glyph index. It never fails: characters
// outside the repertoire resolve to FallbackIndex.
func GlyphIndex(r rune) int {
	switch {
	case r >= basicFirst && r <= basicLast:
		return int(r - basicFirst)
	case r >= latin1First && r <= latin1Last:
		return int(r - basicFirst - rangeGap)
	default:
		return FallbackIndex
	}
}

// IsRepresentable reports whether r has its own glyph.
func IsRepresentable(r rune) bool {
	return (r >= basicFirst && r <= basicLast) || (r >= latin1First && r <= latin1Last)
}

// repertoire is built once; Repertoire hands out copies.
var repertoire = buildRepertoire()

func buildRepertoire() []rune {
	rs := make([]rune, 0, RepertoireSize)
	for r := rune(basicFirst); r <= basicLast; r++ {
		rs = append(rs, r)
	}
	dec := charmap.ISO8859_1
	for b := latin1First; b <= latin1Last; b++ {
		rs = append(rs, dec.DecodeByte(byte(b)))
	}
	return rs
}

// Repertoire returns the supported characters in glyph index order.
func Repertoire() []rune {
	out := make([]rune, len(repertoire))
	copy(out, repertoire)
	return out
}

// RuneAt returns the character stored at a glyph index, or '?' when index
// is out of range.
func RuneAt(index int) rune {
	if index < 0 || index >= len(repertoire) {
		return '?'
	}
	return repertoire[index]
}
