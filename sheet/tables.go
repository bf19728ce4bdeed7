package sheet

import (
	"bytes"
	"fmt"

	ot "github.com/go-text/typesetting/font/opentype"
)

// Tables every sfnt source needs, whatever its glyph format.
var baseTables = []string{"cmap", "head", "maxp"}

// loadTables opens the table directory of an sfnt font.
func loadTables(data []byte) (*ot.Loader, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return ld, nil
}

// requireTables returns a *TableMissingError for the first absent table.
func requireTables(ld *ot.Loader, names ...string) error {
	for _, name := range names {
		if !ld.HasTable(ot.MustNewTag(name)) {
			return &TableMissingError{Table: name}
		}
	}
	return nil
}

func hasTable(ld *ot.Loader, name string) bool {
	return ld.HasTable(ot.MustNewTag(name))
}

// hasOutlines reports whether the font carries TrueType or CFF outlines.
func hasOutlines(ld *ot.Loader) bool {
	return hasTable(ld, "glyf") || hasTable(ld, "CFF ") || hasTable(ld, "CFF2")
}

func checkPixelSize(ppem int) error {
	if ppem < MinPixelSize || ppem > MaxPixelSize {
		return fmt.Errorf("%w: %d pixels per em, want [%d, %d]", ErrInvalidSize, ppem, MinPixelSize, MaxPixelSize)
	}
	return nil
}
