package sheet

import "bytes"

// Open picks a backend for data: BDF text fonts, sfnt fonts carrying only
// bitmap strikes, or outline fonts. ppem is ignored for BDF fonts, which
// have a single size.
func Open(data []byte, ppem int) (Face, error) {
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("STARTFONT")) {
		return NewBDFFace(data)
	}
	ld, err := loadTables(data)
	if err != nil {
		return nil, err
	}
	if hasTable(ld, "EBLC") && !hasOutlines(ld) {
		return NewStrikeFace(data, ppem)
	}
	return NewOutlineFace(data, ppem)
}
