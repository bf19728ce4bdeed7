package sheet

import (
	"errors"
	"fmt"
)

// Sentinel errors for sheet generation. Backends wrap the underlying
// cause, so match with errors.Is.
var (
	// ErrSourceUnreadable is returned when the source font cannot be parsed.
	ErrSourceUnreadable = errors.New("sheet: source font unreadable")

	// ErrRequiredTableMissing is returned when the source font lacks data
	// the backend needs, such as the EBLC table of a bitmap font.
	ErrRequiredTableMissing = errors.New("sheet: required font table missing")

	// ErrInvalidSize is returned for pixel sizes the source cannot serve
	// and for cell metrics that do not describe a usable cell.
	ErrInvalidSize = errors.New("sheet: invalid size requested")

	// ErrGlyphUnavailable is matched by *GlyphUnavailableError.
	ErrGlyphUnavailable = errors.New("sheet: glyph unavailable")
)

// GlyphUnavailableError reports a repertoire character the source font
// cannot provide.
type GlyphUnavailableError struct {
	Rune rune

	// Err is the backend error, if the glyph exists but failed to load.
	Err error
}

func (e *GlyphUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sheet: no glyph for %q (%U): %v", e.Rune, e.Rune, e.Err)
	}
	return fmt.Sprintf("sheet: no glyph for %q (%U)", e.Rune, e.Rune)
}

// Is reports ErrGlyphUnavailable as a match.
func (e *GlyphUnavailableError) Is(target error) bool {
	return target == ErrGlyphUnavailable
}

func (e *GlyphUnavailableError) Unwrap() error { return e.Err }

// TableMissingError names the missing table. It matches
// ErrRequiredTableMissing.
type TableMissingError struct {
	Table string
}

func (e *TableMissingError) Error() string {
	return "sheet: font does not have " + e.Table + " table"
}

// Is reports ErrRequiredTableMissing as a match.
func (e *TableMissingError) Is(target error) bool {
	return target == ErrRequiredTableMissing
}

// OptionsError reports invalid generation options. It matches
// ErrInvalidSize.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "sheet: invalid options." + e.Field + ": " + e.Reason
}

// Is reports ErrInvalidSize as a match.
func (e *OptionsError) Is(target error) bool {
	return target == ErrInvalidSize
}
