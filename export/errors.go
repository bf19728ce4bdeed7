package export

import "errors"

var (
	// ErrNoFont is returned when a nil font or a font without sheet is
	// passed to a writer.
	ErrNoFont = errors.New("no font")

	// ErrUnknownFormat is returned by ParseFormat for unsupported names.
	ErrUnknownFormat = errors.New("export: unknown image format")
)

// OptionsError reports an invalid export setting.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "export: invalid options." + e.Field + ": " + e.Reason
}
