package monofont

import "errors"

// ErrUnknownSize is returned by ParseSize for sizes without a variant.
var ErrUnknownSize = errors.New("monofont: unknown size")

// FontError reports an inconsistent size variant.
type FontError struct {
	Field  string
	Reason string
}

func (e *FontError) Error() string {
	return "monofont: invalid font." + e.Field + ": " + e.Reason
}
