package sheet

import (
	"fmt"

	"github.com/gogpu/monofont"
)

// Pixel sizes accepted by Generate. Strike sizes are stored in a byte.
const (
	MinPixelSize = 4
	MaxPixelSize = 255
)

// ProFontAdvanceOverrides corrects the ProFont OTB strike at 16 pixels per
// em, which reports an advance of 14 instead of 10.
var ProFontAdvanceOverrides = map[int]int{16: 10}

// Options configures Generate.
type Options struct {
	// Spacing is the character spacing recorded in the generated variant.
	Spacing int

	// AdvanceOverrides replaces the cell width reported by the source for
	// specific pixel sizes. Keys are pixels per em.
	AdvanceOverrides map[int]int

	// Underline and Strikethrough replace the derived decoration geometry
	// when their thickness is non-zero.
	Underline     monofont.Decoration
	Strikethrough monofont.Decoration
}

// DefaultOptions returns options that derive everything from the source.
func DefaultOptions() Options {
	return Options{}
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Spacing < 0 {
		return &OptionsError{Field: "Spacing", Reason: "must not be negative"}
	}
	for ppem, advance := range o.AdvanceOverrides {
		if ppem < MinPixelSize || ppem > MaxPixelSize {
			return &OptionsError{Field: "AdvanceOverrides", Reason: fmt.Sprintf("pixel size %d out of range [%d, %d]", ppem, MinPixelSize, MaxPixelSize)}
		}
		if advance <= 0 {
			return &OptionsError{Field: "AdvanceOverrides", Reason: fmt.Sprintf("advance %d for %d pixels must be positive", advance, ppem)}
		}
	}
	if err := validateDecoration("Underline", o.Underline); err != nil {
		return err
	}
	return validateDecoration("Strikethrough", o.Strikethrough)
}

func validateDecoration(field string, d monofont.Decoration) error {
	if d.Thickness < 0 || d.Offset < 0 {
		return &OptionsError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// advance returns the cell width for ppem.
func (o *Options) advance(ppem, reported int) int {
	if a, ok := o.AdvanceOverrides[ppem]; ok {
		return a
	}
	return reported
}
