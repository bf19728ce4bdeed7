package export

import (
	"fmt"
	"io"

	"github.com/gogpu/monofont"
)

// WriteRaw writes the packed sheet of f: rows top to bottom, 8 pixels per
// byte, most significant bit first, each row padded to a whole byte.
func WriteRaw(w io.Writer, f *monofont.Font) error {
	if f == nil || f.Image == nil {
		return fmt.Errorf("export: %w", ErrNoFont)
	}
	if _, err := w.Write(f.Image.Bytes()); err != nil {
		return fmt.Errorf("export: write raw sheet: %w", err)
	}
	return nil
}
