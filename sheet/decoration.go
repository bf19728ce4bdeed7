package sheet

import (
	"image"

	"github.com/gogpu/monofont"
)

// Decorations derives underline and strikethrough geometry for a cell.
// Lines are max(1, (h+6)/12) pixels thick; the underline sits halfway into
// the descent and the strikethrough two thirds of the way down to the
// baseline. Both are kept inside the cell.
func Decorations(cell image.Point, baseline int) (underline, strikethrough monofont.Decoration) {
	h := cell.Y
	t := max(1, (h+6)/12)
	descent := h - baseline
	underline = monofont.Decoration{Offset: fit(baseline+descent/2, t, h), Thickness: t}
	strikethrough = monofont.Decoration{Offset: fit((2*baseline+2)/3, t, h), Thickness: t}
	return underline, strikethrough
}

func fit(offset, thickness, height int) int {
	if offset+thickness > height {
		offset = height - thickness
	}
	return max(offset, 0)
}
