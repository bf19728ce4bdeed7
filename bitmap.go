package monofont

import (
	"fmt"
	"image"
	"image/color"
)

// Bitmap is a packed 1-bit image. Rows are stored top to bottom, each row
// padded to a whole number of bytes, most significant bit first.
// A set bit is glyph ink.
//
// Bitmap implements draw.Image with the color.Alpha model, so it can be used
// directly as a mask when compositing.
type Bitmap struct {
	width  int
	height int
	stride int
	data   []uint8
}

// NewBitmap creates an empty bitmap with the given dimensions.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	stride := BitmapStride(width)
	return &Bitmap{
		width:  width,
		height: height,
		stride: stride,
		data:   make([]uint8, stride*height),
	}
}

// BitmapFromBytes wraps packed bitmap data. The data is not copied.
// It returns an error if len(data) does not match the dimensions.
func BitmapFromBytes(width, height int, data []byte) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("monofont: invalid bitmap size %dx%d", width, height)
	}
	stride := BitmapStride(width)
	if len(data) != stride*height {
		return nil, fmt.Errorf("monofont: bitmap data is %d bytes, want %d for %dx%d",
			len(data), stride*height, width, height)
	}
	return &Bitmap{width: width, height: height, stride: stride, data: data}, nil
}

// BitmapStride returns the number of bytes in one packed row.
func BitmapStride(width int) int {
	return (width + 7) / 8
}

// Width returns the bitmap width.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height.
func (b *Bitmap) Height() int { return b.height }

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int { return b.stride }

// Bytes returns the packed data. The slice aliases the bitmap.
func (b *Bitmap) Bytes() []byte { return b.data }

// Bit reports whether the pixel at (x, y) is set.
// Coordinates outside the bitmap are unset.
func (b *Bitmap) Bit(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.data[y*b.stride+x>>3]&(0x80>>(x&7)) != 0
}

// SetBit sets or clears the pixel at (x, y).
// Coordinates outside the bitmap are ignored.
func (b *Bitmap) SetBit(x, y int, on bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	i := y*b.stride + x>>3
	m := uint8(0x80 >> (x & 7))
	if on {
		b.data[i] |= m
	} else {
		b.data[i] &^= m
	}
}

// Empty reports whether no pixel is set.
func (b *Bitmap) Empty() bool {
	for _, v := range b.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Clear unsets every pixel.
func (b *Bitmap) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return color.AlphaModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Bit(x, y) {
		return color.Alpha{A: 0xff}
	}
	return color.Alpha{}
}

// Set implements draw.Image. Pixels with at least half coverage are set.
func (b *Bitmap) Set(x, y int, c color.Color) {
	_, _, _, a := c.RGBA()
	b.SetBit(x, y, a >= 0x8000)
}

// SubBitmap returns a copy of the pixels inside r. The result has its
// origin at (0, 0). Parts of r outside the bitmap are blank.
func (b *Bitmap) SubBitmap(r image.Rectangle) *Bitmap {
	out := NewBitmap(r.Dx(), r.Dy())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			if b.Bit(r.Min.X+x, r.Min.Y+y) {
				out.SetBit(x, y, true)
			}
		}
	}
	return out
}

// Equal reports whether two bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Bit(x, y) != o.Bit(x, y) {
				return false
			}
		}
	}
	return true
}

// Gray expands the bitmap to 8 bits per pixel: ink is white on black.
func (b *Bitmap) Gray() *image.Gray {
	return b.gray(0xff, 0x00)
}

// GrayInverted expands the bitmap to 8 bits per pixel: ink is black on white.
func (b *Bitmap) GrayInverted() *image.Gray {
	return b.gray(0x00, 0xff)
}

func (b *Bitmap) gray(ink, bg uint8) *image.Gray {
	img := image.NewGray(b.Bounds())
	for y := 0; y < b.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.width]
		for x := range row {
			if b.Bit(x, y) {
				row[x] = ink
			} else {
				row[x] = bg
			}
		}
	}
	return img
}

// BitmapFromImage thresholds any image into a bitmap. Pixels whose alpha
// is at least threshold/255 become ink.
func BitmapFromImage(img image.Image, threshold uint8) *Bitmap {
	bounds := img.Bounds()
	out := NewBitmap(bounds.Dx(), bounds.Dy())
	limit := uint32(threshold) * 0x101
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a >= limit && a > 0 {
				out.SetBit(x, y, true)
			}
		}
	}
	return out
}
