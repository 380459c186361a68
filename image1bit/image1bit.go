// Package image1bit provides a 1-bit monochrome image format matching the
// row format of controllerless STN LCD panels.
//
// Each byte contains 8 horizontal dots, the most significant bit being the
// leftmost dot. This package provides the Bit color type and the
// HorizontalBits image implementation.
package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a single dot, either on or off.
type Bit bool

const (
	// On is a lit dot.
	On Bit = true
	// Off is a blank dot.
	Off Bit = false
)

// RGBA converts the Bit to standard RGBA. On is white, Off is black.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// String implements fmt.Stringer.
func (c Bit) String() string {
	if c {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit by thresholding luminance at half scale.
var BitModel = color.ModelFunc(toBit)

// HorizontalBits is a 1-bit image where 8 horizontal dots are packed in a byte,
// most significant bit first.
type HorizontalBits struct {
	Pix    []byte          // Pixel data (8 dots per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalBits creates a new HorizontalBits image with the specified bounds.
// The width must be a multiple of 8.
func NewHorizontalBits(r image.Rectangle) *HorizontalBits {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalBits{Rect: r}
	}
	if w%8 != 0 {
		panic("image1bit: width must be a multiple of 8")
	}

	stride := w / 8
	return &HorizontalBits{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalBits) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *HorizontalBits) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *HorizontalBits) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y). Out of bounds reads return Off.
func (p *HorizontalBits) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the color of the pixel at (x, y).
func (p *HorizontalBits) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *HorizontalBits) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// SetRow copies packed row data, as shifted into the panel, into row y
// starting at the left edge. Extra bytes are ignored.
func (p *HorizontalBits) SetRow(y int, row []byte) {
	if y < p.Rect.Min.Y || y >= p.Rect.Max.Y {
		return
	}
	start := (y - p.Rect.Min.Y) * p.Stride
	copy(p.Pix[start:start+p.Stride], row)
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// x = Min.X maps to bit 7 of the first byte of the row.
func (p *HorizontalBits) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 0x80 >> uint(dx&7)
	return
}
