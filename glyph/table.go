// Package glyph holds the font table scanned by the stnlcd refresh engine.
//
// A Table contains 256 glyphs of 8x12 dots. It is stored plane-major: the 256
// bytes of pixel row 0 of every glyph come first, then the 256 bytes of pixel
// row 1, and so on. The refresh engine relies on this layout to fetch the
// byte of any character code for the row being scanned with a single index:
//
//	table[row*Count + code]
//
// Tables are produced from a textual description (one quoted run of \xNN
// literals per glyph) by Parse, and written back as source code by Write.
package glyph

import (
	"image"

	"periph.io/x/devices/v3/stnlcd/image1bit"
)

const (
	// Count is the number of glyphs in a table, one per character code.
	Count = 256
	// Width is the glyph width in dots. A glyph row is one byte.
	Width = 8
	// Height is the glyph height in dots.
	Height = 12
	// Size is the table length in bytes.
	Size = Count * Height
)

// Table is a plane-major glyph table.
type Table [Size]byte

// Row returns the byte of glyph code at pixel row, MSB leftmost.
func (t *Table) Row(code byte, row int) byte {
	return t[row*Count+int(code)]
}

// Plane returns the 256 bytes of pixel row row for every character code.
func (t *Table) Plane(row int) []byte {
	return t[row*Count : (row+1)*Count]
}

// Glyph returns the 12 rows of glyph code, top row first.
func (t *Table) Glyph(code byte) [Height]byte {
	var g [Height]byte
	for r := range g {
		g[r] = t.Row(code, r)
	}
	return g
}

// SetGlyph replaces the rows of glyph code.
func (t *Table) SetGlyph(code byte, rows [Height]byte) {
	for r, b := range rows {
		t[r*Count+int(code)] = b
	}
}

// Image renders glyph code as an 8x12 image.
func (t *Table) Image(code byte) *image1bit.HorizontalBits {
	img := image1bit.NewHorizontalBits(image.Rect(0, 0, Width, Height))
	for r := 0; r < Height; r++ {
		img.Pix[r] = t.Row(code, r)
	}
	return img
}
