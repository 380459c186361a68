package stnlcd

import "periph.io/x/devices/v3/stnlcd/glyph"

// DrawBox outlines a w x h cell rectangle whose upper left corner is at row,
// col, using the box drawing codes of the glyph table. The inside is left
// untouched. w and h must be at least 2 and the box must fit the grid; the
// method panics otherwise.
func (fb *Framebuffer) DrawBox(row, col, w, h int) {
	p := Offset(row, col)
	fb.buf[p] = glyph.BoxUpperLeft
	p++
	for i := 0; i < w-2; i++ {
		fb.buf[p] = glyph.BoxHorizontal
		p++
	}
	fb.buf[p] = glyph.BoxUpperRight
	p += Cols
	for i := 0; i < h-2; i++ {
		fb.buf[p] = glyph.BoxVertical
		p += Cols
	}
	fb.buf[p] = glyph.BoxLowerRight
	p--
	for i := 0; i < w-2; i++ {
		fb.buf[p] = glyph.BoxHorizontal
		p--
	}
	fb.buf[p] = glyph.BoxLowerLeft
	p -= Cols
	for i := 0; i < h-2; i++ {
		fb.buf[p] = glyph.BoxVertical
		p -= Cols
	}
}
