package stnlcd

import (
	"image"

	"periph.io/x/devices/v3/stnlcd/glyph"
	"periph.io/x/devices/v3/stnlcd/image1bit"
)

// Render returns the Width x Height image the panel shows for fb once a full
// frame has been scanned with glyphs.
func Render(fb *Framebuffer, glyphs *glyph.Table) *image1bit.HorizontalBits {
	img := image1bit.NewHorizontalBits(image.Rect(0, 0, Width, Height))
	for row := 0; row < Rows; row++ {
		cells := fb.buf[Offset(row, 0):Offset(row+1, 0)]
		for pr := 0; pr < glyph.Height; pr++ {
			line := img.Pix[(row*glyph.Height+pr)*img.Stride:]
			plane := glyphs.Plane(pr)
			for col, code := range cells {
				line[col] = plane[code]
			}
		}
	}
	return img
}
