package stnlcd

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"periph.io/x/devices/v3/stnlcd/image1bit"
)

// Plot lights or clears the coarse dot at x, y, the origin being the bottom
// left corner of the 80x60 dot canvas. The cell holding the dot becomes a dot
// cell: a character shown there is erased.
func (d *Dev) Plot(x, y int, on bool) error {
	if x < 0 || x >= DotsX || y < 0 || y >= DotsY {
		return fmt.Errorf("stnlcd: dot (%d,%d) out of range", x, y)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fb.Plot(x, y, on)
	return nil
}

// Dot reports whether the dot at x, y is lit.
func (d *Dev) Dot(x, y int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fb.Dot(x, y)
}

// The methods below implement display.Drawer over the dot canvas. Unlike
// Plot, image coordinates have their origin at the top left corner.

// ColorModel returns the color model of the dot canvas.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the bounds of the dot canvas.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, DotsX, DotsY)
}

// Draw thresholds src onto the dots of dst. Every cell touched becomes a dot
// cell.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return errHalted
	}

	dst = dst.Intersect(d.Bounds())
	if dst.Empty() {
		return nil
	}

	bits, fast := src.(*image1bit.HorizontalBits)
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		sy := sp.Y + y - dst.Min.Y
		for x := dst.Min.X; x < dst.Max.X; x++ {
			sx := sp.X + x - dst.Min.X
			var on image1bit.Bit
			if fast {
				on = bits.BitAt(sx, sy)
			} else {
				on = image1bit.BitModel.Convert(src.At(sx, sy)).(image1bit.Bit)
			}
			d.fb.Plot(x, DotsY-1-y, bool(on))
		}
	}
	return nil
}

// Canvas exposes the dot canvas of a Dev as a drivers.Displayer, for use
// with the TinyGo drawing packages. Coordinates count from the top left
// corner.
type Canvas struct {
	d *Dev
}

// Canvas returns the drivers.Displayer view of the dot canvas.
func (d *Dev) Canvas() *Canvas {
	return &Canvas{d: d}
}

// Size returns the dot canvas size.
func (c *Canvas) Size() (x, y int16) {
	return DotsX, DotsY
}

// SetPixel lights the dot at x, y when col is bright and clears it otherwise.
// Dots outside the canvas, and every dot once the device is halted, are
// ignored.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || int(x) >= DotsX || y < 0 || int(y) >= DotsY {
		return
	}
	on := image1bit.BitModel.Convert(col).(image1bit.Bit)
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	if c.d.halted {
		return
	}
	c.d.fb.Plot(int(x), DotsY-1-int(y), bool(on))
}

// Display returns an error once the device is halted. The refresh is
// continuous so there is nothing to flush.
func (c *Canvas) Display() error {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	if c.d.halted {
		return errHalted
	}
	return nil
}

var (
	_ display.Drawer    = &Dev{}
	_ drivers.Displayer = &Canvas{}
)
