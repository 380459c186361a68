package glyph

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"periph.io/x/devices/v3/stnlcd/image1bit"
)

// Box drawing codes of the default table.
const (
	BoxUpperLeft  = 0
	BoxHorizontal = 1
	BoxUpperRight = 2
	BoxVertical   = 3
	BoxLowerLeft  = 4
	BoxLowerRight = 5
)

// DotBase is the first dot-graphics code of the default table. Codes
// DotBase..DotBase+63 show a 2x3 grid of 4x4 blocks; bit n of the code is
// block column n/3, block row n%3.
const DotBase = 0x80

// baseline of the ASCII glyphs inside the 12 row cell.
const baseline = 10

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default returns a copy of the built-in table: printable ASCII rendered from
// the 7x13 X11 fixed font, box drawing glyphs at 0..5 and the dot-graphics
// glyphs at 0x80..0xbf. Other codes are blank.
func Default() *Table {
	defaultOnce.Do(buildDefault)
	t := defaultTable
	return &t
}

func buildDefault() {
	t := &defaultTable
	for c := 0x20; c < 0x7f; c++ {
		t.SetGlyph(byte(c), rasterize(rune(c)))
	}
	for code, rows := range boxGlyphs {
		t.SetGlyph(byte(code), rows)
	}
	for m := 0; m < 64; m++ {
		t.SetGlyph(byte(DotBase+m), dotGlyph(byte(m)))
	}
}

func rasterize(r rune) [Height]byte {
	img := image1bit.NewHorizontalBits(image.Rect(0, 0, Width, Height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(string(r))

	var rows [Height]byte
	copy(rows[:], img.Pix)
	return rows
}

func dotGlyph(mask byte) [Height]byte {
	var rows [Height]byte
	for bit := 0; bit < 6; bit++ {
		if mask&(1<<bit) == 0 {
			continue
		}
		cols := byte(0xf0)
		if bit >= 3 {
			cols = 0x0f
		}
		top := (bit % 3) * 4
		for r := top; r < top+4; r++ {
			rows[r] |= cols
		}
	}
	return rows
}

const (
	vline = 0x10 // dot column 3
	hline = 5    // dot row of horizontal strokes
)

var boxGlyphs = [6][Height]byte{
	BoxUpperLeft:  {hline: 0x1f, 6: vline, 7: vline, 8: vline, 9: vline, 10: vline, 11: vline},
	BoxHorizontal: {hline: 0xff},
	BoxUpperRight: {hline: 0xf0, 6: vline, 7: vline, 8: vline, 9: vline, 10: vline, 11: vline},
	BoxVertical:   {vline, vline, vline, vline, vline, vline, vline, vline, vline, vline, vline, vline},
	BoxLowerLeft:  {vline, vline, vline, vline, vline, 0x1f},
	BoxLowerRight: {vline, vline, vline, vline, vline, 0xf0},
}
