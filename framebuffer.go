package stnlcd

import "fmt"

// Panel geometry.
const (
	Rows = 20          // Character rows
	Cols = 40          // Character columns
	Size = Rows * Cols // Framebuffer length in bytes

	DotsX = Cols * 2 // Dot canvas width
	DotsY = Rows * 3 // Dot canvas height

	Width  = Cols * 8  // Panel width in pixels
	Height = Rows * 12 // Panel height in pixels

	// TicksPerFrame is the number of refresh ticks needed to scan every
	// pixel row once.
	TicksPerFrame = Height
)

// Packed cell byte layout. A byte whose top two bits are 10 is a dot cell,
// its low 6 bits being the dot mask.
const (
	DotTag  = 0x80
	tagMask = 0xc0
	dotMask = 0x3f
)

// CellKind tells how a cell is shown.
type CellKind uint8

const (
	// CharCell shows the glyph of Code.
	CharCell CellKind = iota
	// DotCell shows a 2x3 grid of coarse dots.
	DotCell
)

func (k CellKind) String() string {
	switch k {
	case CharCell:
		return "char"
	case DotCell:
		return "dot"
	}
	return fmt.Sprintf("CellKind(%d)", uint8(k))
}

// Cell is the decoded content of one framebuffer position.
//
// For a DotCell, bit n of Dots is dot column n/3, dot row n%3 inside the cell,
// with dot row 0 at the top.
type Cell struct {
	Kind CellKind
	Code byte  // Glyph code, CharCell only
	Dots uint8 // 6-bit dot mask, DotCell only
}

// Char returns a character cell.
func Char(code byte) Cell {
	return Cell{Kind: CharCell, Code: code}
}

// Dots returns a dot cell. Bits above the 6th are dropped.
func Dots(mask uint8) Cell {
	return Cell{Kind: DotCell, Dots: mask & dotMask}
}

// CellOf decodes a packed cell byte.
func CellOf(b byte) Cell {
	if b&tagMask == DotTag {
		return Dots(b)
	}
	return Char(b)
}

// Byte encodes the cell in its packed form. Characters whose code looks like
// a dot cell are stored as is and will read back as dots.
func (c Cell) Byte() byte {
	if c.Kind == DotCell {
		return DotTag | c.Dots&dotMask
	}
	return c.Code
}

func (c Cell) String() string {
	if c.Kind == DotCell {
		return fmt.Sprintf("dots(%06b)", c.Dots&dotMask)
	}
	return fmt.Sprintf("char(0x%02x)", c.Code)
}

// Framebuffer is the 20x40 cell store scanned by the refresh engine. It has
// no locking of its own.
type Framebuffer struct {
	buf []byte
}

// NewFramebuffer wraps buf, which must be Size bytes long, and blanks it to
// spaces.
func NewFramebuffer(buf []byte) (*Framebuffer, error) {
	if len(buf) != Size {
		return nil, fmt.Errorf("stnlcd: framebuffer must be %d bytes, got %d", Size, len(buf))
	}
	fb := &Framebuffer{buf: buf}
	fb.Clear()
	return fb, nil
}

// Bytes returns the underlying buffer, row-major with a stride of Cols.
func (fb *Framebuffer) Bytes() []byte {
	return fb.buf
}

// Offset returns the buffer offset of a cell.
func Offset(row, col int) int {
	return row*Cols + col
}

// WriteChar stores code at offset verbatim.
func (fb *Framebuffer) WriteChar(offset int, code byte) {
	fb.buf[offset] = code
}

// Clear fills the framebuffer with spaces.
func (fb *Framebuffer) Clear() {
	for i := range fb.buf {
		fb.buf[i] = ' '
	}
}

// Cell returns the decoded cell at row, col.
func (fb *Framebuffer) Cell(row, col int) Cell {
	return CellOf(fb.buf[Offset(row, col)])
}

// SetCell stores c at row, col.
func (fb *Framebuffer) SetCell(row, col int, c Cell) {
	fb.buf[Offset(row, col)] = c.Byte()
}

// Plot sets or clears one coarse dot. The dot origin is the bottom left
// corner of the panel. A character cell hit by a dot is turned into an empty
// dot cell first, so its character is lost even when clearing. Coordinates
// outside the 80x60 canvas are ignored.
func (fb *Framebuffer) Plot(x, y int, on bool) {
	if x < 0 || x >= DotsX || y < 0 || y >= DotsY {
		return
	}
	y = DotsY - 1 - y
	i := Offset(y/3, x/2)
	b := fb.buf[i]
	if b&tagMask != DotTag {
		b = DotTag
	}
	bit := byte(1) << uint(y%3+3*(x&1))
	if on {
		b |= bit
	} else {
		b &^= bit
	}
	fb.buf[i] = b
}

// Dot reports whether the dot at x, y is lit. Dots covered by a character
// cell, or outside the canvas, read as unlit.
func (fb *Framebuffer) Dot(x, y int) bool {
	if x < 0 || x >= DotsX || y < 0 || y >= DotsY {
		return false
	}
	y = DotsY - 1 - y
	b := fb.buf[Offset(y/3, x/2)]
	if b&tagMask != DotTag {
		return false
	}
	return b&(1<<uint(y%3+3*(x&1))) != 0
}
