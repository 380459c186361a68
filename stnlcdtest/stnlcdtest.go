// Package stnlcdtest implements fake stnlcd buses for testing.
//
// Recorder logs every call it receives. Panel emulates the panel itself and
// reconstructs the image shown from the bus signals.
package stnlcdtest

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"periph.io/x/devices/v3/stnlcd"
	"periph.io/x/devices/v3/stnlcd/image1bit"
)

// Op is a bus operation.
type Op uint8

const (
	OpAssert Op = iota
	OpRelease
	OpNibble
)

func (o Op) String() string {
	switch o {
	case OpAssert:
		return "Assert"
	case OpRelease:
		return "Release"
	case OpNibble:
		return "WriteNibble"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Event is one recorded bus call.
type Event struct {
	Op     Op
	Line   stnlcd.Line // OpAssert and OpRelease
	Nibble byte        // OpNibble
}

func (e Event) String() string {
	if e.Op == OpNibble {
		return fmt.Sprintf("WriteNibble(0x%x)", e.Nibble)
	}
	return fmt.Sprintf("%s(%s)", e.Op, e.Line)
}

// Recorder is a stnlcd.Bus that records every call.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Assert implements stnlcd.Bus.
func (r *Recorder) Assert(l stnlcd.Line) {
	r.add(Event{Op: OpAssert, Line: l})
}

// Release implements stnlcd.Bus.
func (r *Recorder) Release(l stnlcd.Line) {
	r.add(Event{Op: OpRelease, Line: l})
}

// WriteNibble implements stnlcd.Bus.
func (r *Recorder) WriteNibble(v byte) {
	r.add(Event{Op: OpNibble, Nibble: v & 0x0f})
}

// Events returns a copy of the events recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset forgets the recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Count returns the number of recorded events matching op and, unless op is
// OpNibble, line.
func (r *Recorder) Count(op Op, l stnlcd.Line) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Op == op && (op == OpNibble || e.Line == l) {
			n++
		}
	}
	return n
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Panel is a stnlcd.Bus emulating the LCD panel.
//
// The data nibble is shifted in on the falling edge of CL2 and the shifted
// row is committed on the falling edge of CL1, to the top row if FLM is high
// at that time, to the row below the previous one otherwise. The first row
// after power on is the top row.
//
// Panel implements image.Image, showing the last complete frame.
type Panel struct {
	mu      sync.Mutex
	high    [3]bool
	data    byte
	shifted []byte
	row     int
	scan    *image1bit.HorizontalBits
	shown   *image1bit.HorizontalBits
	frames  int
	err     error
}

// NewPanel returns a blank panel.
func NewPanel() *Panel {
	r := image.Rect(0, 0, stnlcd.Width, stnlcd.Height)
	return &Panel{
		shifted: make([]byte, 0, stnlcd.Width/4),
		scan:    image1bit.NewHorizontalBits(r),
		shown:   image1bit.NewHorizontalBits(r),
	}
}

// Assert implements stnlcd.Bus.
func (p *Panel) Assert(l stnlcd.Line) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(l) < len(p.high) {
		p.high[l] = true
	}
}

// Release implements stnlcd.Bus.
func (p *Panel) Release(l stnlcd.Line) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(l) >= len(p.high) || !p.high[l] {
		return
	}
	p.high[l] = false
	switch l {
	case stnlcd.PixelLoad:
		p.shift()
	case stnlcd.LineLoad:
		p.latch()
	}
}

// WriteNibble implements stnlcd.Bus.
func (p *Panel) WriteNibble(v byte) {
	p.mu.Lock()
	p.data = v & 0x0f
	p.mu.Unlock()
}

func (p *Panel) shift() {
	if len(p.shifted) == cap(p.shifted) {
		p.fail(fmt.Errorf("stnlcdtest: more than %d nibbles shifted for row %d", cap(p.shifted), p.row))
		return
	}
	p.shifted = append(p.shifted, p.data)
}

func (p *Panel) latch() {
	if p.high[stnlcd.FrameMarker] {
		p.row = 0
	}
	if p.row >= stnlcd.Height {
		p.fail(fmt.Errorf("stnlcdtest: row %d latched without frame marker", p.row))
		p.row = 0
	}
	if len(p.shifted) != cap(p.shifted) {
		p.fail(fmt.Errorf("stnlcdtest: %d nibbles shifted for row %d, want %d", len(p.shifted), p.row, cap(p.shifted)))
	}
	var line [stnlcd.Width / 8]byte
	for i, n := range p.shifted {
		line[i/2] |= n << (4 * uint(1-i&1))
	}
	p.scan.SetRow(p.row, line[:])
	p.shifted = p.shifted[:0]

	p.row++
	if p.row == stnlcd.Height {
		copy(p.shown.Pix, p.scan.Pix)
		p.frames++
	}
}

func (p *Panel) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Frames returns the number of complete frames shown.
func (p *Panel) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Frame returns a copy of the last complete frame.
func (p *Panel) Frame() *image1bit.HorizontalBits {
	p.mu.Lock()
	defer p.mu.Unlock()
	img := image1bit.NewHorizontalBits(p.shown.Rect)
	copy(img.Pix, p.shown.Pix)
	return img
}

// Err returns the first protocol violation seen.
func (p *Panel) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// ColorModel implements image.Image.
func (p *Panel) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (p *Panel) Bounds() image.Rectangle {
	return p.shown.Rect
}

// At implements image.Image.
func (p *Panel) At(x, y int) color.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown.BitAt(x, y)
}

var (
	_ stnlcd.Bus  = &Recorder{}
	_ stnlcd.Bus  = &Panel{}
	_ image.Image = &Panel{}
)
