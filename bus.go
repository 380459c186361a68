package stnlcd

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Line is a control line of the panel.
type Line uint8

const (
	// FrameMarker (FLM) tells the panel the next latched row is the top one.
	FrameMarker Line = iota
	// LineLoad (CL1) commits the shifted row to the line latch.
	LineLoad
	// PixelLoad (CL2) shifts the nibble on the data bus into the panel.
	PixelLoad
)

func (l Line) String() string {
	switch l {
	case FrameMarker:
		return "FLM"
	case LineLoad:
		return "CL1"
	case PixelLoad:
		return "CL2"
	}
	return fmt.Sprintf("Line(%d)", uint8(l))
}

// Bus drives the panel signals. Calls never block and report nothing: the
// refresh engine cannot act on a failure within its tick, so bindings that
// can fail keep the error for later inspection.
type Bus interface {
	// Assert drives the line to its active level.
	Assert(l Line)
	// Release drives the line to its idle level.
	Release(l Line)
	// WriteNibble puts the low 4 bits of v on D3..D0, D3 being the leftmost dot.
	WriteNibble(v byte)
}

// Pins lists the GPIO pins wired to the panel.
type Pins struct {
	// Data pins D0..D3. D3 carries the most significant bit of the nibble.
	D [4]gpio.PinOut
	// Data, if set, is used instead of D. Its first 4 pins are D0..D3.
	Data gpio.Group

	FLM gpio.PinOut // Frame marker
	CL1 gpio.PinOut // Line load
	CL2 gpio.PinOut // Pixel load
}

// GPIOBus is a Bus over periph.io GPIO pins. All lines are active high.
type GPIOBus struct {
	pins Pins
	// Last nibble driven on the data pins, to skip unchanged pins.
	last byte

	mu  sync.Mutex
	err error
}

// NewGPIOBus checks the pins and drives every line low.
func NewGPIOBus(p Pins) (*GPIOBus, error) {
	if p.FLM == nil || p.CL1 == nil || p.CL2 == nil {
		return nil, errors.New("stnlcd: FLM, CL1 and CL2 pins are required")
	}
	if p.Data == nil {
		for i, d := range p.D {
			if d == nil {
				return nil, fmt.Errorf("stnlcd: data pin D%d is required", i)
			}
		}
	}

	b := &GPIOBus{pins: p}
	for _, l := range []Line{FrameMarker, LineLoad, PixelLoad} {
		if err := b.pin(l).Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("stnlcd: failed to pull %s low: %w", l, err)
		}
	}
	if err := b.writeData(0, 0x0f); err != nil {
		return nil, fmt.Errorf("stnlcd: failed to clear data pins: %w", err)
	}
	return b, nil
}

// Assert implements Bus.
func (b *GPIOBus) Assert(l Line) {
	b.keep(b.pin(l).Out(gpio.High))
}

// Release implements Bus.
func (b *GPIOBus) Release(l Line) {
	b.keep(b.pin(l).Out(gpio.Low))
}

// WriteNibble implements Bus.
func (b *GPIOBus) WriteNibble(v byte) {
	v &= 0x0f
	changed := v ^ b.last
	if changed == 0 {
		return
	}
	b.keep(b.writeData(v, changed))
	b.last = v
}

// Err returns the first pin error seen since the bus was created.
func (b *GPIOBus) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Halt drives every line low and returns the first pin error seen.
func (b *GPIOBus) Halt() error {
	for _, l := range []Line{FrameMarker, LineLoad, PixelLoad} {
		b.Release(l)
	}
	b.keep(b.writeData(0, 0x0f))
	b.last = 0
	return b.Err()
}

// String implements fmt.Stringer.
func (b *GPIOBus) String() string {
	if b.pins.Data != nil {
		return fmt.Sprintf("GPIOBus{D:%s FLM:%s CL1:%s CL2:%s}", b.pins.Data, b.pins.FLM, b.pins.CL1, b.pins.CL2)
	}
	return fmt.Sprintf("GPIOBus{D:%s,%s,%s,%s FLM:%s CL1:%s CL2:%s}",
		b.pins.D[0], b.pins.D[1], b.pins.D[2], b.pins.D[3], b.pins.FLM, b.pins.CL1, b.pins.CL2)
}

func (b *GPIOBus) pin(l Line) gpio.PinOut {
	switch l {
	case FrameMarker:
		return b.pins.FLM
	case LineLoad:
		return b.pins.CL1
	default:
		return b.pins.CL2
	}
}

// writeData drives the data pins selected by mask to the bits of v.
func (b *GPIOBus) writeData(v, mask byte) error {
	if b.pins.Data != nil {
		return b.pins.Data.Out(gpio.GPIOValue(v), gpio.GPIOValue(mask))
	}
	for i, p := range b.pins.D {
		bit := byte(1) << uint(i)
		if mask&bit == 0 {
			continue
		}
		if err := p.Out(gpio.Level(v&bit != 0)); err != nil {
			return err
		}
	}
	return nil
}

// keep records the first error.
func (b *GPIOBus) keep(err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	if b.err == nil {
		b.err = err
	}
	b.mu.Unlock()
}

var _ Bus = &GPIOBus{}
