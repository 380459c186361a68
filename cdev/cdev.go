//go:build linux

package cdev

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"periph.io/x/devices/v3/stnlcd"
)

// Consumer is the label shown for the requested lines, e.g. by gpioinfo.
const Consumer = "stnlcd"

// Pins lists the line offsets wired to the panel on one GPIO chip.
type Pins struct {
	Chip string // Chip name or path (default: "gpiochip0")
	D    [4]int // Data lines D0..D3
	FLM  int    // Frame marker
	CL1  int    // Line load
	CL2  int    // Pixel load
}

func (p *Pins) validate() error {
	seen := map[int]string{}
	check := func(name string, off int) error {
		if off < 0 {
			return fmt.Errorf("cdev: invalid offset %d for %s", off, name)
		}
		if other, ok := seen[off]; ok {
			return fmt.Errorf("cdev: %s and %s share line %d", other, name, off)
		}
		seen[off] = name
		return nil
	}
	for i, off := range p.D {
		if err := check(fmt.Sprintf("D%d", i), off); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		name string
		off  int
	}{{"FLM", p.FLM}, {"CL1", p.CL1}, {"CL2", p.CL2}} {
		if err := check(c.name, c.off); err != nil {
			return err
		}
	}
	return nil
}

// Bus is a stnlcd.Bus over GPIO character device lines. All lines are
// active high.
type Bus struct {
	pins Pins
	data *gpiocdev.Lines
	ctrl [3]*gpiocdev.Line // Indexed by stnlcd.Line
	vals [4]int
	last byte

	mu  sync.Mutex
	err error
}

// Open requests the lines as outputs driven low.
func Open(p Pins) (*Bus, error) {
	if p.Chip == "" {
		p.Chip = "gpiochip0"
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	b := &Bus{pins: p}
	var err error
	b.data, err = gpiocdev.RequestLines(p.Chip, p.D[:], gpiocdev.AsOutput(0, 0, 0, 0), gpiocdev.WithConsumer(Consumer))
	if err != nil {
		return nil, fmt.Errorf("cdev: failed to request data lines: %w", err)
	}
	for l, off := range [3]int{stnlcd.FrameMarker: p.FLM, stnlcd.LineLoad: p.CL1, stnlcd.PixelLoad: p.CL2} {
		line, err := gpiocdev.RequestLine(p.Chip, off, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("cdev: failed to request %s line %d: %w", stnlcd.Line(l), off, err)
		}
		b.ctrl[l] = line
	}
	return b, nil
}

// Assert implements stnlcd.Bus.
func (b *Bus) Assert(l stnlcd.Line) {
	b.set(l, 1)
}

// Release implements stnlcd.Bus.
func (b *Bus) Release(l stnlcd.Line) {
	b.set(l, 0)
}

// WriteNibble implements stnlcd.Bus.
func (b *Bus) WriteNibble(v byte) {
	v &= 0x0f
	if v == b.last {
		return
	}
	for i := range b.vals {
		b.vals[i] = int(v>>uint(i)) & 1
	}
	b.keep(b.data.SetValues(b.vals[:]))
	b.last = v
}

func (b *Bus) set(l stnlcd.Line, v int) {
	if int(l) >= len(b.ctrl) {
		b.keep(fmt.Errorf("cdev: unknown line %d", l))
		return
	}
	b.keep(b.ctrl[l].SetValue(v))
}

// Err returns the first line error seen since the bus was opened.
func (b *Bus) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Halt drives every line low and returns the first line error seen.
func (b *Bus) Halt() error {
	for l := range b.ctrl {
		b.Release(stnlcd.Line(l))
	}
	b.vals = [4]int{}
	b.keep(b.data.SetValues(b.vals[:]))
	b.last = 0
	return b.Err()
}

// Close releases the lines.
func (b *Bus) Close() error {
	var errs []error
	if b.data != nil {
		errs = append(errs, b.data.Close())
		b.data = nil
	}
	for i, line := range b.ctrl {
		if line != nil {
			errs = append(errs, line.Close())
			b.ctrl[i] = nil
		}
	}
	return errors.Join(errs...)
}

// String implements fmt.Stringer.
func (b *Bus) String() string {
	return fmt.Sprintf("cdev.Bus{%s D:%v FLM:%d CL1:%d CL2:%d}", b.pins.Chip, b.pins.D, b.pins.FLM, b.pins.CL1, b.pins.CL2)
}

func (b *Bus) keep(err error) {
	if err == nil {
		return
	}
	b.mu.Lock()
	if b.err == nil {
		b.err = err
	}
	b.mu.Unlock()
}

var _ stnlcd.Bus = &Bus{}
