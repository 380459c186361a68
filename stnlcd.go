package stnlcd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/physic"

	"periph.io/x/devices/v3/stnlcd/glyph"
	"periph.io/x/devices/v3/stnlcd/image1bit"
)

// Opts is the configuration for the display.
type Opts struct {
	// Full frames per second (default: 60Hz). Some panels flicker less at 69Hz.
	FrameRate physic.Frequency

	// Font scanned for every cell (default: glyph.Default()). The table is
	// read on every tick and must not be modified afterwards.
	Glyphs *glyph.Table

	// Time source for Run (default: the real clock)
	Clock clockwork.Clock
}

// DefaultFrameRate is the frame rate used when Opts.FrameRate is zero.
const DefaultFrameRate = 60 * physic.Hertz

// Dev is the device handle for the display.
//
// Its methods may be called concurrently with the refresh loop.
type Dev struct {
	bus    Bus
	glyphs *glyph.Table
	clock  clockwork.Clock
	period time.Duration
	rate   physic.Frequency

	// mu guards everything below and is held by refresh ticks.
	mu     sync.Mutex
	fb     *Framebuffer
	eng    *Engine
	cursor int
	off    bool
	halted bool
	done   chan struct{}
}

var errHalted = errors.New("stnlcd: halted")

// New returns a display refreshed through bus. buf is used as the
// framebuffer: it must be Size bytes long and is blanked to spaces.
//
// opts can be nil to use defaults. Refresh starts with Run, or with calls to
// Tick from a timer owned by the caller.
func New(bus Bus, buf []byte, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("stnlcd: bus is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	rate := opts.FrameRate
	if rate == 0 {
		rate = DefaultFrameRate
	}
	if rate < 0 {
		return nil, fmt.Errorf("stnlcd: invalid frame rate %s", rate)
	}
	period := rate.Period() / TicksPerFrame
	if period <= 0 {
		return nil, fmt.Errorf("stnlcd: frame rate %s is too high", rate)
	}
	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs = glyph.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	fb, err := NewFramebuffer(buf)
	if err != nil {
		return nil, err
	}
	return &Dev{
		bus:    bus,
		glyphs: glyphs,
		clock:  clock,
		period: period,
		rate:   rate,
		fb:     fb,
		eng:    NewEngine(bus, fb, glyphs),
		done:   make(chan struct{}),
	}, nil
}

// NewGPIO returns a display driven through periph.io GPIO pins.
func NewGPIO(p Pins, buf []byte, opts *Opts) (*Dev, error) {
	bus, err := NewGPIOBus(p)
	if err != nil {
		return nil, err
	}
	return New(bus, buf, opts)
}

// Tick scans the next pixel row onto the panel. Call it every TickPeriod when
// not using Run.
func (d *Dev) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.off || d.halted {
		return
	}
	d.eng.Tick()
}

// TickPeriod returns the interval between two ticks at the configured frame
// rate.
func (d *Dev) TickPeriod() time.Duration {
	return d.period
}

// Frames returns the number of frames scanned so far.
func (d *Dev) Frames() uint64 {
	return d.eng.Frames()
}

// Run refreshes the panel until ctx is done or the device is halted. Ticks
// that cannot keep up are dropped, never queued.
func (d *Dev) Run(ctx context.Context) error {
	t := d.clock.NewTicker(d.period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.done:
			return nil
		case <-t.Chan():
			d.Tick()
		}
	}
}

// Image returns what the panel shows for the current framebuffer.
func (d *Dev) Image() *image1bit.HorizontalBits {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Render(d.fb, d.glyphs)
}

// Halt stops the refresh and releases the control lines.
//
// It returns the first error reported by the bus, if it keeps any.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.halted {
		d.halted = true
		close(d.done)
		d.eng.Reset()
	}
	switch b := d.bus.(type) {
	case interface{ Halt() error }:
		return b.Halt()
	case interface{ Err() error }:
		return b.Err()
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("stnlcd.Dev{%dx%d, %s}", Width, Height, d.rate)
}
