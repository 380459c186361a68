package stnlcd

import (
	"sync"
	"sync/atomic"

	"periph.io/x/devices/v3/stnlcd/glyph"
)

// Engine scans a framebuffer onto the panel, one pixel row per Tick.
//
// The panel keeps no image of its own: every pixel row must be shifted in
// again each frame, so Tick must be called TicksPerFrame times per frame at
// a steady rate.
type Engine struct {
	bus    Bus
	fb     *Framebuffer
	glyphs *glyph.Table

	// Held for the duration of a tick.
	busy sync.Mutex

	pixelRow  int  // Pixel rows left in the current character row
	charRow   int  // Character rows left in the current frame
	glyphBase int  // Offset of the current pixel row plane in glyphs
	rowBase   int  // Offset of the current character row in fb
	marker    bool // Frame marker asserted

	frames atomic.Uint64
}

// NewEngine returns an engine in its initial scan state, about to send the
// top pixel row.
func NewEngine(bus Bus, fb *Framebuffer, glyphs *glyph.Table) *Engine {
	e := &Engine{bus: bus, fb: fb, glyphs: glyphs}
	e.reset()
	return e
}

// Tick sends one pixel row of the framebuffer to the panel and advances the
// scan. A Tick called while another is running returns immediately without
// doing anything.
func (e *Engine) Tick() {
	if !e.busy.TryLock() {
		return
	}
	defer e.busy.Unlock()

	cells := e.fb.buf[e.rowBase : e.rowBase+Cols]
	plane := e.glyphs[e.glyphBase : e.glyphBase+glyph.Count]
	for _, code := range cells {
		b := plane[code]
		e.bus.WriteNibble(b >> 4)
		e.strobe(PixelLoad)
		e.bus.WriteNibble(b & 0x0f)
		e.strobe(PixelLoad)
	}
	e.strobe(LineLoad)
	e.glyphBase += glyph.Count

	if e.marker {
		e.bus.Release(FrameMarker)
		e.marker = false
	}

	e.pixelRow--
	if e.pixelRow > 0 {
		return
	}
	e.pixelRow = glyph.Height
	e.glyphBase = 0
	e.rowBase += Cols
	e.charRow--
	if e.charRow > 0 {
		return
	}
	e.charRow = Rows
	e.rowBase = 0
	e.bus.Assert(FrameMarker)
	e.marker = true
	e.frames.Add(1)
}

// Frames returns the number of frames completed since the engine was
// created.
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

// Reset returns the scan to the top pixel row and releases the frame marker.
func (e *Engine) Reset() {
	e.busy.Lock()
	defer e.busy.Unlock()
	if e.marker {
		e.bus.Release(FrameMarker)
	}
	e.reset()
}

// Sync returns the scan to the top pixel row and asserts the frame marker,
// so that the panel latches the next row sent as the top of a new frame.
// Call it before resuming a refresh that stopped mid-frame.
func (e *Engine) Sync() {
	e.busy.Lock()
	defer e.busy.Unlock()
	e.reset()
	e.bus.Assert(FrameMarker)
	e.marker = true
}

func (e *Engine) reset() {
	e.pixelRow = glyph.Height
	e.charRow = Rows
	e.glyphBase = 0
	e.rowBase = 0
	e.marker = false
}

func (e *Engine) strobe(l Line) {
	e.bus.Assert(l)
	e.bus.Release(l)
}
