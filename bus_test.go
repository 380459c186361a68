package stnlcd

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/pin"
)

type testPins struct {
	d             [4]*gpiotest.Pin
	flm, cl1, cl2 *gpiotest.Pin
}

func newTestPins() *testPins {
	p := &testPins{
		flm: &gpiotest.Pin{N: "FLM", Num: 4, L: gpio.High},
		cl1: &gpiotest.Pin{N: "CL1", Num: 5, L: gpio.High},
		cl2: &gpiotest.Pin{N: "CL2", Num: 6, L: gpio.High},
	}
	for i := range p.d {
		p.d[i] = &gpiotest.Pin{N: "D" + string(rune('0'+i)), Num: i, L: gpio.High}
	}
	return p
}

func (p *testPins) pins() Pins {
	return Pins{
		D:   [4]gpio.PinOut{p.d[0], p.d[1], p.d[2], p.d[3]},
		FLM: p.flm,
		CL1: p.cl1,
		CL2: p.cl2,
	}
}

func (p *testPins) nibble() byte {
	var v byte
	for i, d := range p.d {
		if d.Read() {
			v |= 1 << uint(i)
		}
	}
	return v
}

func TestNewGPIOBus(t *testing.T) {
	p := newTestPins()
	b, err := NewGPIOBus(p.pins())
	if err != nil {
		t.Fatalf("NewGPIOBus() error = %v", err)
	}
	for _, tp := range []*gpiotest.Pin{p.flm, p.cl1, p.cl2, p.d[0], p.d[1], p.d[2], p.d[3]} {
		if tp.Read() != gpio.Low {
			t.Errorf("%s should be driven low", tp)
		}
	}
	if want := "GPIOBus{D:D0(0),D1(1),D2(2),D3(3) FLM:FLM(4) CL1:CL1(5) CL2:CL2(6)}"; b.String() != want {
		t.Errorf("String() = %q, want %q", b.String(), want)
	}
}

func TestNewGPIOBusMissingPins(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Pins)
	}{
		{"no FLM", func(p *Pins) { p.FLM = nil }},
		{"no CL1", func(p *Pins) { p.CL1 = nil }},
		{"no CL2", func(p *Pins) { p.CL2 = nil }},
		{"no D2", func(p *Pins) { p.D[2] = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pins := newTestPins().pins()
			tt.modify(&pins)
			if _, err := NewGPIOBus(pins); err == nil {
				t.Error("NewGPIOBus should fail")
			}
		})
	}
}

func TestGPIOBusLines(t *testing.T) {
	p := newTestPins()
	b, err := NewGPIOBus(p.pins())
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		l   Line
		pin *gpiotest.Pin
	}{
		{FrameMarker, p.flm},
		{LineLoad, p.cl1},
		{PixelLoad, p.cl2},
	} {
		b.Assert(tt.l)
		if tt.pin.Read() != gpio.High {
			t.Errorf("Assert(%s) should drive %s high", tt.l, tt.pin)
		}
		b.Release(tt.l)
		if tt.pin.Read() != gpio.Low {
			t.Errorf("Release(%s) should drive %s low", tt.l, tt.pin)
		}
	}
}

func TestGPIOBusWriteNibble(t *testing.T) {
	p := newTestPins()
	b, err := NewGPIOBus(p.pins())
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []byte{0x0, 0x1, 0x8, 0xf, 0xa, 0x5, 0x5, 0x3c} {
		b.WriteNibble(v)
		if got := p.nibble(); got != v&0x0f {
			t.Errorf("WriteNibble(0x%x): pins = 0x%x", v, got)
		}
	}
	if err := b.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

// failPin fails every write.
type failPin struct {
	gpiotest.Pin
}

func (f *failPin) Out(l gpio.Level) error {
	return errors.New("pin on fire")
}

func TestGPIOBusStickyError(t *testing.T) {
	p := newTestPins()
	pins := p.pins()

	bad := &failPin{}
	pins.CL2 = bad
	if _, err := NewGPIOBus(pins); err == nil {
		t.Fatal("NewGPIOBus should report the failing pin")
	}

	// A pin failing after construction is reported by Err and Halt.
	b, err := NewGPIOBus(p.pins())
	if err != nil {
		t.Fatal(err)
	}
	b.pins.CL2 = bad
	b.Assert(PixelLoad)
	b.Release(LineLoad)
	if b.Err() == nil {
		t.Fatal("Err() should report the pin failure")
	}
	if b.Halt() == nil {
		t.Error("Halt() should report the pin failure")
	}
}

// fakeGroup records the values written to a pin group.
type fakeGroup struct {
	value gpio.GPIOValue
	masks []gpio.GPIOValue
}

func (g *fakeGroup) Pins() []pin.Pin             { return nil }
func (g *fakeGroup) ByOffset(offset int) pin.Pin { return nil }
func (g *fakeGroup) ByName(name string) pin.Pin  { return nil }
func (g *fakeGroup) ByNumber(number int) pin.Pin { return nil }
func (g *fakeGroup) String() string              { return "group" }
func (g *fakeGroup) Halt() error                 { return nil }

func (g *fakeGroup) Out(value, mask gpio.GPIOValue) error {
	g.value = g.value&^mask | value&mask
	g.masks = append(g.masks, mask)
	return nil
}

func (g *fakeGroup) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return g.value & mask, nil
}

func (g *fakeGroup) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, errors.New("not supported")
}

func TestGPIOBusGroup(t *testing.T) {
	p := newTestPins()
	pins := p.pins()
	pins.D = [4]gpio.PinOut{}
	g := &fakeGroup{value: 0xff}
	pins.Data = g

	b, err := NewGPIOBus(pins)
	if err != nil {
		t.Fatalf("NewGPIOBus() error = %v", err)
	}
	if g.value != 0xf0 {
		t.Errorf("group = 0x%x after init, want 0xf0", g.value)
	}
	b.WriteNibble(0x9)
	if g.value != 0xf9 {
		t.Errorf("group = 0x%x, want 0xf9", g.value)
	}
	b.WriteNibble(0xb)
	if got := g.masks[len(g.masks)-1]; got != 0x2 {
		t.Errorf("last mask = 0x%x, want only the changed bit 0x2", got)
	}
	n := len(g.masks)
	b.WriteNibble(0xb)
	if len(g.masks) != n {
		t.Error("writing the same nibble should not touch the pins")
	}
	if want := "GPIOBus{D:group FLM:FLM(4) CL1:CL1(5) CL2:CL2(6)}"; b.String() != want {
		t.Errorf("String() = %q, want %q", b.String(), want)
	}
}

func TestLineString(t *testing.T) {
	for l, want := range map[Line]string{FrameMarker: "FLM", LineLoad: "CL1", PixelLoad: "CL2", 7: "Line(7)"} {
		if got := l.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
