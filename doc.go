// Package stnlcd drives a controllerless 320x240 monochrome STN dot-matrix
// LCD over a 4-bit data bus and three control lines.
//
// The panel has no display memory and no controller. The host shifts every
// pixel row in, nibble by nibble, and latches it, 240 times per frame and at
// least 60 times per second. A panel that stops being refreshed shows nothing.
// This package owns that refresh and offers a character framebuffer on top.
//
// # Display Characteristics
//
//   - 320x240 dots, shown as 20 rows of 40 character cells of 8x12 dots
//   - 256 glyphs per font, loaded from a table (see package glyph)
//   - A coarse 80x60 dot canvas: a cell can instead show a 2x3 grid of dots
//   - Box drawing with dedicated glyphs
//   - Refresh at 60Hz by default (one pixel row every ~69µs)
//
// # Hardware Connection
//
//	Panel Pin → System Pin
//	D0..D3    → 4 GPIO outputs (D3 is the leftmost dot of a nibble)
//	FLM       → GPIO (frame marker)
//	CL1       → GPIO (line load)
//	CL2       → GPIO (pixel load, 160 pulses per row)
//	M, DISPOFF and bias supply are handled by the panel board.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"context"
//
//		"periph.io/x/conn/v3/gpio"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/devices/v3/stnlcd"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		pins := stnlcd.Pins{
//			D:   [4]gpio.PinOut{gpioreg.ByName("GPIO5"), gpioreg.ByName("GPIO6"), gpioreg.ByName("GPIO13"), gpioreg.ByName("GPIO19")},
//			FLM: gpioreg.ByName("GPIO17"),
//			CL1: gpioreg.ByName("GPIO27"),
//			CL2: gpioreg.ByName("GPIO22"),
//		}
//		dev, _ := stnlcd.NewGPIO(pins, make([]byte, stnlcd.Size), nil)
//		defer dev.Halt()
//
//		dev.DrawBox(0, 0, 40, 20)
//		dev.SetCursor(1, 1)
//		dev.PutString("Hello")
//		dev.Plot(10, 10, true)
//
//		// Refresh until the context is cancelled.
//		dev.Run(context.Background())
//	}
//
// # Cells and Dots
//
// Every framebuffer byte is a cell. A byte whose two top bits are 10 is a dot
// cell and its six low bits are lit dots; any other byte is the code of the
// glyph to show. The glyph table must therefore map codes 0x80..0xbf to the
// matching dot patterns, as glyph.Default does. Plotting a dot inside a
// character cell erases the character.
//
// The dot canvas origin is the bottom left corner for Plot, and the top left
// corner for the image based Draw method.
//
// # Refresh
//
// Dev.Run drives the refresh from a ticker. Hosts with their own hardware
// timer call Dev.Tick instead, every Dev.TickPeriod. Engine and Framebuffer
// can also be used directly without Dev, for example on a bus implementation
// that is not safe for concurrent use.
//
// The Bus interface is the only hardware dependency. NewGPIOBus implements it
// on periph.io GPIO pins, package cdev on the Linux GPIO character device and
// package stnlcdtest in memory.
//
// # Compatibility with periph.io
//
// Dev implements display.Drawer over the dot canvas and display.TextDisplay
// over the character grid. Dev.Canvas returns a drivers.Displayer for the
// TinyGo drawing packages.
package stnlcd
