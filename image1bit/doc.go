// Package image1bit provides a 1-bit monochrome image format matching the
// row format of controllerless STN LCD panels.
//
// The panel shifts dots in 4 at a time, left to right, so a byte holds 8
// horizontal dots with the most significant bit being the leftmost one. This
// is also the layout of one glyph row in the stnlcd glyph table.
//
// Memory layout example for a 16-dot row:
//
//	Dots:  0 1 2 3 4 5 6 7  8 9 ...
//	Value: 1 0 0 0 0 0 0 1  1 1 ...
//	Bytes: 0x81             0xC0 ...
//
// This package provides:
//
//   - Bit: A color type representing a dot that is either on or off
//   - BitModel: A color model thresholding standard Go colors to Bit
//   - HorizontalBits: An image.Image implementation with MSB-first packing
//
// Example usage:
//
//	// Create a 320x240 image
//	img := image1bit.NewHorizontalBits(image.Rect(0, 0, 320, 240))
//
//	// Turn a dot on
//	img.SetBit(10, 20, image1bit.On)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image1bit
