// Package frame provides the decoded pixel buffer type and the record
// decoder that converts stored image records into frames.
package frame

import (
	"image"
	"image/color"
)

// bytesPerPixel is the byte width of one canonical-order pixel.
const bytesPerPixel = 3

// Frame is a decoded pixel buffer in the canonical R-G-B channel order,
// 3 bytes per pixel, rows packed without padding. A frame is exclusively
// owned by the stream writer from decode until it is handed to the sink.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// Bytes returns the size of the pixel buffer in bytes.
func (f *Frame) Bytes() int {
	return len(f.Pix)
}

// ToImage converts the frame into an opaque *image.RGBA for the sink.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	si := 0
	for y := 0; y < f.Height; y++ {
		di := y * img.Stride
		for x := 0; x < f.Width; x++ {
			img.Pix[di] = f.Pix[si]
			img.Pix[di+1] = f.Pix[si+1]
			img.Pix[di+2] = f.Pix[si+2]
			img.Pix[di+3] = 0xff
			si += bytesPerPixel
			di += 4
		}
	}
	return img
}

// At returns the pixel at (x, y). Mostly useful in tests.
func (f *Frame) At(x, y int) color.RGBA {
	i := (y*f.Width + x) * bytesPerPixel
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 0xff}
}
