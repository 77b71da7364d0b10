package preprocess

import (
	"image"
	"image/draw"
)

// PixelBuffer holds a decoded image as a flat sequence of interleaved 8-bit
// RGBA samples (len(Pix) == Width*Height*4). The pipeline mutates it in
// place; a buffer belongs to exactly one preprocessing call and must not be
// shared across concurrent calls.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// Histogram counts pixels per grayscale intensity, one bin per value 0-255.
type Histogram [256]int

// FromImage copies img into a freshly allocated pixel buffer anchored at the
// origin.
func FromImage(img image.Image) *PixelBuffer {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &PixelBuffer{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    rgba.Pix,
	}
}

// RGBA wraps the buffer as an *image.RGBA without copying pixel data.
func (b *PixelBuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
