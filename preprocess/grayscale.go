package preprocess

// Grayscale reduces every pixel to its BT.601 luma in place, writing the
// value back into the three color channels (alpha is left alone), and builds
// the intensity histogram during the same traversal. The sum of all histogram
// bins equals Width*Height.
func (b *PixelBuffer) Grayscale() Histogram {
	var hist Histogram
	for i := 0; i < len(b.Pix); i += 4 {
		r := uint32(b.Pix[i])
		g := uint32(b.Pix[i+1])
		bl := uint32(b.Pix[i+2])
		// round(0.299R + 0.587G + 0.114B) in fixed point
		y := uint8((299*r + 587*g + 114*bl + 500) / 1000)
		b.Pix[i] = y
		b.Pix[i+1] = y
		b.Pix[i+2] = y
		hist[y]++
	}
	return hist
}
