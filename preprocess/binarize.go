package preprocess

// Binarize hard-maps every pixel to pure white when its gray value exceeds
// threshold and pure black otherwise, and reports how many pixels came out
// white. Alpha is untouched. After this pass every color channel is exactly
// 0 or 255.
func (b *PixelBuffer) Binarize(threshold uint8) int {
	white := 0
	for i := 0; i < len(b.Pix); i += 4 {
		v := byte(0)
		if b.Pix[i] > threshold {
			v = 255
			white++
		}
		b.Pix[i] = v
		b.Pix[i+1] = v
		b.Pix[i+2] = v
	}
	return white
}

// Invert flips every color channel (255 - v), leaving alpha untouched. The
// pipeline runs it when the binarized image came out predominantly black, so
// downstream recognition always sees dark text on a light background.
func (b *PixelBuffer) Invert() {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255 - b.Pix[i]
		b.Pix[i+1] = 255 - b.Pix[i+1]
		b.Pix[i+2] = 255 - b.Pix[i+2]
	}
}
