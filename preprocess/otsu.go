package preprocess

// FallbackThreshold is returned when no candidate threshold produces two
// non-empty classes, e.g. for a perfectly uniform image.
const FallbackThreshold = 128

// OtsuThreshold picks the binarization threshold that maximizes the
// between-class variance of the two resulting pixel classes. Candidates with
// an empty background class are skipped; once the foreground class empties
// the scan stops, since no pixels remain above that intensity. Ties keep the
// first (lowest) candidate. Runs in O(256) regardless of image size.
func OtsuThreshold(hist Histogram, total int) uint8 {
	var sum float64
	for t, n := range hist {
		sum += float64(t) * float64(n)
	}

	threshold := uint8(FallbackThreshold)
	var best, wB, sumB float64
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		meanB := sumB / wB
		meanF := (sum - sumB) / wF
		variance := wB * wF * (meanB - meanF) * (meanB - meanF)
		if variance > best {
			best = variance
			threshold = uint8(t)
		}
	}
	return threshold
}
