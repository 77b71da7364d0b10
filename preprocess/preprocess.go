// Package preprocess turns arbitrary receipt photos into high-contrast,
// upscaled, black-and-white PNGs tuned for text recognition: integer
// upscaling with Catmull-Rom resampling, BT.601 grayscale conversion with a
// histogram built in the same pass, global Otsu thresholding, hard
// binarization, and polarity correction for light-text-on-dark images.
//
// Preprocessing is a best-effort accuracy booster, never a hard dependency:
// when the input cannot be decoded or the result cannot be encoded, the
// original bytes are returned unchanged and a warning is logged.
package preprocess

import (
	"bytes"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/minsoo-kang/receiptkit/observability"
)

// Preprocessor runs the receipt image pipeline. The zero value is usable: it
// targets DefaultTargetDimension and logs nowhere.
type Preprocessor struct {
	// TargetDimension is the minimum length of the longer image edge after
	// upscaling. Zero means DefaultTargetDimension.
	TargetDimension int
	// Logger receives warnings on decode/encode fallback. Nil means no logging.
	Logger observability.Logger
}

// Preprocess runs the pipeline with default settings.
func Preprocess(data []byte) []byte {
	var p Preprocessor
	return p.Run(data)
}

// Run transforms encoded image bytes (PNG or JPEG) into an encoded PNG ready
// for recognition. It never fails: on any decode or encode error the input
// is returned byte-for-byte.
func (p *Preprocessor) Run(data []byte) []byte {
	logger := p.logger()

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("preprocess: decode failed, passing input through",
			observability.Error("err", err),
			observability.Int("bytes", len(data)))
		return data
	}

	buf := FromImage(img)
	if buf.Width == 0 || buf.Height == 0 {
		logger.Warn("preprocess: empty image, passing input through",
			observability.String("format", format))
		return data
	}

	target := p.TargetDimension
	if target <= 0 {
		target = DefaultTargetDimension
	}
	buf.Upscale(ScaleFactor(buf.Width, buf.Height, target))

	total := buf.Width * buf.Height
	hist := buf.Grayscale()
	threshold := OtsuThreshold(hist, total)
	white := buf.Binarize(threshold)
	if total-white > white {
		buf.Invert()
	}

	var out bytes.Buffer
	if err := png.Encode(&out, buf.RGBA()); err != nil {
		logger.Warn("preprocess: encode failed, passing input through",
			observability.Error("err", err))
		return data
	}
	return out.Bytes()
}

func (p *Preprocessor) logger() observability.Logger {
	if p.Logger == nil {
		return observability.NopLogger{}
	}
	return p.Logger
}
