package ocr

import (
	"context"
	"image"
)

// ImageFormat is the MIME content type of a recognition input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Region is a rectangle in pixel coordinates, origin at the top-left of the
// image. Receipt images are cropped and measured in whole pixels.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsEmpty reports whether the region covers no pixels.
func (r Region) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Union returns the smallest region covering both r and other. An empty
// operand does not grow the result.
func (r Region) Union(other Region) Region {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	u := r.Rect().Union(other.Rect())
	return Region{X: u.Min.X, Y: u.Min.Y, Width: u.Dx(), Height: u.Dy()}
}

// Input is one receipt image submitted for recognition.
type Input struct {
	// ID identifies the input, usually the source filename. Engines echo it
	// back in Result.InputID.
	ID string
	// Image holds the encoded bytes, normally the output of the preprocess
	// pipeline.
	Image []byte
	// Format declares the content type of Image.
	Format ImageFormat
	// DPI is the effective dots-per-inch hint for engines that use it in
	// layout heuristics. Zero means unknown.
	DPI int
	// Languages lists trained-data hints such as "kor" or "eng". Card
	// receipts mix scripts, so more than one hint is common.
	Languages []string
	// Region limits recognition to part of the image; nil means all of it.
	Region *Region
	// Metadata passes engine-specific knobs through, e.g.
	// "tessedit_pageseg_mode" for Tesseract.
	Metadata map[string]string
}

// TextWord is one recognized token with its pixel bounds.
type TextWord struct {
	Text       string
	Bounds     Region
	Confidence float64
}

// TextLine groups the words sharing a baseline. Receipt parsing works line
// by line, so lines are the unit engines are expected to produce.
type TextLine struct {
	Text       string
	Bounds     Region
	Words      []TextWord
	Confidence float64
}

// TextBlock aggregates lines into a logical block.
type TextBlock struct {
	Text       string
	Bounds     Region
	Lines      []TextLine
	Confidence float64
}

// Result is the recognition output for one input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PlainText is the linearized text, the input to the receipt parsers.
	PlainText string
	// Blocks carries the structured layout with positions.
	Blocks []TextBlock
	// Language is the dominant detected language, when the engine knows it.
	Language string
}

// Engine recognizes one image at a time.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// BatchEngine recognizes several images in one call, letting providers
// amortize setup or round-trip costs.
type BatchEngine interface {
	Engine
	RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error)
}
