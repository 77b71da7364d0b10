// Package tesseract provides the default, locally-running recognition engine
// backed by the gosseract binding to libtesseract. Importing it installs the
// engine as the library default:
//
//	import _ "github.com/minsoo-kang/receiptkit/ocr/tesseract"
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/minsoo-kang/receiptkit/ocr"
)

func init() {
	ocr.SetDefaultEngine(NewEngine())
}

// Engine implements ocr.Engine and ocr.BatchEngine using the gosseract
// client. A fresh client is created per recognition call, so a single Engine
// is safe for concurrent use.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed recognition engine.
func NewEngine() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize performs recognition on a single image input.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	c := e.clientFactory()
	defer c.Close()
	return e.recognizeWithClient(ctx, c, in)
}

// RecognizeBatch processes inputs sequentially. Each input gets its own
// client: receipts arrive in different languages and layouts, so per-image
// configuration beats a shared client here.
func (e *Engine) RecognizeBatch(ctx context.Context, inputs []ocr.Input) ([]ocr.Result, error) {
	results := make([]ocr.Result, 0, len(inputs))
	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		res, err := e.Recognize(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("recognize %s: %w", in.ID, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Engine) recognizeWithClient(ctx context.Context, c *gosseract.Client, in ocr.Input) (ocr.Result, error) {
	imgData, err := cropImage(in.Image, in.Region)
	if err != nil {
		return ocr.Result{}, err
	}
	if err := c.SetImageFromBytes(imgData); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return ocr.Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	plain := strings.TrimSpace(text)

	lines, avgConf := extractLines(c)
	bounds := mergeLineBounds(lines)

	res := ocr.Result{
		InputID:   in.ID,
		PlainText: plain,
	}
	if len(in.Languages) > 0 {
		res.Language = in.Languages[0]
	}
	res.Blocks = []ocr.TextBlock{{
		Text:       plain,
		Bounds:     bounds,
		Lines:      lines,
		Confidence: avgConf,
	}}
	return res, nil
}

// extractLines groups recognized words into lines by baseline, reading word
// boxes from the client. Tesseract reports confidences in [0,100]; Result
// carries them normalized to [0,1].
func extractLines(c *gosseract.Client) ([]ocr.TextLine, float64) {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil || len(boxes) == 0 {
		return wordsAsSingleLine(c)
	}
	lines := make([]ocr.TextLine, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		sum += conf
		lines = append(lines, ocr.TextLine{
			Text:       strings.TrimSpace(b.Word),
			Bounds:     regionFromRect(b.Box),
			Confidence: conf,
		})
	}
	return lines, sum / float64(len(lines))
}

func wordsAsSingleLine(c *gosseract.Client) ([]ocr.TextLine, float64) {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil, 0
	}
	words := make([]ocr.TextWord, 0, len(boxes))
	var sum float64
	var parts []string
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		sum += conf
		parts = append(parts, b.Word)
		words = append(words, ocr.TextWord{
			Text:       b.Word,
			Bounds:     regionFromRect(b.Box),
			Confidence: conf,
		})
	}
	avg := sum / float64(len(words))
	line := ocr.TextLine{
		Text:       strings.Join(parts, " "),
		Words:      words,
		Confidence: avg,
	}
	for _, w := range words {
		line.Bounds = line.Bounds.Union(w.Bounds)
	}
	return []ocr.TextLine{line}, avg
}

func regionFromRect(r image.Rectangle) ocr.Region {
	return ocr.Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func mergeLineBounds(lines []ocr.TextLine) ocr.Region {
	var merged ocr.Region
	for _, l := range lines {
		merged = merged.Union(l.Bounds)
	}
	return merged
}

func cropImage(data []byte, region *ocr.Region) ([]byte, error) {
	if region == nil || region.IsEmpty() {
		return data, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode for region: %w", err)
	}
	rect := region.Rect().Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("region outside image bounds")
	}
	subImg, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image does not support sub-image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, subImg.SubImage(rect)); err != nil {
		return nil, fmt.Errorf("encode cropped image: %w", err)
	}
	return buf.Bytes(), nil
}
