package tesseract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/minsoo-kang/receiptkit/ocr"
)

// ensureTesseractAvailable checks that the tesseract binary is reachable.
func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func textImagePNG(t *testing.T, text string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 240, 80))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(10, 50),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	in, err := ocr.InputFromBytes("sample.png", textImagePNG(t, "TOTAL 12900"),
		ocr.WithLanguages("eng"), ocr.WithDPI(300))
	if err != nil {
		t.Fatalf("InputFromBytes() error = %v", err)
	}

	res, err := NewEngine().Recognize(context.Background(), in)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	got := strings.ToUpper(res.PlainText)
	if !strings.Contains(got, "TOTAL") || !strings.Contains(got, "12900") {
		t.Fatalf("unexpected recognition output: %q", res.PlainText)
	}
	if res.InputID != "sample.png" {
		t.Fatalf("unexpected input id: %s", res.InputID)
	}
	if len(res.Blocks) == 0 {
		t.Fatal("expected structured blocks")
	}
}

func TestEngineRecognizeBatch(t *testing.T) {
	ensureTesseractAvailable(t)

	var inputs []ocr.Input
	for _, text := range []string{"CARD 100", "CASH 200"} {
		in, err := ocr.InputFromBytes(text, textImagePNG(t, text), ocr.WithLanguages("eng"), ocr.WithDPI(300))
		if err != nil {
			t.Fatalf("InputFromBytes() error = %v", err)
		}
		inputs = append(inputs, in)
	}

	results, err := NewEngine().RecognizeBatch(context.Background(), inputs)
	if err != nil {
		t.Fatalf("RecognizeBatch() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestDefaultEngineInstalled(t *testing.T) {
	if ocr.DefaultEngine().Name() != "tesseract" {
		t.Fatalf("default engine = %q, want tesseract", ocr.DefaultEngine().Name())
	}
}
