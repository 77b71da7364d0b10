package ocr

import (
	"bytes"
	"image"
	"image/png"
	"reflect"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInputFromBytes(t *testing.T) {
	region := Region{X: 0, Y: 0, Width: 1, Height: 1}
	meta := map[string]string{"tessedit_pageseg_mode": "6"}

	in, err := InputFromBytes(
		"receipt-001.png",
		pngBytes(t),
		WithLanguages("kor", "eng"),
		WithRegion(region),
		WithDPI(300),
		WithMetadata(meta),
	)
	if err != nil {
		t.Fatalf("InputFromBytes() error = %v", err)
	}
	if in.Format != ImageFormatPNG {
		t.Fatalf("unexpected format: %v", in.Format)
	}
	if in.ID != "receipt-001.png" {
		t.Fatalf("unexpected id: %s", in.ID)
	}
	if !reflect.DeepEqual(in.Languages, []string{"kor", "eng"}) {
		t.Fatalf("unexpected languages: %+v", in.Languages)
	}
	if in.Region == nil || *in.Region != region {
		t.Fatalf("unexpected region: %#v", in.Region)
	}
	if in.DPI != 300 {
		t.Fatalf("unexpected dpi: %d", in.DPI)
	}
	meta["tessedit_pageseg_mode"] = "7"
	if in.Metadata["tessedit_pageseg_mode"] != "6" {
		t.Fatalf("metadata was not copied: %+v", in.Metadata)
	}
}

func TestInputFromBytesRejectsGarbage(t *testing.T) {
	if _, err := InputFromBytes("junk", []byte("not an image")); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestSniffFormat(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want ImageFormat
	}{
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}, ImageFormatPNG},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, ImageFormatJPEG},
		{"tiff le", []byte{'I', 'I', 0x2a, 0x00}, ImageFormatTIFF},
		{"tiff be", []byte{'M', 'M', 0x00, 0x2a}, ImageFormatTIFF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SniffFormat(tc.data)
			if err != nil {
				t.Fatalf("SniffFormat() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("SniffFormat() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWithRegionClearsEmpty(t *testing.T) {
	in := Input{Region: &Region{X: 1, Y: 1, Width: 2, Height: 2}}
	WithRegion(Region{})(&in)
	if in.Region != nil {
		t.Fatalf("expected nil region for empty input, got %#v", in.Region)
	}
}
