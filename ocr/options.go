package ocr

import (
	"bytes"
	"fmt"
)

// InputOption mutates a recognition input before submission.
type InputOption func(*Input)

// WithLanguages sets trained-data hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithRegion sets the recognition region on the input.
func WithRegion(region Region) InputOption {
	return func(in *Input) {
		if region.IsEmpty() {
			in.Region = nil
			return
		}
		in.Region = &region
	}
}

// WithDPI overrides the DPI value on the input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	tiffLE    = []byte{'I', 'I', 0x2a, 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, 0x2a}
)

// SniffFormat detects the image format from the payload's magic bytes.
func SniffFormat(data []byte) (ImageFormat, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ImageFormatPNG, nil
	case bytes.HasPrefix(data, jpegMagic):
		return ImageFormatJPEG, nil
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return ImageFormatTIFF, nil
	}
	return "", fmt.Errorf("unrecognized image format")
}

// InputFromBytes builds a recognition input from an encoded image, detecting
// the format from its magic bytes. The id is echoed back on the Result to
// simplify correlation, and is typically the source filename.
func InputFromBytes(id string, data []byte, opts ...InputOption) (Input, error) {
	format, err := SniffFormat(data)
	if err != nil {
		return Input{}, fmt.Errorf("input %s: %w", id, err)
	}
	in := Input{
		ID:     id,
		Image:  data,
		Format: format,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
