// Package files defines the boundary through which receipt images enter the
// pipeline and processed artifacts leave it. Sources and sinks are
// deliberately dumb byte movers; decoding, preprocessing and recognition stay
// elsewhere.
package files

import "context"

// File pairs a name with its raw contents.
type File struct {
	Name string
	Data []byte
}

// Source supplies zero or more files to process. A user canceling a
// selection is not an error: implementations return an empty slice and a nil
// error in that case.
type Source interface {
	Files(ctx context.Context) ([]File, error)
}

// Sink accepts a produced artifact and persists it. Implementations must
// return promptly rather than blocking the caller on slow cleanup work, and
// must release any temporary resource they create (staging files, handles)
// on every exit path, at the latest after a short grace period.
type Sink interface {
	Save(ctx context.Context, name string, data []byte, mimeType string) error
}

// MIME types for the artifacts this library produces.
const (
	MIMEPNG    = "image/png"
	MIMECSV    = "text/csv;charset=utf-8"
	MIMEPDF    = "application/pdf"
	MIMEZIP    = "application/zip"
	MIMEHTML   = "text/html;charset=utf-8"
	MIMEBinary = "application/octet-stream"
)
