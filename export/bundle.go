package export

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/minsoo-kang/receiptkit/receipt"
)

// WriteBundle writes a zip archive holding the numbered receipt images, the
// CSV export and the PDF export, mirroring what users previously assembled
// by hand.
func WriteBundle(w io.Writer, ts receipt.Transactions) error {
	var csvBuf, pdfBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, ts); err != nil {
		return fmt.Errorf("bundle csv: %w", err)
	}
	if err := WritePDF(&pdfBuf, ts); err != nil {
		return fmt.Errorf("bundle pdf: %w", err)
	}

	zw := zip.NewWriter(w)
	for i, t := range ts {
		name := fmt.Sprintf("%03d_%s", i+1, safeName(t.Filename))
		f, err := zw.Create(path.Join("images", name))
		if err != nil {
			return fmt.Errorf("bundle image %s: %w", name, err)
		}
		if _, err := f.Write(t.Image); err != nil {
			return fmt.Errorf("bundle image %s: %w", name, err)
		}
	}
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{"transactions.csv", csvBuf.Bytes()},
		{"receipts.pdf", pdfBuf.Bytes()},
	} {
		f, err := zw.Create(entry.name)
		if err != nil {
			return fmt.Errorf("bundle %s: %w", entry.name, err)
		}
		if _, err := f.Write(entry.data); err != nil {
			return fmt.Errorf("bundle %s: %w", entry.name, err)
		}
	}
	return zw.Close()
}

// safeName strips path separators recognition filenames may carry.
func safeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "receipt"
	}
	return name
}
