package export

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestWriteBundleContents(t *testing.T) {
	ts := testTransactions(t)
	var buf bytes.Buffer
	if err := WriteBundle(&buf, ts); err != nil {
		t.Fatalf("WriteBundle: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open bundle: %v", err)
	}
	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		entries[f.Name] = data
	}

	for _, name := range []string{"images/001_hana.png", "images/002_naver.png", "transactions.csv", "receipts.pdf"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("bundle missing %s", name)
		}
	}
	if !bytes.Equal(entries["images/001_hana.png"], ts[0].Image) {
		t.Error("bundled image differs from transaction image")
	}
	if !bytes.HasPrefix(entries["transactions.csv"], utf8BOM) {
		t.Error("bundled csv missing BOM")
	}
	if !bytes.HasPrefix(entries["receipts.pdf"], []byte("%PDF-")) {
		t.Error("bundled pdf missing header")
	}
}

func TestSafeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"receipt.png", "receipt.png"},
		{"dir/receipt.png", "receipt.png"},
		{"..\\..\\evil.png", "evil.png"},
		{"", "receipt"},
	}
	for _, c := range cases {
		if got := safeName(c.in); got != c.want {
			t.Errorf("safeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
