package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/minsoo-kang/receiptkit/receipt"
)

// A4 layout in PDF points (1 pt = 1/72 inch).
const (
	pdfMargin  = 28.35 // ~10 mm
	pdfFooterH = 42.52 // ~15 mm
)

// WritePDF writes one receipt image per A4 page, centered and
// aspect-preserved above an ASCII footer line
//
//	{index}. {datetime}  {amount}  {expense type}
//
// The footer uses the built-in Helvetica font, so non-ASCII runes are
// replaced with '?'.
func WritePDF(w io.Writer, ts receipt.Transactions) error {
	if len(ts) == 0 {
		return errors.New("no transactions to export")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 10)
	pageW, pageH := pdf.GetPageSize()

	for i, t := range ts {
		imgType, err := pdfImageType(t.Image)
		if err != nil {
			return fmt.Errorf("receipt #%d: %w", i+1, err)
		}
		opts := gofpdf.ImageOptions{ImageType: imgType}
		name := fmt.Sprintf("receipt-%03d", i+1)
		info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(t.Image))
		if pdf.Err() {
			return fmt.Errorf("receipt #%d: %w", i+1, pdf.Error())
		}

		availW := pageW - 2*pdfMargin
		availH := pageH - pdfFooterH - 2*pdfMargin
		aspect := info.Width() / info.Height()
		drawW, drawH := availW, availW/aspect
		if aspect <= availW/availH {
			drawW, drawH = availH*aspect, availH
		}
		x := pdfMargin + (availW-drawW)/2
		y := pdfMargin + (availH-drawH)/2

		pdf.AddPage()
		pdf.ImageOptions(name, x, y, drawW, drawH, false, opts, 0, "")

		footer := fmt.Sprintf("%d. %s  %s  %s",
			i+1,
			t.Time.Format("2006-01-02 15:04"),
			formatKRW(t.Amount),
			asciiOnly(expenseOrDash(t.ExpenseType)))
		pdf.Text(pdfMargin, pageH-pdfFooterH/2, footer)
	}
	return pdf.Output(w)
}

func expenseOrDash(label string) string {
	if label == "" {
		return "-"
	}
	return label
}

// asciiOnly replaces everything Helvetica cannot render with '?'.
func asciiOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' || (r > 0x20 && r < 0x7f) {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}

// formatKRW renders an amount with thousands separators, e.g. 1,234,500.
func formatKRW(amount uint64) string {
	s := fmt.Sprint(amount)
	var b bytes.Buffer
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pdfImageType(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return "PNG", nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "JPEG", nil
	}
	return "", errors.New("image is neither PNG nor JPEG")
}
