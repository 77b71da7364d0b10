// Package export renders parsed transactions into the artifacts users take
// away: a spreadsheet-friendly CSV, a PDF with one receipt image per page, a
// zip bundle of everything, an HTML summary report, and a spending chart.
// Optionally bundles can be sealed with a password.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/minsoo-kang/receiptkit/receipt"
)

// utf8BOM keeps Excel from misreading Korean text in the CSV.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// WriteCSV writes transactions as UTF-8 CSV with a leading BOM. When a
// transaction carries a confirmed expense type it replaces the merchant
// column; downstream expense tooling reads that column.
func WriteCSV(w io.Writer, ts receipt.Transactions) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"파일명", "날짜", "가맹점", "금액"}); err != nil {
		return err
	}
	for _, t := range ts {
		merchant := t.Merchant
		if t.ExpenseType != "" {
			merchant = t.ExpenseType
		}
		record := []string{
			t.Filename,
			t.Time.Format("01.02 15:04"),
			merchant,
			strconv.FormatUint(t.Amount, 10),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
