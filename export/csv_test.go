package export

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testTransactions(t)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), utf8BOM) {
		t.Fatalf("csv output missing UTF-8 BOM")
	}
}

func TestWriteCSVRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testTransactions(t)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), utf8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	header := records[0]
	want := []string{"파일명", "날짜", "가맹점", "금액"}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], want[i])
		}
	}

	// The first transaction has a confirmed expense type, which replaces
	// the merchant column.
	if got := records[1][2]; got != "Business meal(业务餐)" {
		t.Fatalf("categorized merchant column = %q", got)
	}
	if got := records[2][2]; got != "한국물류" {
		t.Fatalf("uncategorized merchant column = %q", got)
	}
	if got := records[1][3]; got != "12900" {
		t.Fatalf("amount column = %q", got)
	}
	if got := records[1][1]; got != "01.31 14:59" {
		t.Fatalf("date column = %q", got)
	}
}
