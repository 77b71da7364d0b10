package export

import (
	"bytes"
	"testing"
)

func TestWriteCategoryChart(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCategoryChart(&buf, testTransactions(t)); err != nil {
		t.Fatalf("WriteCategoryChart: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("chart output is not a PNG")
	}
}

func TestWriteCategoryChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCategoryChart(&buf, nil); err == nil {
		t.Fatal("expected error for empty transaction list")
	}
}

func TestExpenseTotals(t *testing.T) {
	totals, order := expenseTotals(testTransactions(t))
	if len(order) != 2 {
		t.Fatalf("got %d groups, want 2", len(order))
	}
	if order[0] != "Business meal(业务餐)" || order[1] != "-" {
		t.Fatalf("group order = %v", order)
	}
	if totals["Business meal(业务餐)"] != 12900 || totals["-"] != 43489 {
		t.Fatalf("totals = %v", totals)
	}
}
