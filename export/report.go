package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/minsoo-kang/receiptkit/receipt"
)

// MarkdownReport renders a transaction summary as a markdown document with
// a per-receipt table and per-expense-type subtotals.
func MarkdownReport(ts receipt.Transactions) string {
	var b strings.Builder
	b.WriteString("# 지출 내역\n\n")
	fmt.Fprintf(&b, "건수: %d, 합계: %s원\n\n", len(ts), formatKRW(ts.Total()))

	b.WriteString("| 날짜 | 가맹점 | 금액 | 분류 |\n")
	b.WriteString("| --- | --- | ---: | --- |\n")
	for _, t := range ts {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			t.Time.Format("2006.01.02 15:04"),
			escapeCell(t.Merchant),
			formatKRW(t.Amount),
			escapeCell(expenseOrDash(t.ExpenseType)))
	}

	totals, order := expenseTotals(ts)
	if len(order) > 0 {
		b.WriteString("\n## 분류별 합계\n\n")
		for _, label := range order {
			fmt.Fprintf(&b, "- %s: %s원\n", label, formatKRW(totals[label]))
		}
	}
	return b.String()
}

// WriteHTMLReport converts the markdown report to a standalone HTML fragment.
func WriteHTMLReport(w io.Writer, ts receipt.Transactions) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(MarkdownReport(ts)), &buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// expenseTotals sums amounts per expense label, keeping first-seen order.
// Uncategorized transactions are grouped under a dash.
func expenseTotals(ts receipt.Transactions) (map[string]uint64, []string) {
	totals := make(map[string]uint64)
	var order []string
	for _, t := range ts {
		label := expenseOrDash(t.ExpenseType)
		if _, seen := totals[label]; !seen {
			order = append(order, label)
		}
		totals[label] += t.Amount
	}
	return totals, order
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
