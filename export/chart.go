package export

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/minsoo-kang/receiptkit/receipt"
)

// WriteCategoryChart renders a PNG bar chart of spending per expense type.
func WriteCategoryChart(w io.Writer, ts receipt.Transactions) error {
	totals, order := expenseTotals(ts)
	if len(order) == 0 {
		return errors.New("no transactions to chart")
	}

	bars := make([]chart.Value, 0, len(order))
	for _, label := range order {
		bars = append(bars, chart.Value{
			Label: label,
			Value: float64(totals[label]),
		})
	}

	graph := chart.BarChart{
		Title:    "Spending by category",
		Width:    128 * len(bars),
		Height:   512,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	if graph.Width < 512 {
		graph.Width = 512
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
