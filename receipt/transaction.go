// Package receipt models card receipt transactions and parses them out of
// recognized receipt text. Parsing understands the card receipt layouts the
// recognizer commonly sees (Hana card web receipts, Naver Hyundai card app
// screens, generic card-app sales slips) and falls back to trying each format
// in turn for anything unrecognized.
package receipt

import (
	"sort"
	"time"
)

// Format identifies the receipt layout a transaction was parsed from.
type Format string

const (
	FormatHanaCard     Format = "hana-card"
	FormatNaverHyundai Format = "naver-hyundai"
	FormatCardApp      Format = "card-app"
	FormatUnknown      Format = "unknown"
)

// Transaction is one card payment extracted from a receipt image.
type Transaction struct {
	// Filename of the source image.
	Filename string
	// Time of the transaction (no timezone information on receipts; local
	// wall time is assumed).
	Time time.Time
	// Merchant as printed on the receipt.
	Merchant string
	// Amount in KRW.
	Amount uint64
	// RawText is the full recognized text the transaction was parsed from.
	RawText string
	// Format is the detected receipt layout.
	Format Format
	// ExpenseType is the confirmed expense label (e.g. "Taxi", "Gas");
	// empty until assigned by a rule or the user.
	ExpenseType string
	// Image holds the original encoded image for exports that embed it.
	Image []byte
}

// Transactions is an ordered collection with the sort and aggregate helpers
// the exporters need.
type Transactions []Transaction

// SortColumn selects the key SortBy orders on.
type SortColumn int

const (
	SortByTime SortColumn = iota
	SortByMerchant
	SortByAmount
)

// SortBy orders the collection by the given column, stably.
func (ts Transactions) SortBy(col SortColumn, descending bool) {
	less := func(i, j int) bool { return ts[i].Time.Before(ts[j].Time) }
	switch col {
	case SortByMerchant:
		less = func(i, j int) bool { return ts[i].Merchant < ts[j].Merchant }
	case SortByAmount:
		less = func(i, j int) bool { return ts[i].Amount < ts[j].Amount }
	}
	if descending {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(ts, less)
}

// Total sums all transaction amounts.
func (ts Transactions) Total() uint64 {
	var total uint64
	for _, t := range ts {
		total += t.Amount
	}
	return total
}
