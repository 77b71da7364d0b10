// Package scripting lets host applications extend the built-in expense
// keyword rules with their own categorization logic, supplied as a script
// rather than recompiled Go code.
package scripting

import "context"

// Classification is a script-assigned expense classification.
type Classification struct {
	// Label is the short expense label, e.g. "Taxi".
	Label string
	// Category is the accounting category the label maps to.
	Category string
}

// Rules evaluates categorization logic against a parsed transaction. The
// boolean result reports whether the rules produced a classification at all;
// returning false defers to the built-in keyword rules.
type Rules interface {
	Categorize(ctx context.Context, merchant string, amount uint64) (Classification, bool, error)
}
