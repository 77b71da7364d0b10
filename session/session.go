// Package session ties the pipeline together for host applications: it owns
// the recognition engine handle, runs image preprocessing, recognition and
// receipt parsing per file, and assigns expense types.
//
// A Session replaces what would otherwise be process-wide engine state: the
// host constructs one explicitly, passes it around by reference, and the
// engine is initialized on first use and reused for the session's lifetime.
// No teardown is needed.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/minsoo-kang/receiptkit/files"
	"github.com/minsoo-kang/receiptkit/observability"
	"github.com/minsoo-kang/receiptkit/ocr"
	"github.com/minsoo-kang/receiptkit/preprocess"
	"github.com/minsoo-kang/receiptkit/receipt"
	"github.com/minsoo-kang/receiptkit/scripting"
)

// Session coordinates preprocessing, recognition and parsing. Construct it
// with New; the zero value is not usable.
type Session struct {
	engineFactory func() ocr.Engine
	engineOnce    sync.Once
	engine        ocr.Engine

	pre       preprocess.Preprocessor
	languages []string
	dpi       int
	rules     scripting.Rules
	logger    observability.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEngine pins the recognition engine instead of the library default.
func WithEngine(engine ocr.Engine) Option {
	return func(s *Session) { s.engineFactory = func() ocr.Engine { return engine } }
}

// WithEngineFactory defers engine construction to first use. Useful when
// building the engine is expensive or must happen after configuration.
func WithEngineFactory(factory func() ocr.Engine) Option {
	return func(s *Session) { s.engineFactory = factory }
}

// WithLanguages sets the trained-data hints passed to the engine.
func WithLanguages(langs ...string) Option {
	return func(s *Session) { s.languages = append([]string(nil), langs...) }
}

// WithDPI sets the DPI hint passed to the engine.
func WithDPI(dpi int) Option {
	return func(s *Session) { s.dpi = dpi }
}

// WithRules installs script-defined categorization rules that take
// precedence over the built-in keyword rules.
func WithRules(rules scripting.Rules) Option {
	return func(s *Session) { s.rules = rules }
}

// WithLogger routes pipeline warnings to the given logger.
func WithLogger(logger observability.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithTargetDimension overrides the preprocessing upscale target.
func WithTargetDimension(dim int) Option {
	return func(s *Session) { s.pre.TargetDimension = dim }
}

// New constructs a session. Without WithEngine/WithEngineFactory the library
// default engine is picked up lazily on the first recognition.
func New(opts ...Option) *Session {
	s := &Session{
		engineFactory: ocr.DefaultEngine,
		logger:        observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pre.Logger = s.logger
	return s
}

// handle returns the engine, initializing it exactly once.
func (s *Session) handle() ocr.Engine {
	s.engineOnce.Do(func() { s.engine = s.engineFactory() })
	return s.engine
}

// Recognize preprocesses one receipt image, runs recognition on it, and
// parses the recognized text into a transaction. The raw recognition result
// is returned alongside the transaction so callers can inspect confidences
// or the full text even when parsing fails.
func (s *Session) Recognize(ctx context.Context, f files.File) (receipt.Transaction, ocr.Result, error) {
	processed := s.pre.Run(f.Data)

	in, err := ocr.InputFromBytes(f.Name, processed,
		ocr.WithLanguages(s.languages...),
		ocr.WithDPI(s.dpi))
	if err != nil {
		return receipt.Transaction{}, ocr.Result{}, err
	}

	res, err := s.handle().Recognize(ctx, in)
	if err != nil {
		return receipt.Transaction{}, ocr.Result{}, fmt.Errorf("recognize %s: %w", f.Name, err)
	}

	txn, err := receipt.Parse(f.Name, res.PlainText)
	if err != nil {
		return receipt.Transaction{}, res, err
	}
	txn.Image = f.Data
	s.categorize(ctx, &txn)
	return txn, res, nil
}

// Process pulls every file from the source and recognizes them in order.
// Files that fail recognition or parsing are skipped and reported in the
// second return value; only a source failure aborts the whole run.
func (s *Session) Process(ctx context.Context, source files.Source) (receipt.Transactions, []error, error) {
	fs, err := source.Files(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list files: %w", err)
	}

	var (
		txns    receipt.Transactions
		skipped []error
	)
	for _, f := range fs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		txn, _, err := s.Recognize(ctx, f)
		if err != nil {
			s.logger.Warn("skipping file",
				observability.String("file", f.Name),
				observability.Error("err", err))
			skipped = append(skipped, err)
			continue
		}
		txns = append(txns, txn)
	}
	return txns, skipped, nil
}

// categorize assigns an expense type, asking the script rules first and the
// built-in keyword rules second. Rule failures only log: categorization is
// advisory and must not fail recognition.
func (s *Session) categorize(ctx context.Context, txn *receipt.Transaction) {
	if s.rules != nil {
		c, ok, err := s.rules.Categorize(ctx, txn.Merchant, txn.Amount)
		if err != nil {
			s.logger.Warn("categorization rules failed",
				observability.String("merchant", txn.Merchant),
				observability.Error("err", err))
		} else if ok {
			txn.ExpenseType = c.Label
			return
		}
	}
	if rec, ok := receipt.RecommendExpense(txn.Merchant); ok {
		txn.ExpenseType = rec.Label
	}
}
