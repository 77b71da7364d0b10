package ocr

import (
	"context"
	"errors"
	"testing"
)

type stubEngine struct {
	calls []string
	err   error
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	s.calls = append(s.calls, in.ID)
	if s.err != nil {
		return Result{}, s.err
	}
	return Result{InputID: in.ID, PlainText: "text for " + in.ID}, nil
}

type stubBatchEngine struct {
	stubEngine
	batches int
}

func (s *stubBatchEngine) RecognizeBatch(ctx context.Context, inputs []Input) ([]Result, error) {
	s.batches++
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i] = Result{InputID: in.ID}
	}
	return results, nil
}

func TestRecognizeAllSequential(t *testing.T) {
	eng := &stubEngine{}
	inputs := []Input{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	results, err := RecognizeAll(context.Background(), eng, inputs)
	if err != nil {
		t.Fatalf("RecognizeAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].InputID != "b" {
		t.Fatalf("result order broken: %+v", results)
	}
}

func TestRecognizeAllWrapsEngineError(t *testing.T) {
	sentinel := errors.New("engine exploded")
	eng := &stubEngine{err: sentinel}

	_, err := RecognizeAll(context.Background(), eng, []Input{{ID: "x"}})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestRecognizeAllPrefersBatch(t *testing.T) {
	eng := &stubBatchEngine{}
	if _, err := RecognizeAll(context.Background(), eng, []Input{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("RecognizeAll() error = %v", err)
	}
	if eng.batches != 1 {
		t.Fatalf("batch path not used: batches = %d", eng.batches)
	}
	if len(eng.calls) != 0 {
		t.Fatalf("sequential path used alongside batch: %v", eng.calls)
	}
}

func TestRecognizeAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RecognizeAll(ctx, &stubEngine{}, []Input{{ID: "a"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultEngineRegistry(t *testing.T) {
	orig := DefaultEngine()
	defer SetDefaultEngine(orig)

	eng := &stubEngine{}
	SetDefaultEngine(eng)
	if DefaultEngine() != Engine(eng) {
		t.Fatal("SetDefaultEngine did not take effect")
	}
}
