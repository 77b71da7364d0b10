package observability

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestStdLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(log.New(&buf, "", 0))

	logger.Warn("decode failed", String("file", "receipt.png"), Int("size", 42))

	got := buf.String()
	for _, want := range []string{"WARN", "decode failed", "file=receipt.png", "size=42"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output %q missing %q", got, want)
		}
	}
}

func TestStdLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(log.New(&buf, "", 0)).With(String("component", "preprocess"))

	logger.Info("done")
	if !strings.Contains(buf.String(), "component=preprocess") {
		t.Fatalf("expected prefix field in output, got %q", buf.String())
	}
}
