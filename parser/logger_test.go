package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	// Must be safe to call every method on the zero value
	var logger Logger = NopLogger{}
	logger.Debug("debug", "k", 1)
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	if logger.With("k", "v") == nil {
		t.Error("With() should return a usable logger")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler))

	logger.Debug("classified input", "format", "brewfather")
	if !strings.Contains(buf.String(), "classified input") {
		t.Errorf("expected log output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "format=brewfather") {
		t.Errorf("expected structured attr in output, got %q", buf.String())
	}

	buf.Reset()
	child := logger.With("source", "upload")
	child.Info("parsed")
	if !strings.Contains(buf.String(), "source=upload") {
		t.Errorf("With() attrs should appear in output, got %q", buf.String())
	}
}

func TestNewSlogAdapterNilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil {
		t.Fatal("NewSlogAdapter(nil) should return a usable adapter")
	}
	// Must not panic
	adapter.Debug("noop")
}
