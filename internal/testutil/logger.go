// Package testutil holds shared helpers for package tests.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level slog.Logger routed through t.Log, so
// client and cache tracing shows up interleaved with test output on failure
// (or under -v) and stays silent otherwise.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tLogWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// tLogWriter adapts testing.TB to io.Writer for the slog handler.
type tLogWriter struct {
	tb testing.TB
}

func (w tLogWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
