package framegraph

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so slog skips
// building the record at all.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger shared by the graph, the transient cache and
// the backends. The graph is silent until SetLogger is called; nil makes
// it silent again. Safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: compile summaries, executed passes, cache hits and misses
//   - [slog.LevelInfo]: backend attachment, compiled pipelines
//   - [slog.LevelWarn]: evicted pooled resources, failed frames, failing backend factories
//
//	framegraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger. Backend packages log
// through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
