package monofont

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false so callers skip
// building the message at all.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var active atomic.Pointer[slog.Logger]

func init() {
	active.Store(slog.New(discard{}))
}

// SetLogger sets the logger used by monofont and its sub-packages.
// Nothing is logged by default; pass nil to go back to silence.
// It is safe to call concurrently with logging.
//
// Levels:
//   - [slog.LevelDebug]: advance overrides, written files, built-in variants
//   - [slog.LevelInfo]: one line per generated variant
//   - [slog.LevelWarn]: clipped or blank glyphs
//
// Example:
//
//	monofont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	active.Store(l)
}

// Logger returns the logger set with SetLogger. The sheet, batch and fonts
// packages log through it.
func Logger() *slog.Logger {
	return active.Load()
}
