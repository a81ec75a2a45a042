package log

import (
	"context"
	"io"
	"log/slog"
	"math"
)

// FiniteHandler wraps an slog.Handler and replaces non-finite float
// attributes with their string spelling.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Packages can keep logging float64 values without checking them first
type FiniteHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler
}

// NewFiniteHandler creates a new FiniteHandler wrapping the given handler.
// If handler is nil, the returned FiniteHandler will use slog.Default().Handler().
func NewFiniteHandler(handler slog.Handler) *FiniteHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &FiniteHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *FiniteHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *FiniteHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(finiteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *FiniteHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = finiteAttr(a)
	}
	return &FiniteHandler{handler: h.handler.WithAttrs(rewritten)}
}

// WithGroup returns a new handler with the given group name.
func (h *FiniteHandler) WithGroup(name string) slog.Handler {
	return &FiniteHandler{handler: h.handler.WithGroup(name)}
}

// finiteAttr rewrites a single attribute, recursively handling groups.
func finiteAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		attrs := v.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = finiteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	case slog.KindFloat64:
		if s, ok := FormatNonFinite(v.Float64()); ok {
			return slog.String(a.Key, s)
		}
	case slog.KindAny:
		if f, ok := v.Any().(float32); ok {
			if s, ok := FormatNonFinite(float64(f)); ok {
				return slog.String(a.Key, s)
			}
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}

// FormatNonFinite returns the spelling of f and true when f is NaN or
// infinite. Finite values return "", false.
func FormatNonFinite(f float64) (string, bool) {
	switch {
	case math.IsNaN(f):
		return "NaN", true
	case math.IsInf(f, 1):
		return "+Inf", true
	case math.IsInf(f, -1):
		return "-Inf", true
	default:
		return "", false
	}
}

// NewLogger creates a new text slog.Logger.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewFiniteHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON format.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewFiniteHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
