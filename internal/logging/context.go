package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the structured logging key for package names.
	FieldComponent = "component"
	// FieldRunID is the structured logging key for alignment run identifiers.
	FieldRunID = "run_id"
	// FieldSlideIndex is the zero-based slide position in the input list.
	FieldSlideIndex = "slide_index"
	// FieldScore is the fuzzy-match percentage of a slide.
	FieldScore = "score"
	// FieldThreshold is the configured acceptance threshold.
	FieldThreshold = "threshold"
)

type runIDKey struct{}

// WithRunID attaches a run identifier to ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := RunIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldRunID, id)}
	}
	return nil
}

// WithContext returns a logger augmented with fields derived from ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
