// Package logx builds the structured logger and carries per-call
// operation IDs through a context so that every log line of a single
// command or query can be correlated.
package logx

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type contextKey string

const operationIDContextKey contextKey = "op_id"

// ParseLevel maps a config level name to a slog level. Unknown names
// map to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON logger writing to stdout at the given level.
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// WithOperationID returns ctx unchanged if it already carries an operation
// ID, otherwise a derived context holding a fresh one. The ID in effect is
// returned alongside.
func WithOperationID(ctx context.Context) (context.Context, string) {
	if id := OperationID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return context.WithValue(ctx, operationIDContextKey, id), id
}

// SetOperationID stores a caller-chosen operation ID in ctx.
func SetOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDContextKey, id)
}

// OperationID extracts the operation ID from ctx.
// Returns empty string if not found.
func OperationID(ctx context.Context) string {
	if id, ok := ctx.Value(operationIDContextKey).(string); ok {
		return id
	}
	return ""
}
