package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type ctxKey string

const (
	ctxKeyAction ctxKey = "action"
)

// Discard is a logger that drops everything, used by tests and when no
// log file is configured.
var Discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

// New returns a JSON logger writing to w at the given level
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// OpenFile opens (appending) the log file at path and returns a logger on it.
// The returned closer must be called on shutdown.
func OpenFile(path, level string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, level), f, nil
}

// WithAction stores the triggering action in the context.
func WithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, ctxKeyAction, action)
}

// FromContext adds the action if present.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	action, _ := ctx.Value(ctxKeyAction).(string)
	if action == "" {
		return logger
	}
	return logger.With("action", action)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
