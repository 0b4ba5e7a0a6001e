package logger

import (
	"context"
	"log/slog"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	LoggerKey ContextKey = "logger"
)

// FromContext retrieves the logger from the context. If no logger is
// found, it returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// WithCompetition annotates the logger in the context with the
// competition being served.
func WithCompetition(ctx context.Context, competitionID string) context.Context {
	l := FromContext(ctx).With("competition_id", competitionID)
	return WithLogger(ctx, l)
}
