// Package logging passes a request-scoped slog.Logger through the context so
// services and handlers annotate the same log stream without threading a
// logger parameter everywhere.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ContextWithLogger stores the logger in a child context. A nil context or
// nil logger leaves the context untouched.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by ContextWithLogger, or nil when the
// context carries none. Callers fall back to their own default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}
