package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// SessionIDKey is the context key for the till session ID
	SessionIDKey contextKey = "session_id"
	// UsernameKey is the context key for the logged-in cashier
	UsernameKey contextKey = "username"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithSessionID adds the session ID to context and returns an enriched logger
func WithSessionID(ctx context.Context, logger *zap.Logger, sessionID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	enrichedLogger := logger.With(zap.String("session_id", sessionID))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// WithUsername adds the username to context and returns an enriched logger
func WithUsername(ctx context.Context, logger *zap.Logger, username string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, UsernameKey, username)
	enrichedLogger := logger.With(zap.String("username", username))
	return WithContext(ctx, enrichedLogger), enrichedLogger
}

// GetSessionID retrieves the session ID from context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUsername retrieves the username from context
func GetUsername(ctx context.Context) string {
	if name, ok := ctx.Value(UsernameKey).(string); ok {
		return name
	}
	return ""
}

// L returns the context's logger. Loggers stored through WithSessionID and
// WithUsername already carry their fields.
// Usage: logger.L(ctx).Info("message", zap.String("key", "value"))
func L(ctx context.Context) *zap.Logger {
	return FromContext(ctx)
}
