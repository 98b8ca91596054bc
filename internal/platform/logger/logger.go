// Package logger provides structured logging for the application.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/semiverso/prometheus-api/internal/config"
)

// contextKey is a private type for context keys defined in this
// package, preventing collisions with keys from other packages.
type contextKey int

const loggerKey contextKey = iota

// Setup configures the application's logging system from the server
// configuration. It creates a structured JSON logger writing to stdout
// at the configured level and installs it as the process default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}

// WithLogger returns a context carrying the given logger. Passing a
// nil logger panics: a context that silently drops its logger is much
// harder to debug than an early crash.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		panic("nil logger passed to WithLogger")
	}
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger stored in the context, or nil if
// the context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return nil
}

// FromContextOrDefault retrieves the logger from the context, falling
// back to the provided default, and finally to slog.Default.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if log := FromContext(ctx); log != nil {
		return log
	}
	if defaultLogger != nil {
		return defaultLogger
	}
	return slog.Default()
}
