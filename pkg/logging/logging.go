// Package logging is the structured logging facade used by the dsa client.
//
// Logger wraps the subset of log/slog the library needs. Secret scalars (the
// private key x and per-signature nonces k) are never logged; call sites pass
// Redacted(key) in their place.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const redactedPlaceholder = "[redacted]"

// Logger defines the logging methods used by the dsa package.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New returns a Logger backed by the provided slog.Logger. Passing nil binds to
// slog.Default().
func New(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

// Discard returns a Logger that drops every record.
func Discard() Logger {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// NewCLI builds a text logger for command-line tools. Debug records are
// enabled when the environment variable named by debugEnv is non-empty.
// Timestamps are dropped for cleaner terminal output.
func NewCLI(w io.Writer, debugEnv string) Logger {
	level := slog.LevelInfo
	if debugEnv != "" && os.Getenv(debugEnv) != "" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return New(slog.New(handler))
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *slogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *slogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// Redacted marks an attribute whose value was intentionally left out.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// Placeholder returns the string that stands in for a redacted value.
func Placeholder() string {
	return redactedPlaceholder
}
