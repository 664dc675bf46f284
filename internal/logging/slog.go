// Package logging provides Logger implementations for the cloudlod library.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/cloudlod/types"
)

// SlogLogger implements types.Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// Compile-time assertion that SlogLogger implements Logger.
var _ types.Logger = (*SlogLogger)(nil)

// NewSlog wraps an existing slog.Logger.
//
// Parameters:
//   - logger: The underlying slog.Logger (slog.Default() if nil)
//
// Returns:
//   - *SlogLogger: Logger forwarding every call to logger
//
// Example:
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	field, _ := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(logging.NewSlog(slog.New(handler))))
func NewSlog(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogLogger{logger: logger}
}

// NewSlogText creates a text-format logger writing to w at the given level.
//
// Parameters:
//   - w: Destination writer
//   - level: Minimum level that is emitted
//
// Returns:
//   - *SlogLogger: New logger instance
func NewSlogText(w io.Writer, level slog.Level) *SlogLogger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// NewSlogDefault creates a logger backed by slog.Default().
func NewSlogDefault() *SlogLogger {
	return &SlogLogger{logger: slog.Default()}
}

// With returns a logger that adds keysAndValues to every entry.
func (l *SlogLogger) With(keysAndValues ...any) *SlogLogger {
	return &SlogLogger{logger: l.logger.With(keysAndValues...)}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info-level message with optional key-value pairs.
func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error-level message with optional key-value pairs.
func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

// Fatal logs at error level and exits with status 1.
//
// slog has no fatal level, so the entry is emitted as an error first.
func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
	os.Exit(1) //nolint:revive // Fatal should exit the program
}
