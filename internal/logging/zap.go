package logging

import (
	"go.uber.org/zap"

	"github.com/arloliu/cloudlod/types"
)

// ZapLogger implements types.Logger on top of a zap.SugaredLogger.
//
// Key-value pairs go through the sugared "w" methods, so fields keep their
// structure instead of being concatenated into the message.
type ZapLogger struct {
	logger *zap.SugaredLogger
}

// Compile-time assertion that ZapLogger implements Logger.
var _ types.Logger = (*ZapLogger)(nil)

// NewZap wraps a zap.Logger.
//
// Parameters:
//   - logger: The underlying zap.Logger (zap.NewNop() if nil)
//
// Returns:
//   - *ZapLogger: Logger forwarding every call to logger
//
// Example:
//
//	base, _ := zap.NewProduction()
//	field, _ := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(logging.NewZap(base)))
func NewZap(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ZapLogger{logger: logger.Sugar()}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *ZapLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key-value pairs.
func (l *ZapLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Infow(msg, keysAndValues...)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *ZapLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key-value pairs.
func (l *ZapLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, keysAndValues...)
}

// Fatal logs a fatal-level message and exits the process.
func (l *ZapLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Fatalw(msg, keysAndValues...)
}
