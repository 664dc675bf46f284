package cloudlod

import (
	"log/slog"

	"go.uber.org/zap"

	"github.com/arloliu/cloudlod/internal/logging"
)

// NewZapLogger adapts a zap.Logger to the Logger interface.
//
// Key-value pairs are logged as structured zap fields.
//
// Parameters:
//   - logger: zap logger (nil discards everything)
//
// Returns:
//   - Logger: Adapter for WithLogger
//
// Example:
//
//	base, _ := zap.NewProduction()
//	defer base.Sync()
//	field, err := cloudlod.NewField(&cfg, spawner, cloudlod.WithLogger(cloudlod.NewZapLogger(base)))
func NewZapLogger(logger *zap.Logger) Logger {
	return logging.NewZap(logger)
}

// NewSlogLogger adapts a log/slog logger to the Logger interface.
//
// Parameters:
//   - logger: slog logger (nil uses slog.Default())
//
// Returns:
//   - Logger: Adapter for WithLogger
func NewSlogLogger(logger *slog.Logger) Logger {
	return logging.NewSlog(logger)
}
