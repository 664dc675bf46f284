package types

// Logger defines methods for structured logging.
//
// Matches the zap.SugaredLogger "w" methods; see NewZapLogger for an adapter.
// All methods accept alternating key-value pairs for structured fields.
type Logger interface {
	// Debug logs a message at DebugLevel.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at FatalLevel and then exits the process.
	//
	// The library itself never calls Fatal; it exists so zap and slog adapters map one to one.
	Fatal(msg string, keysAndValues ...any)
}
