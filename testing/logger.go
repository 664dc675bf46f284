package testing

import (
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/cloudlod/types"
)

// NewTestLogger creates a new logger instance that writes to the testing.T logger.
// This is useful for seeing log output during test runs.
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Logf("DEBUG: %s %v", msg, keysAndValues)
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.t.Logf("INFO: %s %v", msg, keysAndValues)
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Logf("WARN: %s %v", msg, keysAndValues)
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.t.Logf("ERROR: %s %v", msg, keysAndValues)
}

func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Fatalf("FATAL: %s %v", msg, keysAndValues)
}

// LogEntry is a single message captured by RecordingLogger.
type LogEntry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// RecordingLogger keeps every log call in memory. Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ types.Logger = (*RecordingLogger)(nil)

// NewRecordingLogger creates an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, msg string, keysAndValues []any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, KeysAndValues: keysAndValues})
}

// Debug records a debug entry.
func (l *RecordingLogger) Debug(msg string, keysAndValues ...any) {
	l.record("debug", msg, keysAndValues)
}

// Info records an info entry.
func (l *RecordingLogger) Info(msg string, keysAndValues ...any) {
	l.record("info", msg, keysAndValues)
}

// Warn records a warning entry.
func (l *RecordingLogger) Warn(msg string, keysAndValues ...any) {
	l.record("warn", msg, keysAndValues)
}

// Error records an error entry.
func (l *RecordingLogger) Error(msg string, keysAndValues ...any) {
	l.record("error", msg, keysAndValues)
}

// Fatal records a fatal entry. It does not exit.
func (l *RecordingLogger) Fatal(msg string, keysAndValues ...any) {
	l.record("fatal", msg, keysAndValues)
}

// Entries returns a copy of every recorded entry.
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]LogEntry(nil), l.entries...)
}

// Contains reports whether an entry at level has a message containing substr.
func (l *RecordingLogger) Contains(level, substr string) bool {
	for _, e := range l.Entries() {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}

	return false
}
