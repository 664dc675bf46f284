package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cloudlod/types"
)

func TestSlogLogger_ImplementsInterface(t *testing.T) {
	var _ types.Logger = (*SlogLogger)(nil)
	var _ types.Logger = (*NopLogger)(nil)
}

func TestNewSlog_NilFallsBackToDefault(t *testing.T) {
	logger := NewSlog(nil)

	require.NotNil(t, logger)
	require.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *SlogLogger)
		level string
		msg   string
	}{
		{"debug", func(l *SlogLogger) { l.Debug("reseeded cluster", "cluster", 3) }, "level=DEBUG", "reseeded cluster"},
		{"info", func(l *SlogLogger) { l.Info("clustering finished", "cluster", 3) }, "level=INFO", "clustering finished"},
		{"warn", func(l *SlogLogger) { l.Warn("pass deferred", "cluster", 3) }, "level=WARN", "pass deferred"},
		{"error", func(l *SlogLogger) { l.Error("spawn failed", "cluster", 3) }, "level=ERROR", "spawn failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewSlogText(buf, slog.LevelDebug)

			tt.log(logger)

			out := buf.String()
			require.Contains(t, out, tt.level)
			require.Contains(t, out, tt.msg)
			require.Contains(t, out, "cluster=3")
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogText(buf, slog.LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	require.Empty(t, buf.String())

	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestSlogLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewSlogText(buf, slog.LevelInfo).With("job", "abc")

	logger.Info("job started")

	require.Contains(t, buf.String(), "job=abc")
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	require.NotPanics(t, func() {
		logger.Debug("msg", "key", "value")
		logger.Info("msg")
		logger.Warn("msg", "odd")
		logger.Error("msg", nil, nil)
		logger.Fatal("msg") // must not exit
	})
}
