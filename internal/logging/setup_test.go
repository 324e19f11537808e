package logging

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		emit      func(*slog.Logger)
		wantLevel log.Level
	}{
		{"trace", "trace", func(l *slog.Logger) { l.Debug("test message", "key", "value") }, log.DebugLevel},
		{"debug", "DeBuG", func(l *slog.Logger) { l.Debug("test message", "key", "value") }, log.DebugLevel},
		{"info", "info", func(l *slog.Logger) { l.Info("test message", "key", "value") }, log.InfoLevel},
		{"warning alias", "warning", func(l *slog.Logger) { l.Warn("test message", "key", "value") }, log.WarnLevel},
		{"error", "ERROR", func(l *slog.Logger) { l.Error("test message", "key", "value") }, log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := SetupHandlerText(tt.logLevel, buf)
			require.IsType(t, &log.Logger{}, handler)
			assert.Equal(t, tt.wantLevel, handler.(*log.Logger).GetLevel())

			tt.emit(slog.New(handler))
			assert.Contains(t, buf.String(), "test message")
			assert.Contains(t, buf.String(), "value")
		})
	}
}

func TestSetupHandlerText_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerText("error", buf))

	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	assert.NotContains(t, buf.String(), "info message")
	assert.NotContains(t, buf.String(), "warn message")
	assert.Contains(t, buf.String(), "error message")
}

func TestSetupHandlerJSON(t *testing.T) {
	t.Run("trace adds source", func(t *testing.T) {
		buf := &bytes.Buffer{}
		slog.New(SetupHandlerJSON("trace", buf)).Debug("test message")
		assert.Contains(t, buf.String(), `"source"`)
		assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	})

	t.Run("warn filters info", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := slog.New(SetupHandlerJSON("warn", buf))
		logger.Info("info message")
		logger.Warn("warn message", "key", "value")

		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), `"msg":"warn message"`)
		assert.Contains(t, buf.String(), `"key":"value"`)
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
}

func TestNewHandler(t *testing.T) {
	t.Run("defaults to text", func(t *testing.T) {
		h, err := NewHandler(Options{Level: "info"})
		require.NoError(t, err)
		assert.IsType(t, &log.Logger{}, h)
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.log")
		h, err := NewHandler(Options{Level: "debug", Format: FormatJSON, Output: path})
		require.NoError(t, err)
		assert.IsType(t, &slog.JSONHandler{}, h)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewHandler(Options{Format: "xml"})
		require.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("bad output", func(t *testing.T) {
		_, err := NewHandler(Options{Output: "kafka://broker"})
		require.ErrorIs(t, err, ErrInvalidOutput)
	})
}

func TestHandlerFromEnv(t *testing.T) {
	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "launcher.log")
		t.Setenv(EnvLevel, "debug")
		t.Setenv(EnvFormat, "json")
		t.Setenv(EnvOutput, path)

		h := HandlerFromEnv()
		_, isJSON := h.(*slog.JSONHandler)
		assert.True(t, isJSON)
		assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
	})

	t.Run("invalid falls back to text", func(t *testing.T) {
		t.Setenv(EnvLevel, "")
		t.Setenv(EnvFormat, "xml")
		t.Setenv(EnvOutput, "")

		h := HandlerFromEnv()
		_, isText := h.(*log.Logger)
		assert.True(t, isText)
		assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	})
}
