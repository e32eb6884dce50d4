// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-study/internal/config"
	"github.com/phrazzld/scry-study/internal/platform/logger"
)

// restoreDefault resets slog's default logger after a test that calls Setup.
func restoreDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		want  slog.Level
		known bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestSetupWritesJSONAtConfiguredLevel(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, buf)
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("filtered out")
	l.Warn("kept", "component", "test")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "test", entries[0]["component"])

	// Setup installs the logger as the default.
	buf.Reset()
	slog.Error("via default")
	logger.AssertLogContains(t, buf, "via default")
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "chatty"}, buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	logger.AssertLogField(t, buf, "msg", "shown")
}

func TestContextLogger(t *testing.T) {
	l, buf := logger.GetTestLogger(t)

	_, ok := logger.FromContext(context.Background())
	assert.False(t, ok)

	ctx := logger.WithLogger(context.Background(), l)
	got, ok := logger.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, l, got)

	ctx = logger.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", logger.RequestID(ctx))

	logger.FromContextOrDefault(ctx, nil).Info("handled")
	logger.AssertLogField(t, buf, "request_id", "req-123")
}

func TestFromContextOrDefaultUsesDefault(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))

	logger.FromContextOrDefault(context.Background(), nil).Info("default logger")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "default logger", entry["msg"])
	assert.NotContains(t, entry, "request_id")
}

func TestFromContextOrDefaultUsesFallback(t *testing.T) {
	fallback, buf := logger.GetTestLogger(t)
	logger.FromContextOrDefault(context.Background(), fallback).Info("fallback logger")
	logger.AssertLogField(t, buf, "msg", "fallback logger")
}

func TestDiscard(t *testing.T) {
	l := logger.Discard()
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Error("nowhere") })
}
