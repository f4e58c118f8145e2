package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expect, ParseLevel(tt.in))
		})
	}
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown", slog.Int("pid", 7))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"pid":7`)
}

func TestNewEmptyPathDiscards(t *testing.T) {
	log, closeFn, err := New("", "debug")
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	log.Info("nowhere")
	assert.NoError(t, closeFn())
}

func TestDiscardIsDisabled(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ptop.log")
	log, closeFn, err := New(path, "info")
	require.NoError(t, err)
	log.Info("started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}

func TestNewBadPath(t *testing.T) {
	_, _, err := New(filepath.Join(t.TempDir(), "missing", "dir", "x.log"), "info")
	assert.Error(t, err)
}
