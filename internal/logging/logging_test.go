package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetup_FiltersBelowLevel(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	Setup(&buf, slog.LevelWarn)
	slog.Info("hidden")
	slog.Warn("shown", "item_id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "item_id=abc")
}

func TestInit_WritesToFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "cadence.log")

	closer, err := Init(Options{Level: "debug", Path: path})
	require.NoError(t, err)
	slog.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	_, err := Init(Options{Level: "chatty", Path: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}
