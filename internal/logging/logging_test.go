package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_TextHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Writer: &buf})

	logger.Info("hidden")
	logger.Warn("skipping unreadable document", slog.String("path", "a.md"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipping unreadable document")
	assert.Contains(t, out, "path=a.md")
}

func TestNew_JSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", JSON: true, Writer: &buf})

	logger.Debug("scan complete", slog.Int("documents", 3))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "scan complete", record["msg"])
	assert.Equal(t, float64(3), record["documents"])
	assert.Equal(t, "DEBUG", record["level"])
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup(Options{Level: "warn", Writer: &buf})

	slog.Info("dropped")
	slog.Warn("kept", "path", "a.md")

	assert.Same(t, logger, slog.Default())
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "path=a.md")
}
