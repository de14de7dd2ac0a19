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
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
}

func TestNewWithSettings_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithSettings(&buf, "info", "json", false)

	logger.Debug("hidden")
	logger.Info("lookup succeeded", "repo", "acme/widget")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lookup succeeded", entry["msg"])
	assert.Equal(t, "acme/widget", entry["repo"])
}

func TestNewWithSettings_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithSettings(&buf, "error", "text", true)

	logger.Debug("issuing fetch")
	assert.Contains(t, buf.String(), "issuing fetch")
}
