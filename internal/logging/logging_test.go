package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWithWriter_ReleaseWritesJSON(t *testing.T) {
	cfg := config.Default()
	cfg.GinMode = "release"

	var buf bytes.Buffer
	logger := NewWithWriter(cfg, "1.2.3", &buf)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewWithWriter_RespectsLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = zapcore.WarnLevel

	var buf bytes.Buffer
	logger := NewWithWriter(cfg, "dev", &buf)
	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
