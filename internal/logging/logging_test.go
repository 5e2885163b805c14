package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(&buf, Config{Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Debug("word added", zap.String("word", "teh"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "word added", line["msg"])
	assert.Equal(t, "teh", line["word"])
	assert.Equal(t, "spellesp", line["logger"])
	assert.Contains(t, line, "ts")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, level, err := New(&buf, DefaultConfig())
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	level.SetLevel(zap.DebugLevel)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{Level: "INFO", Format: "JSON"}.Validate())
	assert.Error(t, Config{Level: "loud"}.Validate())
	assert.Error(t, Config{Format: "xml"}.Validate())
}
