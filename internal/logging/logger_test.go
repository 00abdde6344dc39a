package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/creasefit/internal/model"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(model.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("folded", zap.Int("facets", 3))
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "folded", entry["msg"])
	assert.Equal(t, float64(3), entry["facets"])
	assert.Contains(t, entry, "ts")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(model.LogConfig{Level: "debug", Format: "console"}, &buf)
	require.NoError(t, err)

	l.Debug("searching", zap.String("strategy", "auto"))
	require.NoError(t, Sync(l))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "searching")
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter(model.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}
