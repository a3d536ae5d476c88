package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(createLogger(&buf, "prod", "info")).With("component", "test")

	l.Info("chunk accepted", "request_id", "r1")
	l.Debug("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "chunk accepted", line["msg"])
	assert.Equal(t, "test", line["component"])
	assert.Equal(t, "r1", line["request_id"])
	assert.Equal(t, "prod", line["env"])
}

func TestCreateLogger_TextInDev(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(createLogger(&buf, "dev", "debug"))

	l.Debug("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
