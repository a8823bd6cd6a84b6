package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, configure(l, &buf, "debug", "json"))

	l.WithField("prompt_id", "p-1").Debug("prompt created")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "prompt created", entry["msg"])
	assert.Equal(t, "p-1", entry["prompt_id"])
}

func TestConfigure_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, configure(l, &buf, "warn", "text"))

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestConfigure_Invalid(t *testing.T) {
	assert.Error(t, configure(log.New(), &bytes.Buffer{}, "loud", "json"))
	assert.Error(t, configure(log.New(), &bytes.Buffer{}, "info", "xml"))
}
