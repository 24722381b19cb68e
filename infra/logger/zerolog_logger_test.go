package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "report", "info").With("run_id", "abc")
	l.Debugf("hidden")
	l.Infof("Network is not found for scenario '%s'", "rigid")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "report", entry["component"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Network is not found for scenario 'rigid'", entry["message"])
}

func TestZerologLoggerDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "report", "DEBUG")
	l.Debugw("benchmark costs", map[string]any{"total": 1.5})
	assert.Contains(t, buf.String(), `"total":1.5`)
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("x")
}
