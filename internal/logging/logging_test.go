package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("hidden %d", 1)
	l.Info("hidden too")
	l.Warn("shown %s", "warn")
	l.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warn")
	assert.Contains(t, out, "shown error")
	assert.Contains(t, out, "WARN")

	buf.Reset()
	l.SetLevel(LevelDebug)
	assert.True(t, l.Enabled(LevelDebug))
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestJSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, Name: "test"}).
		WithComponent("anchor").
		WithFields(map[string]any{"run": "abc", "count": 3})

	l.Info("applied %d edits", 2)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "applied 2 edits", line["msg"])
	assert.Equal(t, "anchor", line["component"])
	assert.Equal(t, "abc", line["run"])
	assert.Equal(t, float64(3), line["count"])
	assert.Equal(t, "test", line["logger"])
	assert.Equal(t, "info", line["level"])
}

func TestDerivedLoggersShareLevel(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelError, Output: &buf})
	child := root.WithField("k", "v")

	child.Info("quiet")
	assert.Empty(t, buf.String())

	root.SetLevel(LevelInfo)
	child.Info("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), `"k"`)
	assert.Contains(t, buf.String(), `"v"`)
}

func TestNop(t *testing.T) {
	l := OrNop(nil)
	l.Error("dropped")
	assert.False(t, l.Enabled(LevelError))
	assert.NoError(t, l.WithComponent("x").Sync())
}
