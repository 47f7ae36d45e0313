package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))

	LogDebug("hidden", nil)
	LogInfo("Parsed dataset", Fields{"records": 3, "source": "apps.csv"})
	LogError(NewUserError("model missing", errors.New("open: no such file")), "Load failed", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &info))
	assert.Equal(t, "Parsed dataset", info["msg"])
	assert.Equal(t, "apps.csv", info["source"])
	assert.EqualValues(t, 3, info["records"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &failure))
	assert.Equal(t, "model missing", failure["error"])

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestFieldsAttrsSorted(t *testing.T) {
	attrs := Fields{"b": 1, "a": 2, "c": 3}.attrs(slog.String("error", "x"))
	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key
	}
	assert.Equal(t, []string{"error", "a", "b", "c"}, keys)
}
