package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"accountability/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestDebugModeOffWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug"}, dir))
	t.Cleanup(CloseAll)

	assert.False(t, IsDebugMode())
	Get(CategoryAPI).Info("should not be written")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "logs dir must not be created when debug mode is off")
}

func TestCategoryFilesAreJSONLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", DebugMode: true}, dir))
	t.Cleanup(CloseAll)

	assert.True(t, IsDebugMode())
	Get(CategoryAPI).Info("request sent", zap.String("url", "http://svc/process"))
	WithRequestID(CategoryTUI, "req-1").Debug("state changed", zap.String("to", "loading"))
	CloseAll()

	api := readLines(t, filepath.Join(dir, "api.log"))
	require.Len(t, api, 1)
	assert.Equal(t, "request sent", api[0]["msg"])
	assert.Equal(t, "api", api[0]["category"])
	assert.Equal(t, "http://svc/process", api[0]["url"])

	tui := readLines(t, filepath.Join(dir, "tui.log"))
	require.Len(t, tui, 1)
	assert.Equal(t, "req-1", tui[0]["request_id"])
	assert.Equal(t, "debug", tui[0]["level"])

	boot := readLines(t, filepath.Join(dir, "boot.log"))
	assert.NotEmpty(t, boot)
}

func TestDisabledCategory(t *testing.T) {
	dir := t.TempDir()
	lc := config.LoggingConfig{
		Level:      "info",
		DebugMode:  true,
		Categories: map[string]bool{"report": false},
	}
	require.NoError(t, Initialize(lc, dir))
	t.Cleanup(CloseAll)

	Get(CategoryReport).Info("hidden")
	_, err := os.Stat(filepath.Join(dir, "report.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelFilters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(config.LoggingConfig{Level: "warn", DebugMode: true}, dir))
	t.Cleanup(CloseAll)

	l := Get(CategoryAPI)
	l.Info("dropped")
	l.Warn("kept")
	CloseAll()

	lines := readLines(t, filepath.Join(dir, "api.log"))
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
}

func TestInvalidLevel(t *testing.T) {
	err := Initialize(config.LoggingConfig{Level: "loud"}, t.TempDir())
	assert.Error(t, err)
	t.Cleanup(CloseAll)
}

func TestTimerThreshold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(config.LoggingConfig{Level: "debug", DebugMode: true}, dir))
	t.Cleanup(CloseAll)

	timer := StartTimer(CategoryAPI, "process")
	timer.start = time.Now().Add(-2 * time.Second)
	elapsed := timer.StopWithThreshold(time.Second)
	assert.GreaterOrEqual(t, elapsed, 2*time.Second)
	CloseAll()

	lines := readLines(t, filepath.Join(dir, "api.log"))
	require.Len(t, lines, 1)
	assert.Equal(t, "operation slow", lines[0]["msg"])
	assert.Equal(t, "process", lines[0]["op"])
}
