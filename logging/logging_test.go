package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultLine = `{"type":"result","subtype":"success","is_error":false,"duration_ms":100,` +
	`"duration_api_ms":90,"num_turns":1,"result":"ok","total_cost_usd":0.01,` +
	`"usage":{"input_tokens":1,"cache_creation_input_tokens":0,"cache_read_input_tokens":0,"output_tokens":1},` +
	`"modelUsage":{}}`

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"src/lib.rs", "src_lib.rs"},
		{`path\to my\file.go`, "path_to_my_file.go"},
		{"README.md", "README.md"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in))
	}
}

func TestRunLogger_WritesEventsAndSummary(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC)

	l := newRunLoggerInDir(dir, "src/main.go", now)
	defer l.Close()

	l.LogEvent(`{"type":"assistant","message":{}}`)
	l.LogEvent(resultLine)
	l.LogSummary(resultLine)
	l.Close()

	eventPath := filepath.Join(dir, "2026-08-31T12-30-00_src_main.go.jsonl")
	events, err := os.ReadFile(eventPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(string(events), "\n"), "\n"), 2)

	summary, err := os.ReadFile(filepath.Join(dir, "summary.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(summary), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"type":"result"`)
}

func TestRunLogger_SummaryAppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	first := newRunLoggerInDir(dir, "a", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	first.LogSummary(resultLine)
	first.Close()

	second := newRunLoggerInDir(dir, "b", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	second.LogSummary(resultLine)
	second.Close()

	summary, err := os.ReadFile(filepath.Join(dir, "summary.jsonl"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimRight(string(summary), "\n"), "\n"), 2)
}

func TestRunLogger_DisabledLoggerIsNoOp(t *testing.T) {
	l := &RunLogger{}

	// Must not panic or create anything.
	l.LogEvent("line")
	l.LogSummary("line")
	l.Close()
}

func TestRunLogger_UnavailableDirectoryDisablesEventSink(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	l := newRunLoggerInDir(missing, "a", time.Now())
	defer l.Close()

	assert.Nil(t, l.eventFile)
	// Both calls complete without error and create no files.
	l.LogEvent("line")
	l.LogSummary("line")

	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestRunLogger_EventSinkDisablesOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	l := newRunLoggerInDir(dir, "a", time.Now())
	require.NotNil(t, l.eventFile)

	// Force the next write to fail.
	require.NoError(t, l.eventFile.Close())

	l.LogEvent("first after close")
	assert.Nil(t, l.eventFile, "event sink should latch disabled")

	// Subsequent writes are silent no-ops.
	l.LogEvent("second after close")
}

func TestRunLogger_SummarySinkRetries(t *testing.T) {
	dir := t.TempDir()
	l := newRunLoggerInDir(dir, "a", time.Now())
	defer l.Close()

	// Make the summary path unopenable by occupying it with a directory.
	summaryPath := filepath.Join(dir, summaryFileName)
	require.NoError(t, os.Mkdir(summaryPath, 0o755))
	l.LogSummary(resultLine)

	// Once the obstruction is gone the very next write succeeds: the
	// summary sink never latches disabled.
	require.NoError(t, os.Remove(summaryPath))
	l.LogSummary(resultLine)

	summary, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	assert.Contains(t, string(summary), `"type":"result"`)
}
