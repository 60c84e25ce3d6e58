// Package logging persists merge runs: the raw event stream of each run
// and a one-line-per-run summary shared across runs.
//
// Logging is best-effort infrastructure. Every failure degrades to a
// warning; nothing in this package can fail a merge.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	appDirName      = "claude-mergetool"
	summaryFileName = "summary.jsonl"
	timestampLayout = "2006-01-02T15-04-05"
)

// RunLogger records one merge run. The event sink is a per-run file that
// latches disabled on its first write failure; the summary sink reopens
// the shared file on every write, so a transient failure does not disable
// later attempts. The two sinks degrade independently.
type RunLogger struct {
	eventFile   *os.File
	summaryPath string
}

// NewRunLogger opens the sinks for one run. label identifies the run in
// the event-log filename, typically the repository path of the file being
// merged; empty defaults to "unknown". Construction never fails: if the
// log directory is unavailable the logger starts fully disabled.
func NewRunLogger(label string) *RunLogger {
	dir, err := logDir()
	if err != nil {
		slog.Warn("log directory unavailable, run logging disabled", "error", err)
		return &RunLogger{}
	}
	return newRunLoggerInDir(dir, label, time.Now())
}

func newRunLoggerInDir(dir, label string, now time.Time) *RunLogger {
	l := &RunLogger{summaryPath: filepath.Join(dir, summaryFileName)}

	name := now.Format(timestampLayout) + "_" + sanitizeLabel(label) + ".jsonl"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		slog.Warn("failed to create event log", "file", name, "error", err)
		return l
	}
	l.eventFile = f
	return l
}

// LogEvent appends one raw line to the per-run event log. On a write
// failure the event sink is disabled for the rest of the run.
func (l *RunLogger) LogEvent(line string) {
	if l.eventFile == nil {
		return
	}
	if _, err := fmt.Fprintln(l.eventFile, line); err != nil {
		slog.Warn("event log write failed, disabling", "error", err)
		l.eventFile.Close()
		l.eventFile = nil
	}
}

// LogSummary appends one raw result line to the shared summary log.
func (l *RunLogger) LogSummary(line string) {
	if l.summaryPath == "" {
		return
	}
	f, err := os.OpenFile(l.summaryPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("failed to open summary log", "path", l.summaryPath, "error", err)
		return
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, line); err != nil {
		slog.Warn("summary log write failed", "error", err)
	}
}

// Close releases the event log file. The logger is unusable afterwards.
func (l *RunLogger) Close() {
	if l.eventFile != nil {
		l.eventFile.Close()
		l.eventFile = nil
	}
}

// logDir resolves and creates the platform log directory:
// ~/Library/Logs/claude-mergetool on macOS, the XDG state directory
// elsewhere.
func logDir() (string, error) {
	var dir string
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "Logs", appDirName)
	} else {
		state := os.Getenv("XDG_STATE_HOME")
		if state == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			state = filepath.Join(home, ".local", "state")
		}
		dir = filepath.Join(state, appDirName, "logs")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// sanitizeLabel makes a caller-supplied label safe for use in a filename
// by replacing path separators and spaces with underscores.
func sanitizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '_'
		default:
			return r
		}
	}, s)
}
