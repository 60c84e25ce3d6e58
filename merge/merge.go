// Package merge drives one merge-conflict resolution: it builds the
// claude command, spawns it, and streams its event output through the
// run logger and the transcript writer.
package merge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/9999years/claude-mergetool/logging"
	"github.com/9999years/claude-mergetool/protocol"
	"github.com/9999years/claude-mergetool/render"
)

// maxEventLineSize bounds a single stream-json line. Tool inputs can
// embed whole files, so the default bufio limit is far too small.
const maxEventLineSize = 4 * 1024 * 1024

// Run resolves one conflict. Every stdout line from the subprocess is
// logged raw, then parsed and rendered. Rendering and logging failures
// never abort the run; only an unknown result subtype (a protocol
// change), a transcript write failure, or the subprocess failing do.
func Run(ctx context.Context, opts *Options, w *render.Writer, log *logging.RunLogger) error {
	if opts.FilePath != "" {
		banner := fmt.Sprintf("Resolving merge conflict in %s", w.Underline(opts.FilePath))
		if err := w.Headline(banner); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
	}

	cmd, err := opts.Command(ctx)
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("piping claude stdout: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting claude: %w", err)
	}

	if err := streamEvents(stdout, w, log); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return err
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("claude: %w", err)
	}
	return nil
}

// streamEvents consumes the subprocess's stdout line by line until the
// pipe closes. Strictly sequential: log, parse, render.
func streamEvents(r io.Reader, w *render.Writer, log *logging.RunLogger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		log.LogEvent(line)

		ev, err := protocol.UnmarshalEvent([]byte(line))
		if err != nil {
			var unknown *protocol.UnknownResultError
			if errors.As(err, &unknown) {
				return fmt.Errorf("claude protocol changed: %w", err)
			}
			slog.Debug("skipping claude event", "line", line, "error", err)
			continue
		}

		if _, ok := ev.(protocol.ResultEvent); ok {
			log.LogSummary(line)
		}

		if err := w.WriteEvent(ev); err != nil {
			return fmt.Errorf("writing transcript: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Debug("reading claude output", "error", err)
	}
	return nil
}
