// Package render turns parsed claude stream events into a styled, path-
// redacted terminal transcript.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/9999years/claude-mergetool/protocol"
)

// tmpdirPlaceholder replaces every configured temp-directory prefix in the
// rendered transcript, so output is stable across machines.
const tmpdirPlaceholder = "$TMPDIR"

// fileTools are the tools whose input names the file being touched; their
// transcript line includes the path.
var fileTools = map[string]bool{
	"Read":  true,
	"Write": true,
	"Edit":  true,
}

// Options configures a Writer.
type Options struct {
	// Markdown renders text blocks through a terminal markdown renderer.
	// Leave false when the output is not a terminal.
	Markdown bool
	// MarkdownStyle is the glamour style name ("dark", "light", "notty");
	// empty means auto-detect.
	MarkdownStyle string
	// Width is the word-wrap width for markdown. Zero means 100.
	Width int
	// TempDirs overrides the redaction table. Nil means TempDirs().
	TempDirs []string
}

// Writer renders events to a single output stream. It owns the
// run-scoped render state: one Writer per subprocess invocation.
type Writer struct {
	out      io.Writer
	tempDirs []string
	markdown *glamour.TermRenderer

	dim       lipgloss.Style
	headline  lipgloss.Style
	underline lipgloss.Style

	// hasOutput flips to true after the first rendered fragment; leading
	// newlines in text blocks are only stripped while it is false.
	hasOutput bool
}

// NewWriter creates a Writer for one run. Styling degrades to plain text
// automatically when out is not a terminal.
func NewWriter(out io.Writer, opts Options) (*Writer, error) {
	w := &Writer{
		out:      out,
		tempDirs: slices.Clone(opts.TempDirs),
	}
	if w.tempDirs == nil {
		w.tempDirs = TempDirs()
	}
	// Longest first, so a short prefix never eats part of a longer one.
	slices.SortFunc(w.tempDirs, func(a, b string) int { return len(b) - len(a) })

	if opts.Markdown {
		width := opts.Width
		if width <= 0 {
			width = 100
		}
		r, err := glamour.NewTermRenderer(
			glamourOption(opts.MarkdownStyle),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil, fmt.Errorf("creating markdown renderer: %w", err)
		}
		w.markdown = r
	}

	styles := lipgloss.NewRenderer(out)
	w.dim = styles.NewStyle().Faint(true)
	w.headline = styles.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	w.underline = styles.NewStyle().Underline(true)

	return w, nil
}

func glamourOption(style string) glamour.TermRendererOption {
	switch style {
	case "":
		return glamour.WithAutoStyle()
	default:
		return glamour.WithStandardStyle(style)
	}
}

// TempDirs returns the redaction table for the current process: the OS
// temp directory and, if different, its symlink-resolved form, longest
// prefix first so a short prefix never shadows a longer one.
func TempDirs() []string {
	raw := os.TempDir()

	var dirs []string
	if canonical, err := filepath.EvalSymlinks(raw); err == nil {
		dirs = append(dirs, canonical)
	}
	if !slices.Contains(dirs, raw) {
		dirs = append(dirs, raw)
	}

	slices.SortFunc(dirs, func(a, b string) int { return len(b) - len(a) })
	return dirs
}

// WriteEvent renders one event, redacts temp-directory paths, and writes
// the fragment to the output. The only error it returns is a failed write
// to the output stream itself.
func (w *Writer) WriteEvent(ev protocol.Event) error {
	frag := w.render(ev)
	if frag == "" {
		return nil
	}
	for _, dir := range w.tempDirs {
		frag = strings.ReplaceAll(frag, dir, tmpdirPlaceholder)
	}
	_, err := io.WriteString(w.out, frag)
	return err
}

// Headline writes a bold banner line above the transcript, outside the
// normal event flow.
func (w *Writer) Headline(text string) error {
	_, err := io.WriteString(w.out, w.headline.Render(text)+"\n")
	return err
}

// Underline styles a fragment for use inside a Headline.
func (w *Writer) Underline(text string) string {
	return w.underline.Render(text)
}

func (w *Writer) render(ev protocol.Event) string {
	var b strings.Builder
	switch ev := ev.(type) {
	case protocol.AssistantEvent:
		for _, block := range ev.Message.Content {
			switch block := block.(type) {
			case protocol.TextBlock:
				w.renderText(&b, block.Text)
			case protocol.ToolUseBlock:
				w.renderToolUse(&b, block)
			}
		}
	case protocol.ResultEvent:
		w.renderResult(&b, ev.Result)
	}
	return b.String()
}

func (w *Writer) renderText(b *strings.Builder, text string) {
	if !w.hasOutput {
		// Only newlines: other leading whitespace may be meaningful.
		text = strings.TrimLeft(text, "\n")
	}
	if text == "" {
		return
	}
	b.WriteString(w.renderMarkdown(text))
	w.hasOutput = true
}

func (w *Writer) renderMarkdown(text string) string {
	if w.markdown == nil {
		return text
	}
	out, err := w.markdown.Render(text)
	if err != nil {
		slog.Debug("markdown render failed, falling back to plain text", "error", err)
		return text
	}
	return out
}

func (w *Writer) renderToolUse(b *strings.Builder, block protocol.ToolUseBlock) {
	line := "> " + block.Name
	if fileTools[block.Name] {
		path := block.Input.FilePath
		if path == "" {
			path = "?"
		}
		line += " " + path
	}
	b.WriteString(w.dim.Render(line))
	b.WriteString("\n")
	w.hasOutput = true
}

func (w *Writer) renderResult(b *strings.Builder, res protocol.SuccessResult) {
	rate := AnnualRate(res.TotalCostUSD, res.Duration())
	b.WriteString(w.headline.Render(fmt.Sprintf(
		"Finished in %s (%s API time). Total cost: %s (Salary: %s/yr)",
		FormatDuration(res.Duration()),
		FormatDuration(res.APIDuration()),
		FormatDollars(res.TotalCostUSD),
		FormatDollars(rate),
	)))

	if len(res.ModelUsage) > 0 {
		b.WriteString(w.dim.Render("\nUsage by model:"))
		for _, name := range slices.Sorted(maps.Keys(res.ModelUsage)) {
			usage := res.ModelUsage[name]
			b.WriteString(w.dim.Render(fmt.Sprintf("\n    %s: %s", name, formatModelUsage(usage))))
		}
	}

	b.WriteString("\n")
	w.hasOutput = true
}

func formatModelUsage(u protocol.ModelUsage) string {
	return fmt.Sprintf("%s input, %s output, %s cache read, %s cache write (%s)",
		FormatTokens(u.InputTokens),
		FormatTokens(u.OutputTokens),
		FormatTokens(u.CacheReadInputTokens),
		FormatTokens(u.CacheCreationInputTokens),
		FormatDollars(u.CostUSD),
	)
}
