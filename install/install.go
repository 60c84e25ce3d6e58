// Package install registers claude-mergetool as a merge tool with git
// and jj by writing their global configuration.
package install

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Program is a version control program that can delegate merges to
// claude-mergetool.
type Program string

const (
	Git Program = "git"
	Jj  Program = "jj"
)

// All lists every supported program.
var All = []Program{Git, Jj}

// Runner executes a program's configuration commands. It exists so tests
// can record commands instead of mutating real global config.
type Runner interface {
	Run(ctx context.Context, program string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes program with args and folds stderr into the error.
func (ExecRunner) Run(ctx context.Context, program string, args ...string) error {
	cmd := exec.CommandContext(ctx, program, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", program, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	slog.Debug("ran config command", "program", program, "args", args)
	return nil
}

// Available returns the subset of programs whose binaries respond to
// --version.
func Available(ctx context.Context) []Program {
	var found []Program
	for _, p := range All {
		if exec.CommandContext(ctx, string(p), "--version").Run() == nil {
			found = append(found, p)
		}
	}
	return found
}

// Install configures claude-mergetool for each program.
func Install(ctx context.Context, programs []Program) error {
	return InstallWith(ctx, ExecRunner{}, programs)
}

// InstallWith is Install with an explicit Runner.
func InstallWith(ctx context.Context, r Runner, programs []Program) error {
	for _, p := range programs {
		slog.Info("configuring claude-mergetool", "program", p)
		if err := p.install(ctx, r); err != nil {
			return fmt.Errorf("configuring claude-mergetool for %s: %w", p, err)
		}
	}
	return nil
}

func (p Program) install(ctx context.Context, r Runner) error {
	switch p {
	case Git:
		if err := p.configSet(ctx, r,
			"mergetool.claude.cmd",
			`claude-mergetool merge "$BASE" "$LOCAL" "$REMOTE" -o "$MERGED"`,
		); err != nil {
			return err
		}
		return p.configSet(ctx, r, "mergetool.claude.trustExitCode", "true")
	case Jj:
		if err := p.configSet(ctx, r,
			"merge-tools.claude.program", "claude-mergetool",
		); err != nil {
			return err
		}
		return p.configSet(ctx, r,
			"merge-tools.claude.merge-args",
			`["merge", "$base", "$left", "$right", "-o", "$output", "-p", "$path"]`,
		)
	default:
		return fmt.Errorf("unsupported program %q", p)
	}
}

func (p Program) configSet(ctx context.Context, r Runner, name, value string) error {
	scope := "--global"
	if p == Jj {
		scope = "--user"
	}
	return r.Run(ctx, string(p), "config", "set", scope, name, value)
}
