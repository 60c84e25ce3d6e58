package merge

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os/exec"
	"path/filepath"
	"slices"

	"github.com/9999years/claude-mergetool/config"
)

// Options describes one merge-conflict resolution request, as handed to
// us by git or jj.
type Options struct {
	// Base, Left, and Right are the temp files holding the three
	// versions of the conflicted file.
	Base  string
	Left  string
	Right string
	// Output is where the resolved file goes (jj mode). Empty in git
	// merge-driver mode, which writes to Left instead.
	Output string
	// GitMergeDriver selects git merge-driver semantics.
	GitMergeDriver bool
	// FilePath is the repository path of the conflicted file, if known.
	FilePath string
	// LeftLabel and RightLabel name the two sides in the prompt.
	LeftLabel  string
	RightLabel string
	// AncestorLabel and MarkerSize are accepted from jj but unused.
	AncestorLabel string
	MarkerSize    int

	Config config.Config
}

// OutputPath resolves where the resolved file must be written.
func (o *Options) OutputPath() (string, error) {
	switch {
	case o.Output != "":
		return o.Output, nil
	case o.GitMergeDriver:
		return o.Left, nil
	default:
		return "", errors.New("either --git-merge-driver or -o <path> is required")
	}
}

func (o *Options) fileLabel() string {
	if o.FilePath == "" {
		return "unknown file"
	}
	return o.FilePath
}

func (o *Options) systemPrompt() string {
	return fmt.Sprintf(
		"You are resolving a merge conflict in `%s`. "+
			"Your working directory is the root of the repository, so you can browse and edit "+
			"other files if needed (e.g. if code moved between files).\n\n"+
			"Three versions of the file are provided as temporary files: "+
			"the base (common ancestor), left (%s), and right (%s). "+
			"Read all three, understand what each side changed relative to the base, "+
			"and write a resolved version to the output path. "+
			"If changes are compatible, merge them cleanly. "+
			"If they genuinely conflict, use your best judgment and explain your reasoning.",
		o.fileLabel(), o.LeftLabel, o.RightLabel,
	)
}

func (o *Options) userPrompt(output string) string {
	return fmt.Sprintf(
		"Resolve the merge conflict in `%s`.\n\n"+
			"Read these three versions of the file:\n"+
			"- Base (common ancestor): %s\n"+
			"- Left (%s): %s\n"+
			"- Right (%s): %s\n\n"+
			"Write the resolved file to: %s",
		o.fileLabel(), o.Base, o.LeftLabel, o.Left, o.RightLabel, o.Right, output,
	)
}

// Command builds the claude invocation for this merge. The subprocess
// gets --add-dir access to each temp file's parent directory so it can
// read and write them without permission prompts.
func (o *Options) Command(ctx context.Context) (*exec.Cmd, error) {
	output, err := o.OutputPath()
	if err != nil {
		return nil, err
	}

	args := []string{
		"--print",
		"--verbose",
		"--output-format=stream-json",
		"--permission-mode=" + o.Config.PermissionMode,
		"--append-system-prompt",
		o.Config.AppendSystemPrompt(o.systemPrompt()),
	}
	args = append(args, o.Config.ExtraArgs...)
	args = append(args, o.userPrompt(output))
	for _, dir := range o.accessDirs(output) {
		args = append(args, "--add-dir", dir)
	}

	return exec.CommandContext(ctx, "claude", args...), nil
}

// accessDirs returns the unique parent directories of the temp files,
// sorted for a stable command line.
func (o *Options) accessDirs(output string) []string {
	dirs := make(map[string]struct{})
	for _, p := range []string{o.Base, o.Left, o.Right, output} {
		if dir := filepath.Dir(p); dir != "." {
			dirs[dir] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(dirs))
}
