package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/9999years/claude-mergetool/config"
	"github.com/9999years/claude-mergetool/logging"
	"github.com/9999years/claude-mergetool/merge"
	"github.com/9999years/claude-mergetool/render"
)

type mergeFlags struct {
	output         string
	gitMergeDriver bool
	filePath       string
	leftLabel      string
	rightLabel     string
	ancestorLabel  string
	markerSize     int
	configPath     string
}

func newMergeCmd() *cobra.Command {
	flags := &mergeFlags{}

	cmd := &cobra.Command{
		Use:   "merge [flags] <base> <left> <right>",
		Short: "Resolve a merge conflict using Claude",
		Long: `Merge resolves a three-way conflict by asking Claude to read the base,
left, and right versions and write a resolved file to the output path.
It is normally invoked by git or jj after 'claude-mergetool install'.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (jj mode)")
	cmd.Flags().BoolVar(&flags.gitMergeDriver, "git-merge-driver", false, "Git merge driver mode (writes result to <left> path)")
	cmd.Flags().StringVarP(&flags.filePath, "path", "p", "", "Original file path")
	cmd.Flags().StringVarP(&flags.leftLabel, "left-label", "x", "ours", "Left/ours conflict label")
	cmd.Flags().StringVarP(&flags.rightLabel, "right-label", "y", "theirs", "Right/theirs conflict label")
	cmd.Flags().StringVarP(&flags.ancestorLabel, "ancestor-label", "s", "", "Ancestor conflict label")
	cmd.Flags().IntVarP(&flags.markerSize, "marker-size", "l", 0, "Conflict marker size")
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Config file path (default: the user config directory)")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string, flags *mergeFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer, err := render.NewWriter(os.Stderr, transcriptOptions())
	if err != nil {
		return err
	}

	runLog := logging.NewRunLogger(flags.filePath)
	defer runLog.Close()

	opts := &merge.Options{
		Base:           args[0],
		Left:           args[1],
		Right:          args[2],
		Output:         flags.output,
		GitMergeDriver: flags.gitMergeDriver,
		FilePath:       flags.filePath,
		LeftLabel:      flags.leftLabel,
		RightLabel:     flags.rightLabel,
		AncestorLabel:  flags.ancestorLabel,
		MarkerSize:     flags.markerSize,
		Config:         cfg,
	}
	return merge.Run(ctx, opts, writer, runLog)
}

// transcriptOptions enables markdown only when stderr is a terminal and
// wraps to its width.
func transcriptOptions() render.Options {
	fd := int(os.Stderr.Fd())
	if !term.IsTerminal(fd) {
		return render.Options{}
	}
	opts := render.Options{Markdown: true}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		opts.Width = width
	}
	return opts
}
