// Command claude-mergetool resolves three-way merge conflicts by handing
// them to the claude CLI and rendering its event stream as a transcript.
//
// Commands:
//   - merge: resolve one conflict (invoked by git/jj as a merge tool)
//   - install: register claude-mergetool with git and jj
//   - generate-config: write a commented default config file
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "claude-mergetool",
		Short:         "AI-powered merge conflict resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newGenerateConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
