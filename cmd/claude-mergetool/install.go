package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9999years/claude-mergetool/config"
	"github.com/9999years/claude-mergetool/install"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "install [git|jj ...]",
		Short:     "Register claude-mergetool as a merge tool for git or jj",
		ValidArgs: []string{"git", "jj"},
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			programs := make([]install.Program, 0, len(args))
			for _, arg := range args {
				programs = append(programs, install.Program(arg))
			}
			if len(programs) == 0 {
				programs = install.Available(ctx)
				if len(programs) == 0 {
					return errors.New("neither git nor jj is available")
				}
			}

			return install.Install(ctx, programs)
		},
	}
}

func newGenerateConfigCmd() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Write a commented default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteTemplate(output, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote default config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Write to this path instead of the default config location")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
