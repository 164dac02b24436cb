package cli

import (
	"github.com/rileyhilliard/dashgen/internal/config"
	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/spf13/cobra"
)

// addSourceFlags registers -s/--source on a command. The root command and
// validate share the same variable since only one of them runs per process.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "source file to read (default: "+config.DefaultSourceFile+")")
	_ = cmd.RegisterFlagCompletionFunc("source", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// validateOutputFlags rejects combinations that would mix the dashboard and
// other output on stdout.
func validateOutputFlags(stdout, machine bool, output string) error {
	if stdout && machine {
		return errors.New(errors.ErrConfig,
			"--stdout and --json cannot be used together",
			"Both write to stdout. Use --output with --json instead.")
	}
	if stdout && output != "" {
		return errors.New(errors.ErrConfig,
			"--stdout and --output cannot be used together",
			"Pick one destination for the dashboard.")
	}
	return nil
}
