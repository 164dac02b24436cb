package cli

import (
	"github.com/spf13/cobra"
)

// validateCmd builds the dashboard in memory without writing it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a source file without writing a dashboard",
	Long: `Load the source file and build the whole dashboard in memory, reporting
the first problem found: a missing required field, a malformed value, an
unsupported query type, or a panel with more than 26 queries.

Nothing is written.

Examples:
  dashgen validate
  dashgen validate -s metrics-source-minimal.json
  dashgen validate --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := GenerateOptions{
			ConfigPath: cfgFile,
			BaseDir:    baseDirFlag,
			Source:     sourceFlag,
			DryRun:     true,
			Verbose:    verbose,
			Quiet:      quiet || machineMode,
			Progress:   cmd.OutOrStdout(),
		}

		result, err := Generate(opts)
		if err != nil {
			return err
		}
		if machineMode {
			return WriteJSONSuccess(cmd.OutOrStdout(), result)
		}
		return nil
	},
}

func init() {
	addSourceFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
