package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/config"
	"github.com/rileyhilliard/dashgen/internal/logger"
	"github.com/rileyhilliard/dashgen/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	baseDirFlag string
	verbose     bool
	quiet       bool
	noColor     bool
)

// Root command flags
var (
	sourceFlag string
	outputFlag string
	stdoutFlag bool
)

// rootCmd generates the dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "dashgen",
	Short: "Generate a Grafana dashboard from a compact metrics source",
	Long: `dashgen expands a compact metrics source file into a complete Grafana
dashboard: rows, panels laid out on the 24-column grid, PromQL queries, and
the service/project/client template variables.

Relative paths are resolved against the base directory (--base-dir, the
base_dir config key, or the current directory).

Examples:
  dashgen
  dashgen -s metrics-source-minimal.json -o elchi-minimal-dashboard.json
  dashgen --stdout | jq '.panels | length'`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		ui.ConfigureColor(colorMode(), noColor, cmd.OutOrStdout())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateCommand(cmd, GenerateOptions{
			ConfigPath: cfgFile,
			BaseDir:    baseDirFlag,
			Source:     sourceFlag,
			Output:     outputFlag,
			Stdout:     stdoutFlag,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&baseDirFlag, "base-dir", "", "directory relative source/output paths are resolved against")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show phase timings, the row breakdown, and layout debug logs")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "print a machine-readable result envelope")

	addSourceFlags(rootCmd)
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "dashboard file to write (default: "+config.DefaultOutputFile+")")
	rootCmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "write the dashboard to stdout instead of a file")
}

// colorMode reads the color setting without failing the command when the
// config is broken; the real load reports that error later.
func colorMode() string {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return "auto"
	}
	return cfg.Color
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			printError(err)
		}
		os.Exit(1)
	}
}

// printError writes err to stderr. Structured errors already carry the
// "✗" prefix; cobra usage errors get a pointer to --help.
func printError(err error) {
	msg := err.Error()
	if isUsageError(err) {
		fmt.Fprintf(os.Stderr, "Error: %s\nRun 'dashgen --help' for usage.\n", msg)
		return
	}
	fmt.Fprint(os.Stderr, msg)
	if !strings.HasSuffix(msg, "\n") {
		fmt.Fprintln(os.Stderr)
	}
}

// isUsageError reports whether err came from cobra's argument or flag parsing.
func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "accepts ") ||
		strings.HasPrefix(msg, "invalid argument")
}
