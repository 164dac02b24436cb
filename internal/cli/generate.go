package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/dashgen/internal/config"
	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/grafana"
	"github.com/rileyhilliard/dashgen/internal/logger"
	"github.com/rileyhilliard/dashgen/internal/source"
	"github.com/rileyhilliard/dashgen/internal/ui"
	"github.com/spf13/cobra"
)

// GenerateOptions holds the inputs of one generate or validate run.
// Empty strings fall back to the config file, then the built-in defaults.
type GenerateOptions struct {
	ConfigPath string
	BaseDir    string
	Source     string
	Output     string
	Stdout     bool // write the dashboard to Dashboard instead of a file
	DryRun     bool // build in memory and write nothing
	Verbose    bool
	Quiet      bool

	// Progress receives phase lines and the summary.
	Progress io.Writer
	// Dashboard receives the encoded dashboard when Stdout is set.
	Dashboard io.Writer
}

// GenerateResult is what a successful run produced. It is also the data
// payload of the --json envelope.
type GenerateResult struct {
	Source          string          `json:"source"`
	Output          string          `json:"output,omitempty"`
	Title           string          `json:"title"`
	UID             string          `json:"uid"`
	Panels          int             `json:"panels"`
	Rows            int             `json:"rows"`
	CollapsedPanels int             `json:"collapsed_panels"`
	Breakdown       []ui.RowSummary `json:"-"`
}

// Generate loads the source document, builds the dashboard, and writes it.
// The output file is only touched after the whole dashboard was built.
func Generate(opts GenerateOptions) (*GenerateResult, error) {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if opts.Dashboard == nil {
		opts.Dashboard = os.Stdout
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	srcPath := absPath(config.ResolvePath(cfg.BaseDir, cfg.Source))
	outPath := absPath(config.ResolvePath(cfg.BaseDir, cfg.Output))
	pd := ui.NewPhaseDisplay(opts.Progress, opts.Quiet)

	phaseStart := time.Now()
	pd.RenderStart("Reading source file:", srcPath)
	doc, err := source.Load(srcPath)
	if err != nil {
		pd.RenderFailed("Reading source file", time.Since(phaseStart))
		return nil, err
	}
	if opts.Verbose {
		pd.RenderSuccess("Read source", time.Since(phaseStart))
	}

	phaseStart = time.Now()
	pd.RenderStart("Generating dashboard...", "")
	dash, err := grafana.Build(doc, grafana.Options{
		Datasource:    grafana.DatasourceRef{Type: cfg.Datasource.Type, UID: cfg.Datasource.UID},
		PluginVersion: cfg.PluginVersion,
		Logger:        logger.NewEnvLogger("[layout]"),
	})
	if err != nil {
		pd.RenderFailed("Generating dashboard", time.Since(phaseStart))
		return nil, err
	}
	if opts.Verbose {
		pd.RenderSuccess("Generated dashboard", time.Since(phaseStart))
	}

	result := newResult(srcPath, dash)

	phaseStart = time.Now()
	switch {
	case opts.DryRun:
		pd.RenderSkipped("Writing dashboard", "validate only")
	case opts.Stdout:
		if err := grafana.Encode(opts.Dashboard, dash); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrOutput,
				"Failed to write the dashboard to stdout", "")
		}
	default:
		pd.RenderStart("Writing dashboard:", outPath)
		if err := grafana.WriteFile(outPath, dash); err != nil {
			pd.RenderFailed("Writing dashboard", time.Since(phaseStart))
			return nil, err
		}
		result.Output = outPath
		if opts.Verbose {
			pd.RenderSuccess("Wrote dashboard", time.Since(phaseStart))
		}
	}

	if !opts.Quiet {
		if opts.Verbose {
			pd.ThinDivider()
		} else {
			fmt.Fprintln(opts.Progress)
		}
		fmt.Fprint(opts.Progress, ui.RenderGenerateSummary(result.summary(), opts.Verbose))
	}

	return result, nil
}

// resolveConfig layers flags over the config file and environment.
func resolveConfig(opts GenerateOptions) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.BaseDir != "" {
		cfg.BaseDir = config.ExpandTilde(config.Expand(opts.BaseDir))
	}
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	if opts.Output != "" {
		cfg.Output = opts.Output
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// absPath makes p absolute for display; on failure p is used as is.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func newResult(srcPath string, dash *grafana.Dashboard) *GenerateResult {
	stats := grafana.Count(dash)
	return &GenerateResult{
		Source:          srcPath,
		Title:           dash.Title,
		UID:             dash.UID,
		Panels:          stats.Panels,
		Rows:            stats.Rows,
		CollapsedPanels: stats.Collapsed,
		Breakdown:       rowBreakdown(dash),
	}
}

// rowBreakdown counts the panels under each row. Expanded rows follow their
// panels in the flat list; collapsed rows carry them inside.
func rowBreakdown(dash *grafana.Dashboard) []ui.RowSummary {
	var rows []ui.RowSummary
	pending := 0

	for _, el := range dash.Panels {
		switch v := el.(type) {
		case *grafana.Panel:
			pending++
		case *grafana.Row:
			n := pending
			if v.Collapsed {
				n = len(v.Panels)
			}
			rows = append(rows, ui.RowSummary{ID: v.ID, Title: v.Title, Panels: n, Collapsed: v.Collapsed})
			pending = 0
		}
	}

	return rows
}

func (r *GenerateResult) summary() ui.GenerateSummary {
	return ui.GenerateSummary{
		Source:    r.Source,
		Output:    r.Output,
		Panels:    r.Panels,
		Rows:      r.Rows,
		Breakdown: r.Breakdown,
	}
}

// generateCommand is the cobra entry point shared by the root command.
func generateCommand(cmd *cobra.Command, opts GenerateOptions) error {
	if err := validateOutputFlags(opts.Stdout, machineMode, opts.Output); err != nil {
		return err
	}

	opts.Verbose = verbose
	opts.Quiet = quiet || machineMode
	opts.Progress = cmd.OutOrStdout()
	opts.Dashboard = cmd.OutOrStdout()
	if opts.Stdout {
		opts.Progress = cmd.ErrOrStderr()
	}

	result, err := Generate(opts)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(cmd.OutOrStdout(), result)
	}
	return nil
}
