package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/dashgen/internal/config"
	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/source"
	"github.com/rileyhilliard/dashgen/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// maxUIDLength is Grafana's limit for dashboard uids.
const maxUIDLength = 40

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Source file to create; .yaml/.yml writes YAML
	Title          string // Dashboard title
	UID            string // Dashboard uid, derived from the title when empty
	Refresh        string // Auto-refresh interval
	WriteConfig    bool   // Also write .dashgen.yaml next to the source
	Overwrite      bool   // Overwrite existing files without asking
	NonInteractive bool   // Skip prompts, use defaults
	Out            io.Writer
}

// Init scaffolds a starter source file that generates a working dashboard.
func Init(opts InitOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Path == "" {
		opts.Path = config.DefaultSourceFile
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Source file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("'%s' already exists. Overwrite?", opts.Path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	if opts.Refresh == "" {
		opts.Refresh = source.DefaultRefresh
	}
	if !opts.NonInteractive {
		if err := promptInitOptions(&opts); err != nil {
			return err
		}
	}
	applyInitDefaults(&opts)

	doc := starterDocument(opts)
	if err := source.Validate(doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrMalformedSource,
			"Generated starter source is invalid",
			"Check the title and uid you entered")
	}

	data, err := encodeDocument(doc, source.FormatFor(opts.Path))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Failed to encode the starter source",
			"This shouldn't happen - please report this bug")
	}
	if err := os.WriteFile(opts.Path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrOutput,
			fmt.Sprintf("Failed to write source file: %s", opts.Path),
			"Check directory permissions")
	}
	fmt.Fprintf(opts.Out, "%s Created %s\n", ui.SymbolSuccess, opts.Path)

	if opts.WriteConfig {
		configPath, err := writeStarterConfig(opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "%s Created %s\n", ui.SymbolSuccess, configPath)
	}

	fmt.Fprintln(opts.Out)
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintf(opts.Out, "  dashgen validate -s %s  - Check the source\n", opts.Path)
	fmt.Fprintf(opts.Out, "  dashgen -s %s           - Generate the dashboard\n", opts.Path)

	return nil
}

// promptInitOptions asks for the dashboard metadata.
func promptInitOptions(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dashboard title").
				Placeholder(defaultTitle()).
				Value(&opts.Title),
			huh.NewInput().
				Title("Dashboard uid").
				Description("Leave empty to derive it from the title").
				Value(&opts.UID).
				Validate(func(s string) error {
					if len(s) > maxUIDLength {
						return fmt.Errorf("uid must be at most %d characters", maxUIDLength)
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Auto-refresh").
				Options(huh.NewOptions("5s", "10s", "30s", "1m", "5m")...).
				Value(&opts.Refresh),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Also create " + config.ConfigFileName + "?").
				Description("Stores the source/output paths and datasource").
				Value(&opts.WriteConfig),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

func applyInitDefaults(opts *InitOptions) {
	opts.Title = strings.TrimSpace(opts.Title)
	if opts.Title == "" {
		opts.Title = defaultTitle()
	}
	opts.UID = strings.TrimSpace(opts.UID)
	if opts.UID == "" {
		opts.UID = slugify(opts.Title)
	}
}

func defaultTitle() string {
	return config.Expand("${PROJECT}") + " metrics"
}

// slugify lowercases s and collapses everything that is not a letter or
// digit into single dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxUIDLength {
		slug = strings.TrimSuffix(slug[:maxUIDLength], "-")
	}
	if slug == "" {
		slug = "dashboard"
	}
	return slug
}

// starterDocument is a small but complete source: one expanded row with a
// rate and a histogram panel, and one collapsed row with a stat panel.
func starterDocument(opts InitOptions) *source.Document {
	statWidth := 6
	return &source.Document{
		DashboardInfo: &source.DashboardInfo{
			Title:   opts.Title,
			UID:     opts.UID,
			Tags:    []string{"envoy"},
			Refresh: opts.Refresh,
		},
		Datasource: source.Datasource{Type: "prometheus", UID: "victoriametrics"},
		Metrics: []source.MetricGroup{
			{
				RowTitle: "Downstream Traffic",
				Panels: []source.Panel{
					{
						Title:       "Requests",
						Description: "Downstream request rate per listener",
						MetricNames: []string{"http_downstream_rq_total"},
						Unit:        "reqps",
						Queries: []source.Query{{
							Metric:  "http_downstream_rq_total",
							Legend:  "{{envoy_http_conn_manager_prefix}}",
							GroupBy: "envoy_http_conn_manager_prefix",
						}},
					},
					{
						Title:       "Request latency",
						MetricNames: []string{"http_downstream_rq_time"},
						Unit:        "ms",
						Queries: []source.Query{{
							Metric:   "http_downstream_rq_time",
							Legend:   "p95 {{envoy_http_conn_manager_prefix}}",
							Type:     source.KindHistogram,
							GroupBy:  "envoy_http_conn_manager_prefix",
							Quantile: source.DefaultQuantile,
						}},
					},
				},
			},
			{
				RowTitle:    "Connections",
				IsCollapsed: true,
				Panels: []source.Panel{
					{
						Title:     "Active connections",
						PanelType: source.PanelStat,
						Width:     &statWidth,
						Queries: []source.Query{{
							Metric:       "http_downstream_cx_active",
							Type:         source.KindGauge,
							DefaultValue: "0",
						}},
					},
				},
			},
		},
	}
}

func encodeDocument(doc *source.Document, format source.Format) ([]byte, error) {
	var buf bytes.Buffer

	if format == source.FormatYAML {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeStarterConfig writes .dashgen.yaml next to the source file.
func writeStarterConfig(opts InitOptions) (string, error) {
	dir := filepath.Dir(opts.Path)
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", configPath),
			"Use --force to overwrite")
	}

	cfg := config.DefaultConfig()
	cfg.Source = filepath.Base(opts.Path)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# dashgen configuration
# Run 'dashgen' in this directory to regenerate the dashboard

`
	if err := os.WriteFile(configPath, []byte(header+string(data)), 0644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}
	return configPath, nil
}

// stdinIsTerminal reports whether prompts can be shown.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Init command flags
var (
	initTitleFlag          string
	initUIDFlag            string
	initRefreshFlag        string
	initConfigFlag         bool
	initForce              bool
	initNonInteractiveFlag bool
)

// initCmd scaffolds a starter source file
var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Create a starter metrics source file",
	Long: `Create a starter source file with one expanded and one collapsed row.

Prompts for the dashboard title, uid, and refresh interval when run in a
terminal. A .yaml or .yml file name writes YAML instead of JSON.

Examples:
  dashgen init
  dashgen init metrics-source.yaml --config-file
  dashgen init --non-interactive --title "Edge proxies"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := InitOptions{
			Title:          initTitleFlag,
			UID:            initUIDFlag,
			Refresh:        initRefreshFlag,
			WriteConfig:    initConfigFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractiveFlag || machineMode || os.Getenv("CI") != "" || !stdinIsTerminal(),
			Out:            cmd.OutOrStdout(),
		}
		if len(args) == 1 {
			opts.Path = args[0]
		}
		if baseDirFlag != "" {
			opts.Path = config.ResolvePath(config.ExpandTilde(baseDirFlag), pathOrDefault(opts.Path))
		}
		return Init(opts)
	},
}

func pathOrDefault(p string) string {
	if p == "" {
		return config.DefaultSourceFile
	}
	return p
}

func init() {
	initCmd.Flags().StringVar(&initTitleFlag, "title", "", "dashboard title")
	initCmd.Flags().StringVar(&initUIDFlag, "uid", "", "dashboard uid (default: derived from the title)")
	initCmd.Flags().StringVar(&initRefreshFlag, "refresh", "", "auto-refresh interval (default: 10s)")
	initCmd.Flags().BoolVar(&initConfigFlag, "config-file", false, "also write "+config.ConfigFileName)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	initCmd.Flags().BoolVar(&initNonInteractiveFlag, "non-interactive", false, "skip prompts and use defaults")
	rootCmd.AddCommand(initCmd)
}
