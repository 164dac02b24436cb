package config

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Default file names, relative to the base directory.
const (
	DefaultSourceFile = "metrics-source.json"
	DefaultOutputFile = "elchi-dashboard.json"
)

// Config represents the optional .dashgen.yaml file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// BaseDir anchors bare source/output file names.
	// Supports ~ and ${HOME}, ${USER}, ${PROJECT}.
	BaseDir string `yaml:"base_dir" mapstructure:"base_dir"`

	// Source is the source document path (JSON or YAML).
	Source string `yaml:"source" mapstructure:"source"`

	// Output is where the generated dashboard is written.
	Output string `yaml:"output" mapstructure:"output"`

	// Datasource every generated panel queries.
	Datasource DatasourceConfig `yaml:"datasource" mapstructure:"datasource"`

	// PluginVersion is stamped on every panel.
	PluginVersion string `yaml:"plugin_version" mapstructure:"plugin_version"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DatasourceConfig identifies a Grafana datasource.
type DatasourceConfig struct {
	Type string `yaml:"type" mapstructure:"type"`
	UID  string `yaml:"uid" mapstructure:"uid"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		BaseDir: ".",
		Source:  DefaultSourceFile,
		Output:  DefaultOutputFile,
		Datasource: DatasourceConfig{
			Type: "prometheus",
			UID:  "victoriametrics",
		},
		PluginVersion: "12.2.1",
		Color:         "auto",
	}
}
