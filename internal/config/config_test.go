package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, ".", cfg.BaseDir)
	assert.Equal(t, "metrics-source.json", cfg.Source)
	assert.Equal(t, "elchi-dashboard.json", cfg.Output)
	assert.Equal(t, "prometheus", cfg.Datasource.Type)
	assert.Equal(t, "victoriametrics", cfg.Datasource.UID)
	assert.Equal(t, "12.2.1", cfg.PluginVersion)
	assert.Equal(t, "auto", cfg.Color)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
base_dir: /srv/dashboards
source: metrics-source-minimal.json
output: elchi-minimal-dashboard.json
datasource:
  type: prometheus
  uid: prom-prod
color: never
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "/srv/dashboards", cfg.BaseDir)
	assert.Equal(t, "metrics-source-minimal.json", cfg.Source)
	assert.Equal(t, "elchi-minimal-dashboard.json", cfg.Output)
	assert.Equal(t, "prom-prod", cfg.Datasource.UID)
	assert.Equal(t, "never", cfg.Color)
	// Not in the file, so the default stays
	assert.Equal(t, "12.2.1", cfg.PluginVersion)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("output: from-file.json\n"), 0644))

	t.Setenv("DASHGEN_OUTPUT", "from-env.json")
	t.Setenv("DASHGEN_DATASOURCE_UID", "env-uid")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "from-env.json", cfg.Output)
	assert.Equal(t, "env-uid", cfg.Datasource.UID)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		got, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{}"), 0644))
		chdir(t, dir)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(got))
	})

	t.Run("global config", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		globalDir := filepath.Join(home, GlobalConfigDir)
		require.NoError(t, os.MkdirAll(globalDir, 0755))
		globalPath := filepath.Join(globalDir, GlobalConfigFile)
		require.NoError(t, os.WriteFile(globalPath, []byte("{}"), 0644))
		chdir(t, t.TempDir())

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, globalPath, got)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		chdir(t, t.TempDir())

		got, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestLoadOrDefault_NoFileStillReadsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("DASHGEN_SOURCE", "env-source.json")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "env-source.json", cfg.Source)
	assert.Equal(t, DefaultOutputFile, cfg.Output)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "future version", mutate: func(c *Config) { c.Version = 99 }, wantErr: "from the future"},
		{name: "empty source", mutate: func(c *Config) { c.Source = " " }, wantErr: "'source'"},
		{name: "empty output", mutate: func(c *Config) { c.Output = "" }, wantErr: "'output'"},
		{name: "datasource without uid", mutate: func(c *Config) { c.Datasource.UID = "" }, wantErr: "Datasource"},
		{name: "empty plugin version", mutate: func(c *Config) { c.PluginVersion = "" }, wantErr: "plugin_version"},
		{name: "bad color", mutate: func(c *Config) { c.Color = "rainbow" }, wantErr: "rainbow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name    string
		baseDir string
		path    string
		want    string
	}{
		{name: "bare file name", baseDir: "/srv/dash", path: "metrics-source.json", want: "/srv/dash/metrics-source.json"},
		{name: "relative subdir", baseDir: "/srv/dash", path: "out/d.json", want: "/srv/dash/out/d.json"},
		{name: "absolute path wins", baseDir: "/srv/dash", path: "/tmp/d.json", want: "/tmp/d.json"},
		{name: "empty base", baseDir: "", path: "d.json", want: "d.json"},
		{name: "tilde", baseDir: "/srv", path: "~/d.json", want: filepath.Join(home, "d.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.baseDir, tt.path))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("USER", "alice")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", Expand(""))
	assert.Equal(t, "/data/alice", Expand("/data/${USER}"))
	assert.Equal(t, home+"/dash", Expand("${HOME}/dash"))
	assert.Equal(t, "plain", Expand("plain"))
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "x"), ExpandTilde("~/x"))
	assert.Equal(t, "~bob/x", ExpandTilde("~bob/x"))
	assert.Equal(t, "", ExpandTilde(""))
}
