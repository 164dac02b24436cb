package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/dashgen/internal/config"
	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_NonInteractiveJSON(t *testing.T) {
	dir := testEnv(t, "")
	var out bytes.Buffer

	err := Init(InitOptions{Title: "Edge Proxies", NonInteractive: true, Out: &out})
	require.NoError(t, err)

	path := filepath.Join(dir, config.DefaultSourceFile)
	doc, err := source.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Edge Proxies", doc.DashboardInfo.Title)
	assert.Equal(t, "edge-proxies", doc.DashboardInfo.UID)
	assert.Equal(t, "10s", doc.DashboardInfo.Refresh)
	require.Len(t, doc.Metrics, 2)
	assert.True(t, doc.Metrics[1].IsCollapsed)
	assert.Equal(t, source.DefaultQuantile, doc.Metrics[0].Panels[1].Queries[0].Quantile)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"quantile": 0.95`)
	assert.Contains(t, out.String(), "✓ Created metrics-source.json")
	assert.Contains(t, out.String(), "Next steps:")
}

func TestInit_YAML(t *testing.T) {
	dir := testEnv(t, "")

	err := Init(InitOptions{Path: "metrics-source.yaml", UID: "edge", NonInteractive: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "metrics-source.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "row_title: Downstream Traffic")
	assert.Contains(t, string(data), "quantile: 0.95")

	doc, err := source.Load(filepath.Join(dir, "metrics-source.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "edge", doc.DashboardInfo.UID)
}

func TestInit_ExistingFileNeedsForce(t *testing.T) {
	dir := testEnv(t, testSource)

	err := Init(InitOptions{NonInteractive: true, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultSourceFile))
	require.NoError(t, err)
	assert.Equal(t, testSource, string(data), "existing file is untouched")

	err = Init(InitOptions{NonInteractive: true, Overwrite: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)
}

func TestInit_WritesConfig(t *testing.T) {
	dir := testEnv(t, "")

	err := Init(InitOptions{Path: "sources/edge.json", WriteConfig: true, NonInteractive: true, Out: &bytes.Buffer{}})
	require.Error(t, err, "parent directory does not exist yet")

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sources"), 0755))
	err = Init(InitOptions{Path: "sources/edge.json", WriteConfig: true, NonInteractive: true, Out: &bytes.Buffer{}})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "sources", config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "edge.json", cfg.Source)
	assert.Equal(t, config.DefaultOutputFile, cfg.Output)
}

func TestInit_ThenGenerate(t *testing.T) {
	dir := testEnv(t, "")
	require.NoError(t, Init(InitOptions{NonInteractive: true, Out: &bytes.Buffer{}}))

	result, err := Generate(GenerateOptions{Quiet: true})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Panels)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 1, result.CollapsedPanels)
	assert.Equal(t, filepath.Join(dir, config.DefaultOutputFile), result.Output)

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, 100, result.Breakdown[0].ID)
	assert.Equal(t, 2, result.Breakdown[0].Panels)
	assert.True(t, result.Breakdown[1].Collapsed)
	assert.Equal(t, 1, result.Breakdown[1].Panels)
}

func TestInitCommand(t *testing.T) {
	dir := testEnv(t, "")

	out, _, err := executeRoot(t, "init", "--non-interactive", "--title", "Mesh", "--refresh", "30s")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	doc, err := source.Load(filepath.Join(dir, config.DefaultSourceFile))
	require.NoError(t, err)
	assert.Equal(t, "mesh", doc.DashboardInfo.UID)
	assert.Equal(t, "30s", doc.DashboardInfo.Refresh)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Elchi Envoy Metrics", "elchi-envoy-metrics"},
		{"  --Edge__Proxy!! ", "edge-proxy"},
		{"v2 / prod", "v2-prod"},
		{"!!!", "dashboard"},
		{strings.Repeat("a", 50), strings.Repeat("a", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
