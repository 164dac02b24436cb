package grafana

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/logger"
	"github.com/rileyhilliard/dashgen/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(groups ...source.MetricGroup) *source.Document {
	return &source.Document{
		DashboardInfo: &source.DashboardInfo{Title: "Elchi", UID: "elchi"},
		Metrics:       groups,
	}
}

func panels(n int, kind string, width int) []source.Panel {
	out := make([]source.Panel, n)
	for i := range out {
		w := width
		out[i] = source.Panel{
			Title:     "p",
			PanelType: kind,
			Width:     &w,
			Queries:   []source.Query{{Metric: "m"}},
		}
	}
	return out
}

// flatPanels returns all panels, nested or not, in id order of emission.
func flatPanels(d *Dashboard) []*Panel {
	var out []*Panel
	for _, el := range d.Panels {
		switch v := el.(type) {
		case *Panel:
			out = append(out, v)
		case *Row:
			out = append(out, v.Panels...)
		}
	}
	return out
}

func rows(d *Dashboard) []*Row {
	var out []*Row
	for _, el := range d.Panels {
		if r, ok := el.(*Row); ok {
			out = append(out, r)
		}
	}
	return out
}

func TestBuild_SingleStatScenario(t *testing.T) {
	d, err := Build(doc(source.MetricGroup{
		RowTitle: "Connections",
		Panels: []source.Panel{{
			Title:     "Active",
			PanelType: "stat",
			Queries:   []source.Query{{Metric: "active_conns", Type: "gauge"}},
		}},
	}), Options{})
	require.NoError(t, err)

	require.Len(t, d.Panels, 2)
	p, ok := d.Panels[0].(*Panel)
	require.True(t, ok)
	r, ok := d.Panels[1].(*Row)
	require.True(t, ok)

	assert.Equal(t, 100, r.ID)
	assert.Equal(t, "Connections", r.Title)
	assert.Equal(t, 0, r.GridPos.Y)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "stat", p.Type)
	assert.Equal(t, 4, p.GridPos.H)
	assert.Equal(t, 1, p.GridPos.Y)
	assert.Equal(t, "Active", p.Title)
}

func TestBuild_IDsAreSequential(t *testing.T) {
	d, err := Build(doc(
		source.MetricGroup{RowTitle: "a", Panels: panels(3, "", 12)},
		source.MetricGroup{RowTitle: "b", Panels: panels(2, "stat", 6), IsCollapsed: true},
		source.MetricGroup{RowTitle: "c", Panels: panels(1, "", 24)},
	), Options{})
	require.NoError(t, err)

	for i, p := range flatPanels(d) {
		assert.Equal(t, i+1, p.ID)
	}
	for i, r := range rows(d) {
		assert.Equal(t, 100+i, r.ID)
	}
	assert.Equal(t, Stats{Panels: 6, Rows: 3, Collapsed: 2}, Count(d))
}

func TestBuild_WrapsOnOverflow(t *testing.T) {
	tests := []struct {
		name    string
		panels  []source.Panel
		wantPos []GridPos
		nextY   int
	}{
		{
			name:   "two halves then wrap",
			panels: panels(3, "", 12),
			wantPos: []GridPos{
				{H: 8, W: 12, X: 0, Y: 1},
				{H: 8, W: 12, X: 12, Y: 1},
				{H: 8, W: 12, X: 0, Y: 9},
			},
			nextY: 17,
		},
		{
			name:   "full width panels stack",
			panels: panels(2, "", 24),
			wantPos: []GridPos{
				{H: 8, W: 24, X: 0, Y: 1},
				{H: 8, W: 24, X: 0, Y: 9},
			},
			nextY: 17,
		},
		{
			name:   "exact fit does not wrap",
			panels: panels(3, "", 8),
			wantPos: []GridPos{
				{H: 8, W: 8, X: 0, Y: 1},
				{H: 8, W: 8, X: 8, Y: 1},
				{H: 8, W: 8, X: 16, Y: 1},
			},
			nextY: 9,
		},
		{
			name:   "stat lines still advance by 8",
			panels: panels(3, "stat", 12),
			wantPos: []GridPos{
				{H: 4, W: 12, X: 0, Y: 1},
				{H: 4, W: 12, X: 12, Y: 1},
				{H: 4, W: 12, X: 0, Y: 9},
			},
			nextY: 17,
		},
		{
			name:    "empty group only takes the row",
			panels:  []source.Panel{},
			wantPos: nil,
			nextY:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Build(doc(
				source.MetricGroup{RowTitle: "first", Panels: tt.panels},
				source.MetricGroup{RowTitle: "second", Panels: []source.Panel{}},
			), Options{})
			require.NoError(t, err)

			var got []GridPos
			for _, p := range flatPanels(d) {
				got = append(got, p.GridPos)
			}
			assert.Equal(t, tt.wantPos, got)

			rs := rows(d)
			require.Len(t, rs, 2)
			assert.Equal(t, 0, rs[0].GridPos.Y)
			assert.Equal(t, tt.nextY, rs[1].GridPos.Y)
		})
	}
}

func TestBuild_CollapsedRowNestsPanels(t *testing.T) {
	d, err := Build(doc(
		source.MetricGroup{RowTitle: "hidden", Panels: panels(3, "", 12), IsCollapsed: true},
		source.MetricGroup{RowTitle: "visible", Panels: panels(1, "", 12)},
	), Options{})
	require.NoError(t, err)

	// hidden row, visible panel, visible row
	require.Len(t, d.Panels, 3)

	hidden, ok := d.Panels[0].(*Row)
	require.True(t, ok)
	assert.True(t, hidden.Collapsed)
	require.Len(t, hidden.Panels, 3)
	assert.Equal(t, 9, hidden.Panels[2].GridPos.Y)

	visiblePanel, ok := d.Panels[1].(*Panel)
	require.True(t, ok)
	assert.Equal(t, 4, visiblePanel.ID)
	assert.Equal(t, 18, visiblePanel.GridPos.Y)

	visible, ok := d.Panels[2].(*Row)
	require.True(t, ok)
	assert.False(t, visible.Collapsed)
	assert.Empty(t, visible.Panels)
	assert.Equal(t, 17, visible.GridPos.Y, "collapsed row still advances the offset")
}

func TestBuild_Metadata(t *testing.T) {
	src := doc()
	src.DashboardInfo.Tags = []string{"envoy", "elchi"}
	src.DashboardInfo.Refresh = "30s"

	d, err := Build(src, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Elchi", d.Title)
	assert.Equal(t, "elchi", d.UID)
	assert.Equal(t, []string{"envoy", "elchi"}, d.Tags)
	assert.Equal(t, "30s", d.Refresh)
	assert.Equal(t, 42, d.SchemaVersion)
	assert.Equal(t, 11, d.Version)
	assert.Equal(t, "browser", d.Timezone)
	assert.Equal(t, []string{"5s", "10s", "30s", "1m", "5m"}, d.Timepicker.RefreshIntervals)
	assert.Empty(t, d.Panels)

	require.Len(t, d.Templating.List, 3)
	assert.Equal(t, "service", d.Templating.List[0].Name)
	assert.Equal(t, "project", d.Templating.List[1].Name)
	client := d.Templating.List[2]
	assert.Equal(t, "client", client.Name)
	assert.True(t, client.Multi)
	assert.True(t, client.IncludeAll)

	require.Len(t, d.Annotations.List, 1)
	assert.Equal(t, "Annotations & Alerts", d.Annotations.List[0].Name)
}

func TestBuild_DefaultsRefreshAndTags(t *testing.T) {
	d, err := Build(doc(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "10s", d.Refresh)
	assert.NotNil(t, d.Tags)
	assert.Empty(t, d.Tags)
}

func TestBuild_UnsupportedKindAbortsWholeRun(t *testing.T) {
	bad := panels(1, "", 12)
	bad[0].Title = "Latency"
	bad[0].Queries = []source.Query{{Metric: "m", Type: "percentile"}}

	d, err := Build(doc(
		source.MetricGroup{RowTitle: "fine", Panels: panels(2, "", 12)},
		source.MetricGroup{RowTitle: "broken", Panels: bad},
	), Options{})
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, errors.IsCode(err, errors.ErrUnsupportedQueryKind))
	assert.Contains(t, err.Error(), `row "broken": panel "Latency"`)
}

func TestBuild_TwentySevenQueriesFails(t *testing.T) {
	p := panels(1, "", 12)
	p[0].Queries = make([]source.Query, 27)
	for i := range p[0].Queries {
		p[0].Queries[i] = source.Query{Metric: "m"}
	}

	_, err := Build(doc(source.MetricGroup{RowTitle: "r", Panels: p}), Options{})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTooManyQueries))
}

func TestBuild_LogsWraps(t *testing.T) {
	buf := logger.NewBufferLogger()
	_, err := Build(doc(source.MetricGroup{RowTitle: "r", Panels: panels(3, "", 12)}), Options{Logger: buf})
	require.NoError(t, err)

	require.True(t, buf.HasLevel("debug"))
	assert.Contains(t, buf.Messages[0].Message, "wraps at x=24")
}

func TestBuild_Deterministic(t *testing.T) {
	src := doc(
		source.MetricGroup{RowTitle: "a", Panels: panels(3, "", 12)},
		source.MetricGroup{RowTitle: "b", Panels: panels(2, "stat", 6), IsCollapsed: true},
	)

	first, err := Build(src, Options{})
	require.NoError(t, err)
	second, err := Build(src, Options{})
	require.NoError(t, err)

	a, err := Marshal(first)
	require.NoError(t, err)
	b, err := Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestEncode_Format(t *testing.T) {
	d, err := Build(&source.Document{
		DashboardInfo: &source.DashboardInfo{Title: "Bağlantılar <prod>", UID: "u"},
		Metrics: []source.MetricGroup{{
			RowTitle: "Çekirdek",
			Panels: []source.Panel{{
				Title:     "Active",
				PanelType: "stat",
				Queries:   []source.Query{{Metric: "active_conns", Type: "gauge", Legend: "{{pod}} & co"}},
			}},
		}},
	}, Options{})
	require.NoError(t, err)

	data, err := Marshal(d)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "\n  \"annotations\": {\n    \"list\": [")
	assert.Contains(t, out, `"title": "Bağlantılar <prod>"`)
	assert.Contains(t, out, `"title": "Çekirdek"`)
	assert.Contains(t, out, `"legendFormat": "{{pod}} & co"`)
	assert.Contains(t, out, `"value": null`)
	assert.Contains(t, out, `"value": 80`)
	assert.NotContains(t, out, `\u003c`)
	assert.NotContains(t, out, `"custom"`, "stat panels carry no custom block")

	// Panel keys keep the order Grafana exports them in.
	order := []string{`"datasource"`, `"description"`, `"fieldConfig"`, `"gridPos"`, `"id": 1`, `"pluginVersion"`, `"targets"`, `"title": "Active"`, `"type": "stat"`, `"options"`}
	panelsJSON := out[strings.Index(out, `"panels": [`):]
	last := -1
	for _, key := range order {
		idx := strings.Index(panelsJSON, key)
		require.NotEqual(t, -1, idx, key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, []any{}, generic["links"])
	templating := generic["templating"].(map[string]any)["list"].([]any)
	client := templating[2].(map[string]any)
	assert.Equal(t, false, client["allowCustomValue"])
	assert.Equal(t, []any{"$__all"}, client["current"].(map[string]any)["value"])
	assert.Equal(t, "", client["regex"])
	_, hasSort := client["sort"]
	assert.False(t, hasSort)
}

func TestWriteFile(t *testing.T) {
	d, err := Build(doc(source.MetricGroup{RowTitle: "r", Panels: panels(1, "", 12)}), Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "dashboard.json")
	require.NoError(t, WriteFile(path, d))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	d, err := Build(doc(), Options{})
	require.NoError(t, err)

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"), d)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrOutput))
}
