package grafana

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/promql"
	"github.com/rileyhilliard/dashgen/internal/source"
)

const refIDs = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RefID returns the single-letter reference id for the i-th query of a panel.
func RefID(i int) (string, error) {
	if i < 0 || i >= len(refIDs) {
		return "", errors.New(errors.ErrTooManyQueries,
			fmt.Sprintf("No reference id left for query #%d", i+1),
			fmt.Sprintf("A panel supports at most %d queries", len(refIDs)))
	}
	return refIDs[i : i+1], nil
}

// NewPanel assembles a complete panel from its declaration, id and grid origin.
func NewPanel(decl source.Panel, id, x, y int, opts Options) (*Panel, error) {
	if len(decl.Queries) > len(refIDs) {
		return nil, source.TooManyQueries(fmt.Sprintf("panel %q", decl.Title), len(decl.Queries))
	}

	targets := make([]Target, 0, len(decl.Queries))
	for i, q := range decl.Queries {
		target, err := NewTarget(q, i)
		if err != nil {
			return nil, errors.Annotate(err, fmt.Sprintf("panel %q", decl.Title))
		}
		targets = append(targets, target)
	}

	kind := decl.Kind()
	return &Panel{
		Datasource:  opts.datasource(),
		Description: decl.Description,
		FieldConfig: fieldConfig(kind, decl.UnitOrDefault()),
		GridPos: GridPos{
			H: panelHeight(kind),
			W: decl.WidthOrDefault(),
			X: x,
			Y: y,
		},
		ID:            id,
		PluginVersion: opts.pluginVersion(),
		Targets:       targets,
		Title:         PanelTitle(decl),
		Type:          kind,
		Options:       panelOptions(kind),
	}, nil
}

// NewTarget builds the i-th query target of a panel.
func NewTarget(q source.Query, i int) (Target, error) {
	refID, err := RefID(i)
	if err != nil {
		return Target{}, err
	}
	expr, err := promql.Build(q)
	if err != nil {
		return Target{}, err
	}
	return Target{
		EditorMode:   "code",
		Expr:         expr,
		LegendFormat: q.LegendOrDefault(),
		Range:        true,
		RefID:        refID,
	}, nil
}

// PanelTitle appends the metric names in parentheses. Stat panels keep the
// bare title.
func PanelTitle(decl source.Panel) string {
	if decl.Kind() == source.PanelStat || len(decl.MetricNames) == 0 {
		return decl.Title
	}
	names := strings.Join(decl.MetricNames, ", ")
	if names == "" {
		return decl.Title
	}
	return fmt.Sprintf("%s (%s)", decl.Title, names)
}

// NewRow builds a full-width row header at y.
func NewRow(title string, id, y int, collapsed bool) *Row {
	return &Row{
		Collapsed: collapsed,
		GridPos:   GridPos{H: RowHeight, W: source.GridWidth, X: 0, Y: y},
		ID:        id,
		Panels:    []*Panel{},
		Title:     title,
		Type:      "row",
	}
}
