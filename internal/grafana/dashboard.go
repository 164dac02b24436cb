package grafana

import (
	"fmt"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/logger"
	"github.com/rileyhilliard/dashgen/internal/source"
)

// Options carries the few generator-level settings that are not part of the
// source document. The zero value uses the built-in defaults.
type Options struct {
	Datasource    DatasourceRef
	PluginVersion string
	Logger        logger.Logger
}

func (o Options) datasource() DatasourceRef {
	if o.Datasource.Type == "" && o.Datasource.UID == "" {
		return DefaultDatasource()
	}
	return o.Datasource
}

func (o Options) pluginVersion() string {
	if o.PluginVersion == "" {
		return DefaultPluginVersion
	}
	return o.PluginVersion
}

func (o Options) log() logger.Logger {
	if o.Logger == nil {
		return logger.Noop()
	}
	return o.Logger
}

// layoutState is the running cursor of one Build call.
type layoutState struct {
	nextPanelID int
	nextRowID   int
	y           int
}

// Build expands a source document into a full dashboard. Nothing is returned
// unless every panel and query could be built.
func Build(doc *source.Document, opts Options) (*Dashboard, error) {
	if doc.DashboardInfo == nil {
		return nil, errors.New(errors.ErrMalformedSource,
			`Required field "dashboard_info" is missing`,
			"Add the field to the source document")
	}

	state := &layoutState{nextPanelID: FirstPanelID, nextRowID: FirstRowID}
	elements := make([]Element, 0)

	for _, group := range doc.Metrics {
		groupElements, err := state.layoutGroup(group, opts)
		if err != nil {
			return nil, errors.Annotate(err, fmt.Sprintf("row %q", group.RowTitle))
		}
		elements = append(elements, groupElements...)
	}

	info := doc.DashboardInfo
	return &Dashboard{
		Annotations:   BuiltinAnnotations(),
		Editable:      true,
		GraphTooltip:  1,
		Links:         []any{},
		Panels:        elements,
		Refresh:       info.RefreshOrDefault(),
		SchemaVersion: SchemaVersion,
		Tags:          info.TagsOrEmpty(),
		Templating:    Templating{List: Variables()},
		Time:          TimeRange{From: "now-30m", To: "now"},
		Timepicker:    Timepicker{RefreshIntervals: RefreshIntervals()},
		Timezone:      "browser",
		Title:         info.Title,
		UID:           info.UID,
		Version:       DashboardVersion,
	}, nil
}

// layoutGroup places one row and its panels, returning the elements to append
// to the top-level list. Panels of an expanded row come first, followed by
// the row itself; a collapsed row carries its panels inside it.
func (s *layoutState) layoutGroup(group source.MetricGroup, opts Options) ([]Element, error) {
	log := opts.log()

	row := NewRow(group.RowTitle, s.nextRowID, s.y, group.IsCollapsed)
	s.nextRowID++
	s.y += RowHeight

	var out []Element
	x := 0
	// lineHeight only ever records PanelHeight, even for stat panels, so a
	// line of stat panels still reserves 8 units. Existing dashboards rely on
	// this spacing.
	lineHeight := 0

	for _, decl := range group.Panels {
		width := decl.WidthOrDefault()
		if x+width > source.GridWidth {
			log.Debug("row %q: panel %q (w=%d) wraps at x=%d, y %d -> %d",
				group.RowTitle, decl.Title, width, x, s.y, s.y+lineHeight)
			x = 0
			s.y += lineHeight
			lineHeight = 0
		}

		panel, err := NewPanel(decl, s.nextPanelID, x, s.y, opts)
		if err != nil {
			return nil, err
		}

		if group.IsCollapsed {
			row.Panels = append(row.Panels, panel)
		} else {
			out = append(out, panel)
		}

		s.nextPanelID++
		x += width
		lineHeight = max(lineHeight, PanelHeight)
	}

	s.y += lineHeight
	return append(out, row), nil
}

// Stats summarizes a built dashboard.
type Stats struct {
	Panels int `json:"panels"`
	Rows   int `json:"rows"`
	// Collapsed counts panels nested inside collapsed rows.
	Collapsed int `json:"collapsed"`
}

// Count tallies rows and panels, including panels nested in collapsed rows.
func Count(d *Dashboard) Stats {
	var st Stats
	for _, el := range d.Panels {
		switch v := el.(type) {
		case *Row:
			st.Rows++
			st.Panels += len(v.Panels)
			st.Collapsed += len(v.Panels)
		case *Panel:
			st.Panels++
		}
	}
	return st
}
