package source

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/util"
)

// GridWidth is the number of columns in the dashboard grid.
const GridWidth = 24

// Validate checks that every required field is present and that panel-level
// values are in range. Query kinds are checked later, when the query is built.
func Validate(doc *Document) error {
	if doc.DashboardInfo == nil {
		return missing("dashboard_info")
	}
	if strings.TrimSpace(doc.DashboardInfo.Title) == "" {
		return missing("dashboard_info.title")
	}
	if strings.TrimSpace(doc.DashboardInfo.UID) == "" {
		return missing("dashboard_info.uid")
	}
	if doc.Metrics == nil {
		return missing("metrics")
	}

	for gi, group := range doc.Metrics {
		where := fmt.Sprintf("metrics[%d]", gi)
		if group.RowTitle == "" {
			return missing(where + ".row_title")
		}
		if group.Panels == nil {
			return missing(where + ".panels")
		}

		for pi, panel := range group.Panels {
			if err := validatePanel(fmt.Sprintf("%s.panels[%d]", where, pi), panel); err != nil {
				return err
			}
		}
	}

	return nil
}

func validatePanel(where string, p Panel) error {
	if p.Title == "" {
		return missing(where + ".title")
	}
	if p.Queries == nil {
		return missing(where + ".queries")
	}

	switch p.Kind() {
	case PanelTimeseries, PanelStat:
	default:
		return errors.New(errors.ErrMalformedSource,
			fmt.Sprintf("%s: unknown panel_type %q", where, p.PanelType),
			util.DidYouMean(p.PanelType, []string{PanelTimeseries, PanelStat}))
	}

	if w := p.WidthOrDefault(); w < 1 || w > GridWidth {
		return errors.New(errors.ErrMalformedSource,
			fmt.Sprintf("%s: width %d is outside the %d-column grid", where, w, GridWidth),
			fmt.Sprintf("Pick a width between 1 and %d", GridWidth))
	}

	if len(p.Queries) > MaxQueriesPerPanel {
		return TooManyQueries(where, len(p.Queries))
	}

	for qi, q := range p.Queries {
		if q.Metric == "" {
			return missing(fmt.Sprintf("%s.queries[%d].metric", where, qi))
		}
	}
	return nil
}

// TooManyQueries reports a panel that would run out of single-letter refIds.
func TooManyQueries(where string, n int) error {
	return errors.New(errors.ErrTooManyQueries,
		fmt.Sprintf("%s declares %d queries, but a panel supports at most %d (refIds A-Z)", where, n, MaxQueriesPerPanel),
		"Split the queries across more than one panel")
}

func missing(field string) error {
	return errors.New(errors.ErrMalformedSource,
		fmt.Sprintf("Required field %q is missing", field),
		"Add the field to the source document")
}
