package grafana

import "github.com/rileyhilliard/dashgen/internal/source"

// Fixed values of the emitted dashboard.
const (
	DefaultPluginVersion = "12.2.1"
	SchemaVersion        = 42
	DashboardVersion     = 11
	PanelHeight          = 8
	StatPanelHeight      = 4
	RowHeight            = 1

	// FirstPanelID and FirstRowID keep panel and row ids disjoint.
	FirstPanelID = 1
	FirstRowID   = 100

	variableQueryRefID = "PrometheusVariableQueryEditor-VariableQuery"
)

// DefaultDatasource is the datasource every panel queries.
func DefaultDatasource() DatasourceRef {
	return DatasourceRef{Type: "prometheus", UID: "victoriametrics"}
}

// panelHeight is the grid height a panel of the given kind occupies.
func panelHeight(kind string) int {
	if kind == source.PanelStat {
		return StatPanelHeight
	}
	return PanelHeight
}

func ptr[T any](v T) *T { return &v }

// thresholdSteps returns the threshold ladder for a panel kind.
// Timeseries panels get a single green base at 0; stat panels get a null
// green base and a yellow step at 80.
func thresholdSteps(kind string) []ThresholdStep {
	if kind == source.PanelStat {
		return []ThresholdStep{
			{Color: "green", Value: nil},
			{Color: "yellow", Value: ptr(80.0)},
		}
	}
	return []ThresholdStep{
		{Color: "green", Value: ptr(0.0)},
	}
}

func colorMode(kind string) string {
	if kind == source.PanelTimeseries {
		return "palette-classic"
	}
	return "thresholds"
}

func fieldConfig(kind, unit string) FieldConfig {
	defaults := FieldDefaults{
		Color:    ColorConfig{Mode: colorMode(kind)},
		Mappings: []any{},
		Thresholds: Thresholds{
			Mode:  "absolute",
			Steps: thresholdSteps(kind),
		},
		Unit: unit,
	}
	if kind == source.PanelTimeseries {
		defaults.Custom = timeseriesCustom()
	}
	return FieldConfig{Defaults: defaults, Overrides: []any{}}
}

func timeseriesCustom() *TimeseriesCustom {
	return &TimeseriesCustom{
		AxisColorMode:     "text",
		AxisPlacement:     "auto",
		BarWidthFactor:    0.6,
		DrawStyle:         "line",
		FillOpacity:       10,
		GradientMode:      "none",
		LineInterpolation: "linear",
		LineWidth:         1,
		PointSize:         5,
		ScaleDistribution: ScaleDistribution{Type: "linear"},
		ShowPoints:        "never",
		Stacking:          Stacking{Group: "A", Mode: "none"},
		ThresholdsStyle:   ThresholdsStyle{Mode: "off"},
	}
}

func panelOptions(kind string) PanelOptions {
	switch kind {
	case source.PanelTimeseries:
		return TimeseriesOptions{
			Legend: Legend{
				Calcs:       []string{"mean", "lastNotNull", "max"},
				DisplayMode: "table",
				Placement:   "bottom",
				ShowLegend:  true,
			},
			Tooltip: Tooltip{Mode: "multi", Sort: "desc"},
		}
	case source.PanelStat:
		return StatOptions{
			ColorMode:   "value",
			GraphMode:   "area",
			JustifyMode: "auto",
			Orientation: "auto",
			ReduceOptions: ReduceOptions{
				Calcs: []string{"lastNotNull"},
			},
			TextMode: "auto",
		}
	}
	return nil
}

// Variables returns the service, project and client template variables the
// generated queries refer to.
func Variables() []TemplateVar {
	return []TemplateVar{
		{
			Current:     VariableCurrent{Text: "q3", Value: "q3"},
			Definition:  "label_values(__name__)",
			Description: "Select the service to monitor",
			Label:       "Service",
			Name:        "service",
			Options:     []any{},
			Query:       VariableQuery{QryType: 1, Query: "label_values(__name__)", RefID: variableQueryRefID},
			Refresh:     1,
			Regex:       "(.*)_[0-9a-f]{24}_.*",
			Sort:        1,
			Type:        "query",
		},
		{
			Current:     VariableCurrent{Text: "68ac8add4d6ae9208b24492b", Value: "68ac8add4d6ae9208b24492b"},
			Definition:  "label_values(__name__)",
			Description: "Select the project ID",
			Label:       "Project",
			Name:        "project",
			Options:     []any{},
			Query:       VariableQuery{QryType: 1, Query: "label_values(__name__)", RefID: variableQueryRefID},
			Refresh:     1,
			Regex:       ".*_([0-9a-f]{24,}).*",
			Sort:        1,
			Type:        "query",
		},
		{
			AllowCustomValue: ptr(false),
			Current:          VariableCurrent{Text: "All", Value: []string{"$__all"}},
			Definition:       "label_values(client_name)",
			IncludeAll:       true,
			Label:            "Client",
			Multi:            true,
			Name:             "client",
			Options:          []any{},
			Query:            VariableQuery{QryType: 1, Query: "label_values(client_name)", RefID: variableQueryRefID},
			Refresh:          1,
			Regex:            "",
			Type:             "query",
		},
	}
}

// BuiltinAnnotations returns Grafana's "Annotations & Alerts" entry.
func BuiltinAnnotations() Annotations {
	return Annotations{List: []Annotation{{
		BuiltIn:    1,
		Datasource: DatasourceRef{Type: "datasource", UID: "grafana"},
		Enable:     true,
		Hide:       true,
		IconColor:  "rgba(0, 211, 255, 1)",
		Name:       "Annotations & Alerts",
		Type:       "dashboard",
	}}}
}

// RefreshIntervals are the choices offered by the time picker.
func RefreshIntervals() []string {
	return []string{"5s", "10s", "30s", "1m", "5m"}
}
