package grafana

// Field order in these structs is the key order of the emitted JSON.

// Dashboard is the complete document Grafana imports.
type Dashboard struct {
	Annotations          Annotations `json:"annotations"`
	Editable             bool        `json:"editable"`
	FiscalYearStartMonth int         `json:"fiscalYearStartMonth"`
	GraphTooltip         int         `json:"graphTooltip"`
	ID                   int         `json:"id"`
	Links                []any       `json:"links"`
	Panels               []Element   `json:"panels"`
	Preload              bool        `json:"preload"`
	Refresh              string      `json:"refresh"`
	SchemaVersion        int         `json:"schemaVersion"`
	Tags                 []string    `json:"tags"`
	Templating           Templating  `json:"templating"`
	Time                 TimeRange   `json:"time"`
	Timepicker           Timepicker  `json:"timepicker"`
	Timezone             string      `json:"timezone"`
	Title                string      `json:"title"`
	UID                  string      `json:"uid"`
	Version              int         `json:"version"`
}

// Element is an entry of the top-level panel list: a *Panel or a *Row.
type Element interface {
	ElementID() int
	ElementType() string
}

// DatasourceRef points a panel or annotation at a datasource.
type DatasourceRef struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

// GridPos places an element on the 24-column grid.
type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Panel is a visualization panel.
type Panel struct {
	Datasource    DatasourceRef `json:"datasource"`
	Description   string        `json:"description"`
	FieldConfig   FieldConfig   `json:"fieldConfig"`
	GridPos       GridPos       `json:"gridPos"`
	ID            int           `json:"id"`
	PluginVersion string        `json:"pluginVersion"`
	Targets       []Target      `json:"targets"`
	Title         string        `json:"title"`
	Type          string        `json:"type"`
	Options       PanelOptions  `json:"options,omitempty"`
}

func (p *Panel) ElementID() int      { return p.ID }
func (p *Panel) ElementType() string { return p.Type }

// Row is a collapsible row header. Children are only nested when collapsed.
type Row struct {
	Collapsed bool     `json:"collapsed"`
	GridPos   GridPos  `json:"gridPos"`
	ID        int      `json:"id"`
	Panels    []*Panel `json:"panels"`
	Title     string   `json:"title"`
	Type      string   `json:"type"`
}

func (r *Row) ElementID() int      { return r.ID }
func (r *Row) ElementType() string { return r.Type }

// FieldConfig holds field formatting defaults and per-field overrides.
type FieldConfig struct {
	Defaults  FieldDefaults `json:"defaults"`
	Overrides []any         `json:"overrides"`
}

// FieldDefaults is the per-panel default field formatting.
type FieldDefaults struct {
	Color      ColorConfig       `json:"color"`
	Mappings   []any             `json:"mappings"`
	Thresholds Thresholds        `json:"thresholds"`
	Unit       string            `json:"unit"`
	Custom     *TimeseriesCustom `json:"custom,omitempty"`
}

type ColorConfig struct {
	Mode string `json:"mode"`
}

type Thresholds struct {
	Mode  string          `json:"mode"`
	Steps []ThresholdStep `json:"steps"`
}

// ThresholdStep is one rung of the threshold ladder. A nil Value is the
// base step and is emitted as null.
type ThresholdStep struct {
	Color string   `json:"color"`
	Value *float64 `json:"value"`
}

// Target is one query bound to a panel.
type Target struct {
	EditorMode   string `json:"editorMode"`
	Expr         string `json:"expr"`
	LegendFormat string `json:"legendFormat"`
	Range        bool   `json:"range"`
	RefID        string `json:"refId"`
}

// TimeseriesCustom is the fieldConfig.defaults.custom block of a timeseries panel.
type TimeseriesCustom struct {
	AxisBorderShow    bool              `json:"axisBorderShow"`
	AxisCenteredZero  bool              `json:"axisCenteredZero"`
	AxisColorMode     string            `json:"axisColorMode"`
	AxisLabel         string            `json:"axisLabel"`
	AxisPlacement     string            `json:"axisPlacement"`
	BarAlignment      int               `json:"barAlignment"`
	BarWidthFactor    float64           `json:"barWidthFactor"`
	DrawStyle         string            `json:"drawStyle"`
	FillOpacity       int               `json:"fillOpacity"`
	GradientMode      string            `json:"gradientMode"`
	HideFrom          HideFrom          `json:"hideFrom"`
	InsertNulls       bool              `json:"insertNulls"`
	LineInterpolation string            `json:"lineInterpolation"`
	LineWidth         int               `json:"lineWidth"`
	PointSize         int               `json:"pointSize"`
	ScaleDistribution ScaleDistribution `json:"scaleDistribution"`
	ShowPoints        string            `json:"showPoints"`
	ShowValues        bool              `json:"showValues"`
	SpanNulls         bool              `json:"spanNulls"`
	Stacking          Stacking          `json:"stacking"`
	ThresholdsStyle   ThresholdsStyle   `json:"thresholdsStyle"`
}

type HideFrom struct {
	Legend  bool `json:"legend"`
	Tooltip bool `json:"tooltip"`
	Viz     bool `json:"viz"`
}

type ScaleDistribution struct {
	Type string `json:"type"`
}

type Stacking struct {
	Group string `json:"group"`
	Mode  string `json:"mode"`
}

type ThresholdsStyle struct {
	Mode string `json:"mode"`
}

// PanelOptions is the kind-specific "options" block of a panel.
type PanelOptions interface {
	panelKind() string
}

// TimeseriesOptions configures legend and tooltip of a timeseries panel.
type TimeseriesOptions struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

func (TimeseriesOptions) panelKind() string { return "timeseries" }

type Legend struct {
	Calcs       []string `json:"calcs"`
	DisplayMode string   `json:"displayMode"`
	Placement   string   `json:"placement"`
	ShowLegend  bool     `json:"showLegend"`
}

type Tooltip struct {
	HideZeros bool   `json:"hideZeros"`
	Mode      string `json:"mode"`
	Sort      string `json:"sort"`
}

// StatOptions configures value reduction and coloring of a stat panel.
type StatOptions struct {
	ColorMode     string        `json:"colorMode"`
	GraphMode     string        `json:"graphMode"`
	JustifyMode   string        `json:"justifyMode"`
	Orientation   string        `json:"orientation"`
	ReduceOptions ReduceOptions `json:"reduceOptions"`
	TextMode      string        `json:"textMode"`
}

func (StatOptions) panelKind() string { return "stat" }

type ReduceOptions struct {
	Values bool     `json:"values"`
	Calcs  []string `json:"calcs"`
	Fields string   `json:"fields"`
}

// Annotations wraps the dashboard annotation list.
type Annotations struct {
	List []Annotation `json:"list"`
}

type Annotation struct {
	BuiltIn    int           `json:"builtIn"`
	Datasource DatasourceRef `json:"datasource"`
	Enable     bool          `json:"enable"`
	Hide       bool          `json:"hide"`
	IconColor  string        `json:"iconColor"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
}

// Templating wraps the dashboard variables.
type Templating struct {
	List []TemplateVar `json:"list"`
}

// TemplateVar is a query-backed dashboard variable.
type TemplateVar struct {
	AllowCustomValue *bool           `json:"allowCustomValue,omitempty"`
	Current          VariableCurrent `json:"current"`
	Definition       string          `json:"definition"`
	Description      string          `json:"description,omitempty"`
	IncludeAll       bool            `json:"includeAll,omitempty"`
	Label            string          `json:"label"`
	Multi            bool            `json:"multi,omitempty"`
	Name             string          `json:"name"`
	Options          []any           `json:"options"`
	Query            VariableQuery   `json:"query"`
	Refresh          int             `json:"refresh"`
	Regex            string          `json:"regex"`
	Sort             int             `json:"sort,omitempty"`
	Type             string          `json:"type"`
}

// VariableCurrent is the selected value. Value is a string for single-select
// variables and a []string for multi-select ones.
type VariableCurrent struct {
	Text  string `json:"text"`
	Value any    `json:"value"`
}

type VariableQuery struct {
	QryType int    `json:"qryType"`
	Query   string `json:"query"`
	RefID   string `json:"refId"`
}

type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Timepicker struct {
	RefreshIntervals []string `json:"refresh_intervals"`
}
