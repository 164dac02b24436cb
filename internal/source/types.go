package source

// Panel kinds understood by the generator.
const (
	PanelTimeseries = "timeseries"
	PanelStat       = "stat"
)

// Query aggregation kinds.
const (
	KindRate      = "rate"
	KindGauge     = "gauge"
	KindHistogram = "histogram"
)

// Defaults applied when a field is omitted from the source.
const (
	DefaultWidth    = 12
	DefaultUnit     = "short"
	DefaultRefresh  = "10s"
	DefaultLegend   = "{{label}}"
	DefaultQuantile = Number("0.95")
	// MaxQueriesPerPanel is bounded by the single-letter refIds A..Z.
	MaxQueriesPerPanel = 26
)

// Document is the compact, human-authored dashboard description.
type Document struct {
	DashboardInfo *DashboardInfo `json:"dashboard_info" yaml:"dashboard_info"`
	Datasource    Datasource     `json:"datasource" yaml:"datasource,omitempty"`
	Metrics       []MetricGroup  `json:"metrics" yaml:"metrics"`
}

// DashboardInfo carries dashboard-level metadata echoed into the output.
type DashboardInfo struct {
	Title   string   `json:"title" yaml:"title"`
	UID     string   `json:"uid" yaml:"uid"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Refresh string   `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

// Datasource identifies the metrics datasource the author had in mind.
type Datasource struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	UID  string `json:"uid" yaml:"uid"`
}

// MetricGroup is one dashboard row and the panels under it.
type MetricGroup struct {
	RowTitle    string  `json:"row_title" yaml:"row_title"`
	Panels      []Panel `json:"panels" yaml:"panels"`
	IsCollapsed bool    `json:"is_collapsed,omitempty" yaml:"is_collapsed,omitempty"`
}

// Panel is a single panel declaration.
type Panel struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	MetricNames []string `json:"metric_names,omitempty" yaml:"metric_names,omitempty"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Width       *int     `json:"width,omitempty" yaml:"width,omitempty"`
	PanelType   string   `json:"panel_type,omitempty" yaml:"panel_type,omitempty"`
	Queries     []Query  `json:"queries" yaml:"queries"`
}

// Query is a single query declaration inside a panel.
type Query struct {
	Metric         string `json:"metric" yaml:"metric"`
	Legend         string `json:"legend,omitempty" yaml:"legend,omitempty"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	GroupBy        string `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Quantile       Number `json:"quantile,omitempty" yaml:"quantile,omitempty"`
	ExcludeCluster string `json:"exclude_cluster,omitempty" yaml:"exclude_cluster,omitempty"`
	DefaultValue   Number `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	MaxValue       Number `json:"max_value,omitempty" yaml:"max_value,omitempty"`
}

// RefreshOrDefault returns the declared refresh interval or "10s".
func (d *DashboardInfo) RefreshOrDefault() string {
	if d.Refresh == "" {
		return DefaultRefresh
	}
	return d.Refresh
}

// TagsOrEmpty never returns nil so the output always carries a tags array.
func (d *DashboardInfo) TagsOrEmpty() []string {
	if d.Tags == nil {
		return []string{}
	}
	return d.Tags
}

// WidthOrDefault returns the declared grid width, 12 when omitted.
func (p Panel) WidthOrDefault() int {
	if p.Width == nil {
		return DefaultWidth
	}
	return *p.Width
}

// UnitOrDefault returns the declared unit or "short".
func (p Panel) UnitOrDefault() string {
	if p.Unit == "" {
		return DefaultUnit
	}
	return p.Unit
}

// Kind returns the panel kind, timeseries when omitted.
func (p Panel) Kind() string {
	if p.PanelType == "" {
		return PanelTimeseries
	}
	return p.PanelType
}

// KindOrDefault returns the aggregation kind, rate when omitted.
func (q Query) KindOrDefault() string {
	if q.Type == "" {
		return KindRate
	}
	return q.Type
}

// QuantileOrDefault returns the histogram quantile, 0.95 when omitted.
func (q Query) QuantileOrDefault() Number {
	if !q.Quantile.IsSet() {
		return DefaultQuantile
	}
	return q.Quantile
}

// LegendOrDefault returns the legend template or the generic placeholder.
func (q Query) LegendOrDefault() string {
	if q.Legend == "" {
		return DefaultLegend
	}
	return q.Legend
}
