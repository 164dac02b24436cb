// Package promql turns query declarations into PromQL expressions.
//
// The ${service}, ${project} and $client tokens are Grafana template
// variables. They are emitted verbatim and resolved by Grafana at view time.
package promql

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/dashgen/internal/errors"
	"github.com/rileyhilliard/dashgen/internal/source"
	"github.com/rileyhilliard/dashgen/internal/util"
)

// Kinds lists the supported aggregation kinds.
var Kinds = []string{source.KindRate, source.KindGauge, source.KindHistogram}

// Placeholders and label filters shared by every generated query.
const (
	MetricPrefix      = "${service}_${project}_"
	ClientFilter      = `client_name=~"$client"`
	AdminPrefixFilter = `envoy_http_conn_manager_prefix!="admin"`
	RateWindow        = "1m"
)

// Build returns the PromQL expression for q.
func Build(q source.Query) (string, error) {
	pattern := MetricPrefix + q.Metric
	filters := strings.Join(Filters(q), ", ")

	var expr string
	switch kind := q.KindOrDefault(); kind {
	case source.KindHistogram:
		quantile := q.QuantileOrDefault()
		if q.GroupBy != "" {
			expr = fmt.Sprintf(`histogram_quantile(%s, sum by (le, %s)(rate({__name__=~"%s", %s}[%s])))`,
				quantile, q.GroupBy, pattern, filters, RateWindow)
		} else {
			expr = fmt.Sprintf(`histogram_quantile(%s, sum(rate({__name__=~"%s", %s}[%s])) by (le))`,
				quantile, pattern, filters, RateWindow)
		}

	case source.KindRate:
		if q.GroupBy != "" {
			expr = fmt.Sprintf(`sum by (%s)(rate({__name__=~"%s", %s}[%s]))`, q.GroupBy, pattern, filters, RateWindow)
		} else {
			expr = fmt.Sprintf(`sum(rate({__name__=~"%s", %s}[%s]))`, pattern, filters, RateWindow)
		}

	case source.KindGauge:
		// Gauges match the metric name exactly rather than by regex.
		if q.GroupBy != "" {
			expr = fmt.Sprintf(`sum by (%s)({__name__="%s", %s})`, q.GroupBy, pattern, filters)
		} else {
			expr = fmt.Sprintf(`sum({__name__="%s", %s})`, pattern, filters)
		}

	default:
		return "", errors.New(errors.ErrUnsupportedQueryKind,
			fmt.Sprintf("Unknown query type %q for metric %s", kind, q.Metric),
			util.DidYouMean(kind, Kinds))
	}

	if q.MaxValue.IsSet() {
		expr = fmt.Sprintf(`((%s) < %s) * (%s)`, expr, q.MaxValue, expr)
	}

	if q.DefaultValue.IsSet() {
		expr = fmt.Sprintf(`(%s) or vector(%s)`, expr, q.DefaultValue)
	}

	return expr, nil
}

// Filters returns the label matchers for q in the order they appear in the
// selector.
func Filters(q source.Query) []string {
	var filters []string

	if strings.Contains(q.Metric, "downstream") {
		filters = append(filters, AdminPrefixFilter)
	}
	if q.ExcludeCluster != "" {
		filters = append(filters, fmt.Sprintf(`envoy_cluster_name!="%s"`, q.ExcludeCluster))
	}

	return append(filters, ClientFilter)
}
