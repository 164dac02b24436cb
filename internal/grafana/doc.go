// Package grafana expands a source document into a Grafana dashboard.
//
// Build walks the metric groups in order. Each group becomes a row header at
// the current vertical offset, followed by its panels laid out left to right
// on a 24-column grid. A panel that does not fit on the current line wraps to
// the next one. Panel ids start at 1 and row ids at 100, so the two never
// collide.
//
// Collapsed rows hold their panels in Row.Panels instead of the top-level
// list, but the vertical offset advances exactly as if they were expanded.
//
// Everything is built in memory. Encode and WriteFile only run once the
// whole dashboard exists, so an invalid query never produces a partial file.
package grafana
