// Package render implements C10: turning the metric cache's contents into
// Prometheus or OpenMetrics exposition text on each scrape.
package render

import "strings"

// Style selects the exposition text variant. It is resolved once at
// process start from prometheus.metric_style and threaded explicitly into
// the Renderer rather than held as package state, so tests can exercise
// both styles side by side (spec §4.10 design note on "global metric
// style").
type Style int

const (
	StylePrometheus Style = iota
	StyleOpenMetric
)

// ParseStyle recognizes the teacher's original spelling variants for the
// OpenMetrics style (prometheus_style.cpp), defaulting to StylePrometheus
// for anything unrecognized.
func ParseStyle(name string) Style {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openmetric", "open metric", "open-metric", "open_metric":
		return StyleOpenMetric
	default:
		return StylePrometheus
	}
}
