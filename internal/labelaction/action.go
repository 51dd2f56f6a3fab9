// Package labelaction implements the four label transformations (copy,
// drop, keep, replace-path) that a Metric applies, in configured order,
// to derive a MetricData's output labels from the per-event property
// labels and the concrete topic's levels.
package labelaction

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Action is implemented by every label transformation. input and output
// are permitted to alias the same Labels; Keep is then a no-op and Copy
// reads before it writes, matching spec §4.3.
type Action interface {
	Apply(input *metric.Labels, levels topic.Levels, output *metric.Labels)
	Name() string
}

// List runs a configured, ordered sequence of Actions.
type List []Action

// Apply runs every action in configured order against the same
// (input, levels, output) triple.
func (l List) Apply(input *metric.Labels, levels topic.Levels, output *metric.Labels) {
	for _, a := range l {
		a.Apply(input, levels, output)
	}
}
