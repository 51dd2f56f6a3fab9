// Package valueaction implements the value-side transformations (keep,
// switch) applied, in configured order, to an observation's textual value
// after label actions have run.
package valueaction

import "github.com/yafiyogi/yy-mqtt-bridge/internal/metric"

// Action transforms a Data's Value in place, given the observed ValueType.
type Action interface {
	Apply(data *metric.Data, observed metric.ValueType)
	Name() string
}

// List runs a configured, ordered sequence of Actions; later actions see
// earlier outputs.
type List []Action

// Apply runs every action against data in configured order.
func (l List) Apply(data *metric.Data, observed metric.ValueType) {
	for _, a := range l {
		a.Apply(data, observed)
	}
}
