package handler

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metricengine"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Value treats the entire raw payload as the observation's value, with an
// unknown observed value type — it does no parsing of its own.
type Value struct {
	id      string
	metrics []*metricengine.Metric
}

// NewValue builds a Value handler bound to the given metrics.
func NewValue(id string, metrics []*metricengine.Metric) *Value {
	return &Value{id: id, metrics: metrics}
}

// Id implements Handler.
func (v *Value) Id() string { return v.id }

// Event implements Handler.
func (v *Value) Event(raw []byte, topicStr string, levels topic.Levels, timestamp int64, out *metric.Vector) {
	value := string(raw)
	for _, m := range v.metrics {
		m.Event(value, topicStr, levels, timestamp, metric.ValueUnknown, out)
	}
}

// MetricCount implements Handler.
func (v *Value) MetricCount() int { return len(v.metrics) }
