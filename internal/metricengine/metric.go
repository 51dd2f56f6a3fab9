// Package metricengine implements C6: a configured Metric combines an
// identity, a JSON property name, and the ordered label/value/property
// action lists, and turns one observed scalar into one metric.Data ready
// for the cache.
package metricengine

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/labelaction"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/valueaction"
)

// Metric is built once at configuration time and then reused, unchanged,
// across every observation it produces; its scratch buffers (data,
// propertyLabels) are mutated per Event call but never leave that call
// exposed by reference.
type Metric struct {
	Id              metric.Id
	Property        string
	MetricType      metric.Type
	MetricUnit      metric.Unit
	Timestamp       metric.Timestamp
	Help            string
	LabelActions    labelaction.List
	ValueActions    valueaction.List
	PropertyActions labelaction.List

	data           *metric.Data
	propertyLabels *metric.Labels
	metricFormat   string
}

// New builds a Metric. metricFormat is the precomputed exposition-format
// tag threaded onto every metric.Data this Metric emits (see
// metric.Data.MetricFormat / SPEC_FULL.md supplemented feature 3).
func New(id metric.Id, property string, mtype metric.Type, unit metric.Unit, ts metric.Timestamp, help string, labelActions labelaction.List, valueActions valueaction.List, propertyActions labelaction.List) *Metric {
	return &Metric{
		Id:              id,
		Property:        property,
		MetricType:      mtype,
		MetricUnit:      unit,
		Timestamp:       ts,
		Help:            help,
		LabelActions:    labelActions,
		ValueActions:    valueActions,
		PropertyActions: propertyActions,
		data:            metric.NewData(),
		propertyLabels:  metric.NewLabels(),
		metricFormat:    formatTag(mtype, ts),
	}
}

func formatTag(mtype metric.Type, ts metric.Timestamp) string {
	suffix := ""
	if ts == metric.TimestampOn {
		suffix = "+ts"
	}
	return mtype.String() + suffix
}

// Event runs the full C6 algorithm described in spec §4.6 and appends the
// resulting metric.Data onto out.
func (m *Metric) Event(value string, topicStr string, levels topic.Levels, timestamp int64, observed metric.ValueType, out *metric.Vector) {
	m.data.Reset()
	m.data.Id = m.Id
	m.data.MetricType = m.MetricType
	m.data.MetricUnit = m.MetricUnit
	m.data.MetricFormat = m.metricFormat
	m.data.Value = value
	m.data.Help = m.Help
	m.data.ObservedValueType = observed
	m.data.Timestamp = timestamp
	m.data.TimestampPolicy = m.Timestamp

	m.propertyLabels.Clear()
	m.propertyLabels.Set(metric.LabelTopic, topicStr)
	m.PropertyActions.Apply(m.propertyLabels, levels, m.propertyLabels)

	if loc, ok := m.propertyLabels.Get(metric.LabelLocation); ok {
		m.data.Id.Location = loc
	}

	m.data.Labels.Clear()
	m.data.Labels.Set(metric.LabelLocation, m.data.Id.Location)
	m.data.Labels.Set(metric.LabelTopic, topicStr)
	m.LabelActions.Apply(m.propertyLabels, levels, m.data.Labels)

	m.ValueActions.Apply(m.data, observed)

	out.Append(m.data.Clone())
}
