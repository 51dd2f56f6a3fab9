package handler

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/jsonptr"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metricengine"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Json drives the streaming pointer-trie engine over each message's raw
// payload; the payload at each configured pointer is the list of Metrics
// registered against that property.
type Json struct {
	id          string
	engine      *jsonptr.Engine[[]*metricengine.Metric]
	metricCount int
	log         logging.Logger
}

// NewJson builds a Json handler from an already-frozen pointer trie.
func NewJson(id string, trie *jsonptr.Frozen[[]*metricengine.Metric], metricCount int, log logging.Logger) *Json {
	return &Json{id: id, engine: jsonptr.NewEngine(trie), metricCount: metricCount, log: log}
}

// Id implements Handler.
func (j *Json) Id() string { return j.id }

// Event implements Handler. A malformed payload aborts this message only
// (spec §4.5/§7): the error is logged at debug level and no metrics are
// emitted for it, leaving every other handler and the next message
// unaffected.
func (j *Json) Event(raw []byte, topicStr string, levels topic.Levels, timestamp int64, out *metric.Vector) {
	var pending metric.Vector
	err := j.engine.Run(raw, func(metrics []*metricengine.Metric, value string, vtype metric.ValueType) {
		for _, m := range metrics {
			m.Event(value, topicStr, levels, timestamp, vtype, &pending)
		}
	})
	if err != nil {
		if j.log != nil {
			j.log.Debugf("handler %s: malformed JSON payload on topic %s: %v", j.id, topicStr, err)
		}
		return
	}
	for _, d := range pending.Items() {
		out.Append(d)
	}
}

// MetricCount implements Handler.
func (j *Json) MetricCount() int { return j.metricCount }
