// Package dispatch implements C9: the per-message pipeline tying the topic
// automaton, the configured Handlers it resolves to, and the metric cache
// together. One Loop is built per process and fed every inbound MQTT
// message through OnMessage.
package dispatch

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/cache"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/handler"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Loop resolves each message's topic against the frozen automaton and runs
// every matching handler, collecting their output into the cache.
//
// A Loop is not safe for concurrent use: scratch and vector are reused
// across calls to avoid per-message allocation, so OnMessage must be called
// from a single goroutine (the MQTT client's own callback goroutine
// satisfies this — paho.mqtt.golang never calls a MessageHandler
// concurrently with itself).
type Loop struct {
	automaton *topic.Frozen[handler.Handler]
	cache     *cache.Cache
	log       logging.Logger

	scratch topic.Levels
	vector  metric.Vector
}

// New builds a Loop. automaton must already be frozen (built once at
// configuration time) and cache is the shared store the HTTP scrape
// handler reads from.
func New(automaton *topic.Frozen[handler.Handler], c *cache.Cache, log logging.Logger) *Loop {
	return &Loop{automaton: automaton, cache: c, log: log}
}

// OnMessage is a mqttbroker.MessageFunc: it looks up every handler whose
// subscription filter matches topicStr, runs each against payload, and
// writes the resulting observations into the cache. A topic matching no
// filter is silently ignored, per spec §4.9 / §7.
func (l *Loop) OnMessage(topicStr string, payload []byte, timestampMs int64) {
	trimmed := topic.Trim(topicStr)
	l.scratch = topic.Tokenize(trimmed, l.scratch)
	levels := l.scratch

	matches := l.automaton.Find(levels)
	if len(matches) == 0 {
		return
	}

	l.vector.Clear()
	for _, handlers := range matches {
		for _, h := range handlers {
			l.vector.Reserve(h.MetricCount())
			h.Event(payload, trimmed, levels, timestampMs, &l.vector)
		}
	}

	l.cache.Add(&l.vector)
}
