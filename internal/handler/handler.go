// Package handler implements C7: per-message payload interpreters bound to
// one or more MQTT subscriptions via the topic automaton. Three variants
// share the Handler interface — Text (no-op), Value (the whole payload is
// the value), and Json (driven by the streaming pointer-trie engine).
package handler

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Handler is implemented by every payload interpreter.
type Handler interface {
	// Id is the handler's unique configuration identifier.
	Id() string
	// Event interprets raw against topicStr/levels observed at timestamp
	// (milliseconds since epoch) and appends any resulting metric.Data to
	// out.
	Event(raw []byte, topicStr string, levels topic.Levels, timestamp int64, out *metric.Vector)
	// MetricCount is an upper bound on how many metric.Data a single
	// Event call can append, used by the dispatch loop to pre-size out.
	MetricCount() int
}

// List is a shared, immutable, reference-counted-by-the-topic-automaton
// list of Handlers — the same slice may be reachable from several topic
// filters, since subscriptions name handlers by id rather than owning them.
type List []Handler
