package handler

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Text is a pass-through handler: it emits nothing. It exists so
// configuration can declare a handler for a subscription that carries no
// metrics without that being an error.
type Text struct {
	id string
}

// NewText builds a Text handler with the given configuration id.
func NewText(id string) *Text {
	return &Text{id: id}
}

// Id implements Handler.
func (t *Text) Id() string { return t.id }

// Event implements Handler; it is a no-op.
func (t *Text) Event(_ []byte, _ string, _ topic.Levels, _ int64, _ *metric.Vector) {}

// MetricCount implements Handler.
func (t *Text) MetricCount() int { return 0 }
