package labelaction

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Keep ensures output[Target] equals input[Target] when input has it; it is
// a no-op otherwise, and a no-op when input and output alias (since they
// are then already equal by construction).
type Keep struct {
	Target string
}

const keepName = "keep"

// NewKeep builds a Keep action.
func NewKeep(name string) *Keep {
	return &Keep{Target: name}
}

// Apply implements Action.
func (k *Keep) Apply(input *metric.Labels, _ topic.Levels, output *metric.Labels) {
	if v, ok := input.Get(k.Target); ok {
		output.Set(k.Target, v)
	}
}

// Name implements Action.
func (k *Keep) Name() string { return keepName }
