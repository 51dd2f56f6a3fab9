package labelaction

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Copy sets output[target] to input[source] iff source is present in
// input. A missing source is a silent no-op (§7 "label lookup miss").
type Copy struct {
	Source string
	Target string
}

const copyName = "copy"

// NewCopy builds a Copy action.
func NewCopy(source, target string) *Copy {
	return &Copy{Source: source, Target: target}
}

// Apply implements Action.
func (c *Copy) Apply(input *metric.Labels, _ topic.Levels, output *metric.Labels) {
	if v, ok := input.Get(c.Source); ok {
		output.Set(c.Target, v)
	}
}

// Name implements Action.
func (c *Copy) Name() string { return copyName }
