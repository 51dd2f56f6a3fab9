package labelaction

import (
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

// Drop removes Target from the output map. It never consults the input map:
// per the spec's resolved Open Question, Drop scrubs the output only and
// never retroactively affects a later Copy's read source.
type Drop struct {
	Target string
}

const dropName = "drop"

// NewDrop builds a Drop action.
func NewDrop(target string) *Drop {
	return &Drop{Target: target}
}

// Apply implements Action.
func (d *Drop) Apply(_ *metric.Labels, _ topic.Levels, output *metric.Labels) {
	output.Delete(d.Target)
}

// Name implements Action.
func (d *Drop) Name() string { return dropName }
