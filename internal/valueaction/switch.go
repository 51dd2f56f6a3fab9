package valueaction

import "github.com/yafiyogi/yy-mqtt-bridge/internal/metric"

// Switch replaces data.Value by mapping[data.Value] when present, or by
// Default otherwise. Applied in configured order alongside any other
// value actions; later actions observe this one's output.
type Switch struct {
	Default string
	Mapping map[string]string
}

const switchName = "switch"

// NewSwitch builds a Switch action.
func NewSwitch(def string, mapping map[string]string) *Switch {
	return &Switch{Default: def, Mapping: mapping}
}

// Apply implements Action.
func (s *Switch) Apply(data *metric.Data, _ metric.ValueType) {
	if mapped, ok := s.Mapping[data.Value]; ok {
		data.Value = mapped
		return
	}
	data.Value = s.Default
}

// Name implements Action.
func (s *Switch) Name() string { return switchName }
