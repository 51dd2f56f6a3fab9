package valueaction

import "github.com/yafiyogi/yy-mqtt-bridge/internal/metric"

// Keep is the identity value action. Configuration collapses it out of a
// Metric's value_actions list entirely (spec §4.4), so this type exists
// only so the config layer has something concrete to construct before
// discarding it, and so tests can exercise the identity case directly.
type Keep struct{}

const keepName = "keep"

// NewKeep builds a Keep action.
func NewKeep() *Keep { return &Keep{} }

// Apply implements Action; it does nothing.
func (k *Keep) Apply(_ *metric.Data, _ metric.ValueType) {}

// Name implements Action.
func (k *Keep) Name() string { return keepName }
