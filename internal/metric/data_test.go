package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataResetPreservesLabelsCapacity(t *testing.T) {
	d := NewData()
	d.Labels.Set("a", "1")
	d.Value = "42"
	cap1 := cap(d.Labels.names)

	d.Reset()

	assert.Equal(t, "", d.Value)
	assert.Equal(t, TypeGauge, d.MetricType)
	assert.Equal(t, 0, d.Labels.Len())
	assert.Equal(t, cap1, cap(d.Labels.names))
}

func TestDataCloneIsIndependent(t *testing.T) {
	d := NewData()
	d.Labels.Set("a", "1")
	d.Value = "1"

	clone := d.Clone()
	d.Labels.Set("a", "2")
	d.Value = "2"

	v, _ := clone.Labels.Get("a")
	assert.Equal(t, "1", v)
	assert.Equal(t, "1", clone.Value)
}

func TestVectorReserveAndClear(t *testing.T) {
	var v Vector
	v.Reserve(4)
	v.Append(NewData())
	v.Append(NewData())
	assert.Len(t, v.Items(), 2)

	capBefore := cap(v.items)
	v.Clear()
	assert.Empty(t, v.Items())
	assert.Equal(t, capBefore, cap(v.items))
}
