package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
)

func newData(name, location, value string) *metric.Data {
	d := metric.NewData()
	d.Id = metric.Id{Name: name, Location: location}
	d.Value = value
	return d
}

func TestCacheLatestWins(t *testing.T) {
	c := New()

	var v1 metric.Vector
	v1.Append(newData("temp", "", "1"))
	c.Add(&v1)

	var v2 metric.Vector
	v2.Append(newData("temp", "", "2"))
	c.Add(&v2)

	assert.Equal(t, 1, c.Len())

	var seen string
	c.Visit(func(d *metric.Data) { seen = d.Value })
	assert.Equal(t, "2", seen)
}

func TestCacheDistinctLabelsAreDistinctEntries(t *testing.T) {
	c := New()

	a := newData("temp", "", "1")
	a.Labels.Set("room", "kitchen")
	b := newData("temp", "", "2")
	b.Labels.Set("room", "lounge")

	var v metric.Vector
	v.Append(a)
	v.Append(b)
	c.Add(&v)

	assert.Equal(t, 2, c.Len())
}

func TestCacheVisitOrderGroupsByNameThenLocation(t *testing.T) {
	c := New()
	var v metric.Vector
	v.Append(newData("b_metric", "", "1"))
	v.Append(newData("a_metric", "z", "1"))
	v.Append(newData("a_metric", "a", "1"))
	c.Add(&v)

	var order []string
	c.Visit(func(d *metric.Data) { order = append(order, d.Id.Name+"/"+d.Id.Location) })
	assert.Equal(t, []string{"a_metric/a", "a_metric/z", "b_metric/"}, order)
}

func TestCacheConcurrentReadersDoNotRace(t *testing.T) {
	c := New()
	var v metric.Vector
	v.Append(newData("temp", "", "1"))
	c.Add(&v)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Visit(func(*metric.Data) {})
		}()
	}
	wg.Wait()
}
