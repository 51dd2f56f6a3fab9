package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/cache"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/handler"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metricengine"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

func buildLoop(t *testing.T, filter string, h handler.Handler) (*Loop, *cache.Cache) {
	t.Helper()
	automaton := topic.NewAutomaton[handler.Handler]()
	require.NoError(t, automaton.Add(filter, h))
	c := cache.New()
	return New(automaton.Freeze(), c, nil), c
}

func TestOnMessageEndToEndGauge(t *testing.T) {
	m := metricengine.New(metric.Id{Name: "room_temperature"}, "", metric.TypeGauge, metric.UnitCelsius,
		metric.TimestampOff, "temp help", nil, nil, nil)
	h := handler.NewValue("value-handler", []*metricengine.Metric{m})

	loop, c := buildLoop(t, "home/+/temperature", h)

	loop.OnMessage("home/kitchen/temperature", []byte("21.5"), 1000)

	require.Equal(t, 1, c.Len())
	var got *metric.Data
	c.Visit(func(d *metric.Data) { got = d })
	assert.Equal(t, "room_temperature", got.Id.Name)
	assert.Equal(t, "21.5", got.Value)
}

func TestOnMessageUnmatchedTopicIsIgnored(t *testing.T) {
	m := metricengine.New(metric.Id{Name: "m"}, "", metric.TypeGauge, metric.UnitNone,
		metric.TimestampOff, "", nil, nil, nil)
	h := handler.NewValue("value-handler", []*metricengine.Metric{m})

	loop, c := buildLoop(t, "home/kitchen/temperature", h)
	loop.OnMessage("garage/door", []byte("1"), 0)

	assert.Equal(t, 0, c.Len())
}

func TestOnMessageCacheLatestWinsAcrossCalls(t *testing.T) {
	m := metricengine.New(metric.Id{Name: "m"}, "", metric.TypeGauge, metric.UnitNone,
		metric.TimestampOff, "", nil, nil, nil)
	h := handler.NewValue("value-handler", []*metricengine.Metric{m})

	loop, c := buildLoop(t, "a/b", h)

	loop.OnMessage("a/b", []byte("1"), 0)
	loop.OnMessage("a/b", []byte("2"), 0)

	require.Equal(t, 1, c.Len())
	var got *metric.Data
	c.Visit(func(d *metric.Data) { got = d })
	assert.Equal(t, "2", got.Value)
}

func TestOnMessageTrimsTrailingSeparatorBeforeMatching(t *testing.T) {
	m := metricengine.New(metric.Id{Name: "m"}, "", metric.TypeGauge, metric.UnitNone,
		metric.TimestampOff, "", nil, nil, nil)
	h := handler.NewValue("value-handler", []*metricengine.Metric{m})

	loop, c := buildLoop(t, "a/b", h)
	loop.OnMessage("a/b/", []byte("1"), 0)

	assert.Equal(t, 1, c.Len())
}
