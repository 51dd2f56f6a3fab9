package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/render"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mqtt_bridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

const minimalYAML = `
mqtt:
  host: localhost
  port: 1883
  client_id: bridge
  handlers:
    - id: h1
      type: value
  topics:
    - handlers: [h1]
      subscriptions: ["home/+/temperature"]
prometheus:
  exporter_port: 9100
  exporter_uri: /metrics
  metrics:
    - metric: room_temperature
      type: gauge
      handlers:
        - handler_id: h1
          property: /value
`

func TestLoadMissingMqttSectionIsRejected(t *testing.T) {
	path := writeConfig(t, "prometheus:\n  exporter_port: 9100\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, errMissingMqttSection)
}

func TestLoadMissingPrometheusSectionIsRejected(t *testing.T) {
	path := writeConfig(t, "mqtt:\n  host: localhost\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, errMissingPrometheusSection)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	file, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", file.MqttBridge.Logging.Level)
	assert.Equal(t, "on", file.Prometheus.Timestamps)
	assert.Equal(t, "prometheus", file.Prometheus.MetricStyle)
	assert.Equal(t, "on", file.Prometheus.Metrics[0].Handlers[0].Timestamp)
}

func TestLoadNonexistentFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildCompilesHandlersAutomatonAndSubscriptions(t *testing.T) {
	path := writeConfig(t, minimalYAML)
	file, err := Load(path)
	require.NoError(t, err)

	built, err := Build(file, nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost", built.Mqtt.Host)
	assert.Equal(t, 1883, built.Mqtt.Port)
	assert.Equal(t, []string{"home/+/temperature"}, built.Subscriptions)
	assert.Equal(t, 9100, built.HTTPPort)
	assert.Equal(t, "/metrics", built.HTTPURI)
	assert.Equal(t, render.StylePrometheus, built.RenderStyle)

	levels := topic.Tokenize("home/kitchen/temperature", nil)
	matches := built.Automaton.Find(levels)
	require.Len(t, matches, 1)
	require.Len(t, matches[0], 1)

	var out metric.Vector
	matches[0][0].Event([]byte("21.5"), "home/kitchen/temperature", levels, 0, &out)
	require.Len(t, out.Items(), 1)
	assert.Equal(t, "room_temperature", out.Items()[0].Id.Name)
	assert.Equal(t, "21.5", out.Items()[0].Value)
}

func TestBuildSkipsMetricMissingProperty(t *testing.T) {
	yaml := `
mqtt:
  handlers:
    - id: h1
      type: value
  topics:
    - handlers: [h1]
      subscriptions: ["a/b"]
prometheus:
  exporter_port: 9100
  metrics:
    - metric: m
      handlers:
        - handler_id: h1
`
	path := writeConfig(t, yaml)
	file, err := Load(path)
	require.NoError(t, err)

	built, err := Build(file, nil)
	require.NoError(t, err)

	levels := topic.Tokenize("a/b", nil)
	matches := built.Automaton.Find(levels)
	require.Len(t, matches, 1)

	var out metric.Vector
	matches[0][0].Event([]byte("1"), "a/b", levels, 0, &out)
	assert.Empty(t, out.Items())
}

func TestBuildDefaultsUnknownHandlerTypeToText(t *testing.T) {
	yaml := `
mqtt:
  handlers:
    - id: h1
      type: bogus
  topics:
    - handlers: [h1]
      subscriptions: ["a/b"]
prometheus:
  exporter_port: 9100
`
	path := writeConfig(t, yaml)
	file, err := Load(path)
	require.NoError(t, err)

	built, err := Build(file, nil)
	require.NoError(t, err)

	levels := topic.Tokenize("a/b", nil)
	matches := built.Automaton.Find(levels)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0][0].MetricCount())
}

func TestBuildHelpFallsBackToAutoGenerated(t *testing.T) {
	mc := MetricConfig{Metric: "room_temperature"}
	assert.Equal(t, "mqtt_bridge metric room_temperature", buildHelp(mc))

	mc.Help = "custom help"
	assert.Equal(t, "custom help", buildHelp(mc))
}
