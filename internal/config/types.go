// Package config loads mqtt_bridge.yaml (§6) with viper, applies the
// scalar defaults via mcuadros/go-defaults, and compiles the resulting
// structures into the frozen, run-time-ready form the rest of the bridge
// consumes: a topic automaton of handler lists, the handlers themselves,
// and their bound metrics.
package config

// File is the root of the configuration document.
type File struct {
	MqttBridge MqttBridgeSection `mapstructure:"mqtt_bridge"`
	Prometheus PrometheusSection `mapstructure:"prometheus"`
	Mqtt       MqttSection       `mapstructure:"mqtt"`
}

// MqttBridgeSection is mqtt_bridge.* — bridge-wide ambient settings.
type MqttBridgeSection struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig mirrors logging.Config's shape for the unmarshal step;
// Build converts it into logging.Config so this package does not
// need to import logging's logrus-flavored type directly into the
// document schema.
type LoggingConfig struct {
	Filename string `mapstructure:"filename"`
	Level    string `mapstructure:"level" default:"info"`
}

// PrometheusSection is prometheus.* — the scrape server and the metrics it
// exposes.
type PrometheusSection struct {
	ExporterPort int            `mapstructure:"exporter_port" default:"9100"`
	ExporterURI  string         `mapstructure:"exporter_uri" default:"/metrics"`
	MetricStyle  string         `mapstructure:"metric_style" default:"prometheus"`
	Timestamps   string         `mapstructure:"timestamps" default:"on"`
	AccessLog    LoggingConfig  `mapstructure:"access_log"`
	Metrics      []MetricConfig `mapstructure:"metrics"`
}

// MetricConfig is one prometheus.metrics[] entry: a metric identity bound
// to one or more handlers.
type MetricConfig struct {
	Metric string `mapstructure:"metric"`
	Type   string `mapstructure:"type" default:"gauge"`
	Unit   string `mapstructure:"unit"`
	// Help overrides the auto-generated HELP text (see buildHelp in
	// build.go, grounded on the teacher's metricHelp()). Optional.
	Help     string                `mapstructure:"help"`
	Handlers []MetricHandlerConfig `mapstructure:"handlers"`
}

// MetricHandlerConfig is one prometheus.metrics[].handlers[] entry: the
// binding between a metric identity and a specific mqtt.handlers[] id,
// plus the property/label/value transformation it applies.
type MetricHandlerConfig struct {
	HandlerId string `mapstructure:"handler_id"`
	Property  string `mapstructure:"property"`
	Timestamp string `mapstructure:"timestamp" default:"on"`
	// PropertyActions derive the `location` label from the topic path
	// (spec §4.6's property_actions) before LabelActions run. The
	// original's configure_property_actions reads its own dedicated YAML
	// key, not preserved in the retrieved source; this bridge exposes
	// that key as `property_actions[]` using the same action schema as
	// LabelActions (see DESIGN.md).
	PropertyActions []ActionConfig `mapstructure:"property_actions"`
	LabelActions    []ActionConfig `mapstructure:"label_actions"`
	ValueActions    []ActionConfig `mapstructure:"value_actions"`
}

// ActionConfig is one label_actions[] or value_actions[] entry. Its fields
// are a union of everything any action variant needs; unused fields for a
// given `action` are simply left zero. This mirrors the teacher's own
// `jsonData` catch-all unmarshal-then-dispatch-on-a-string-field approach,
// adapted from JSON to viper/mapstructure.
type ActionConfig struct {
	Action   string            `mapstructure:"action" default:"keep"`
	Source   string            `mapstructure:"source"`
	Target   string            `mapstructure:"target"`
	Replace  []ReplaceEntry    `mapstructure:"replace"`
	Default  string            `mapstructure:"default"`
	Mappings map[string]string `mapstructure:"mappings"`
}

// ReplaceEntry binds one replace-path format to the topic filter it
// applies under — the Open Question on ReplacePath's embedded automaton
// is resolved by keying each format by an explicit filter alongside it
// (see DESIGN.md).
type ReplaceEntry struct {
	Topic  string `mapstructure:"topic"`
	Format string `mapstructure:"format"`
}

// MqttSection is mqtt.* — the broker connection, handler definitions, and
// topic/subscription bindings.
type MqttSection struct {
	Host     string              `mapstructure:"host"`
	Port     int                 `mapstructure:"port" default:"1883"`
	ClientId string              `mapstructure:"client_id" default:"mqtt_bridge"`
	Handlers []MqttHandlerConfig `mapstructure:"handlers"`
	Topics   []TopicConfig       `mapstructure:"topics"`
}

// MqttHandlerConfig is one mqtt.handlers[] entry.
type MqttHandlerConfig struct {
	Id         string           `mapstructure:"id"`
	Type       string           `mapstructure:"type" default:"text"`
	Properties []PropertyConfig `mapstructure:"properties"`
}

// PropertyConfig is one mqtt.handlers[].properties[] entry: a JSON Pointer
// registered against a Json handler, named so prometheus.metrics[] can
// bind a metric to it via MetricHandlerConfig.Property.
type PropertyConfig struct {
	Id   string `mapstructure:"id"`
	Json string `mapstructure:"json"`
}

// TopicConfig is one mqtt.topics[] entry: a set of subscription filters,
// each dispatching to the named handlers.
type TopicConfig struct {
	Handlers      []string `mapstructure:"handlers"`
	Subscriptions []string `mapstructure:"subscriptions"`
}
