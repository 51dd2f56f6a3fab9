package config

import (
	"fmt"
	"strings"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/handler"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/jsonptr"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/labelaction"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/logging"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/metricengine"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/mqttbroker"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/replace"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/render"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
	"github.com/yafiyogi/yy-mqtt-bridge/internal/valueaction"
)

// Built is the fully-compiled, run-time-ready result of Build: every
// automaton frozen, every handler and metric constructed, ready to wire
// into mqttbroker/dispatch/httpserver.
type Built struct {
	Mqtt          mqttbroker.Config
	Subscriptions []string
	Automaton     *topic.Frozen[handler.Handler]
	RenderStyle   render.Style
	HTTPPort      int
	HTTPURI       string
	Logging       logging.Config
	AccessLog     logging.Config
}

// Build compiles a loaded File into Built, logging and skipping
// individually invalid entries per spec §7 rather than failing the whole
// process — the two fatal cases (missing mqtt/prometheus root) are
// already rejected by Load.
func Build(file *File, log logging.Logger) (*Built, error) {
	warn := func(format string, args ...any) {
		if log != nil {
			log.Warnf(format, args...)
		}
	}

	metricsByHandler := indexMetricsByHandler(file.Prometheus.Metrics, warn)

	handlersById, err := buildHandlers(file.Mqtt.Handlers, metricsByHandler, log, warn)
	if err != nil {
		return nil, err
	}

	automaton, subscriptions := buildTopicAutomaton(file.Mqtt.Topics, handlersById, warn)

	return &Built{
		Mqtt: mqttbroker.Config{
			Host:     file.Mqtt.Host,
			Port:     file.Mqtt.Port,
			ClientId: file.Mqtt.ClientId,
		},
		Subscriptions: subscriptions,
		Automaton:     automaton,
		RenderStyle:   render.ParseStyle(file.Prometheus.MetricStyle),
		HTTPPort:      file.Prometheus.ExporterPort,
		HTTPURI:       file.Prometheus.ExporterURI,
		Logging:       logging.Config{Filename: file.MqttBridge.Logging.Filename, Level: file.MqttBridge.Logging.Level},
		AccessLog:     logging.Config{Filename: file.Prometheus.AccessLog.Filename, Level: file.Prometheus.AccessLog.Level},
	}, nil
}

// boundMetric is one prometheus.metrics[].handlers[] binding resolved
// against its owning MetricConfig, ready to become a *metricengine.Metric
// once its handler's type is known (Json bindings additionally need the
// property's JSON pointer).
type boundMetric struct {
	mc  MetricConfig
	mhc MetricHandlerConfig
}

// indexMetricsByHandler groups every metric/handler binding by
// handler_id, skipping (with a warning) any binding missing `property`
// per spec §3's invariant.
func indexMetricsByHandler(metrics []MetricConfig, warn func(string, ...any)) map[string][]boundMetric {
	byHandler := make(map[string][]boundMetric)
	for _, mc := range metrics {
		if strings.TrimSpace(mc.Metric) == "" {
			warn("config: metric entry missing \"metric\" name, skipping")
			continue
		}
		for _, mhc := range mc.Handlers {
			if strings.TrimSpace(mhc.Property) == "" {
				warn("config: metric %q handler %q missing \"property\", skipping", mc.Metric, mhc.HandlerId)
				continue
			}
			byHandler[mhc.HandlerId] = append(byHandler[mhc.HandlerId], boundMetric{mc: mc, mhc: mhc})
		}
	}
	return byHandler
}

// buildHandlers constructs one handler.Handler per mqtt.handlers[] entry,
// dropping duplicate ids with a warning (spec §3's uniqueness invariant).
func buildHandlers(cfgs []MqttHandlerConfig, metricsByHandler map[string][]boundMetric, log logging.Logger, warn func(string, ...any)) (map[string]handler.Handler, error) {
	byId := make(map[string]handler.Handler, len(cfgs))

	for _, hc := range cfgs {
		if _, dup := byId[hc.Id]; dup {
			warn("config: duplicate handler id %q, skipping", hc.Id)
			continue
		}

		bound := metricsByHandler[hc.Id]

		switch hc.Type {
		case "text":
			byId[hc.Id] = handler.NewText(hc.Id)

		case "value":
			metrics := make([]*metricengine.Metric, 0, len(bound))
			for _, b := range bound {
				metrics = append(metrics, buildMetric(b.mc, b.mhc, warn))
			}
			byId[hc.Id] = handler.NewValue(hc.Id, metrics)

		case "json":
			h, err := buildJsonHandler(hc, bound, log, warn)
			if err != nil {
				return nil, err
			}
			byId[hc.Id] = h

		default:
			warn("config: handler %q has unknown type %q, defaulting to text", hc.Id, hc.Type)
			byId[hc.Id] = handler.NewText(hc.Id)
		}
	}

	return byId, nil
}

// buildJsonHandler compiles one mqtt.handlers[] entry of type "json": its
// declared properties[] become a JSON-Pointer trie, and every metric
// binding naming one of those property ids is attached at that pointer.
func buildJsonHandler(hc MqttHandlerConfig, bound []boundMetric, log logging.Logger, warn func(string, ...any)) (*handler.Json, error) {
	metricsByProperty := make(map[string][]*metricengine.Metric, len(bound))
	for _, b := range bound {
		metricsByProperty[b.mhc.Property] = append(metricsByProperty[b.mhc.Property], buildMetric(b.mc, b.mhc, warn))
	}

	trie := jsonptr.NewTrie[[]*metricengine.Metric]()
	metricCount := 0
	for _, pc := range hc.Properties {
		metrics := metricsByProperty[pc.Id]
		if len(metrics) == 0 {
			continue
		}
		if err := trie.Add(pc.Json, metrics); err != nil {
			warn("config: handler %q property %q has invalid JSON pointer %q: %v, skipping", hc.Id, pc.Id, pc.Json, err)
			continue
		}
		metricCount += len(metrics)
	}

	return handler.NewJson(hc.Id, trie.Freeze(), metricCount, log), nil
}

// buildMetric constructs one *metricengine.Metric from a metric/handler
// binding. mtype/unit default to Gauge/None with a warning on an
// unrecognized name, per spec §7's "unknown type defaults" rule.
func buildMetric(mc MetricConfig, mhc MetricHandlerConfig, warn func(string, ...any)) *metricengine.Metric {
	mtype, ok := metric.ParseType(mc.Type)
	if !ok {
		warn("config: metric %q has unknown type %q, defaulting to gauge", mc.Metric, mc.Type)
	}
	unit, ok := metric.ParseUnit(mc.Unit)
	if !ok {
		warn("config: metric %q has unknown unit %q, defaulting to none", mc.Metric, mc.Unit)
	}
	ts := metric.ParseTimestamp(mhc.Timestamp, metric.TimestampOn)

	id := metric.Id{Name: strings.TrimSpace(mc.Metric)}
	help := buildHelp(mc)

	labelActions := buildLabelActions(mhc.LabelActions, warn)
	valueActions := buildValueActions(mhc.ValueActions, warn)
	propertyActions := buildLabelActions(mhc.PropertyActions, warn)

	return metricengine.New(id, mhc.Property, mtype, unit, ts, help, labelActions, valueActions, propertyActions)
}

// buildHelp returns mc.Help if set, otherwise an auto-generated HELP
// string in the teacher's metricHelp() register ("new mqttexporter:
// Name: '<name>'"), adapted to this bridge's identity.
func buildHelp(mc MetricConfig) string {
	if strings.TrimSpace(mc.Help) != "" {
		return mc.Help
	}
	return fmt.Sprintf("mqtt_bridge metric %s", mc.Metric)
}

// buildLabelActions compiles one label_actions[] (or property_actions[])
// list in configured order. An unrecognized action name defaults to Keep
// with a warning (spec §7).
func buildLabelActions(cfgs []ActionConfig, warn func(string, ...any)) labelaction.List {
	actions := make(labelaction.List, 0, len(cfgs))
	for _, ac := range cfgs {
		switch ac.Action {
		case "copy":
			actions = append(actions, labelaction.NewCopy(ac.Source, ac.Target))
		case "drop":
			actions = append(actions, labelaction.NewDrop(ac.Target))
		case "keep":
			actions = append(actions, labelaction.NewKeep(ac.Target))
		case "replace-path":
			actions = append(actions, buildReplacePath(ac, warn))
		default:
			warn("config: unknown label action %q, defaulting to keep", ac.Action)
			actions = append(actions, labelaction.NewKeep(ac.Target))
		}
	}
	return actions
}

// buildReplacePath compiles one replace-path action's embedded topic
// automaton from its replace[] entries, each pairing a topic filter with
// a replacement format (see types.go's ReplaceEntry doc for the
// resolution of the Open Question this schema answers).
func buildReplacePath(ac ActionConfig, warn func(string, ...any)) *labelaction.ReplacePath {
	automaton := topic.NewAutomaton[[]*replace.Format]()
	for _, entry := range ac.Replace {
		format := replace.Compile(entry.Format, func(msg string) { warn("%s", msg) })
		if err := automaton.Add(entry.Topic, []*replace.Format{format}); err != nil {
			warn("config: replace-path target %q has invalid filter %q: %v, skipping", ac.Target, entry.Topic, err)
		}
	}
	return labelaction.NewReplacePath(ac.Target, automaton.Freeze())
}

// buildValueActions compiles one value_actions[] list in configured
// order. An unrecognized action name defaults to Keep with a warning.
func buildValueActions(cfgs []ActionConfig, warn func(string, ...any)) valueaction.List {
	actions := make(valueaction.List, 0, len(cfgs))
	for _, ac := range cfgs {
		switch ac.Action {
		case "switch":
			actions = append(actions, valueaction.NewSwitch(ac.Default, ac.Mappings))
		case "keep":
			// Keep is the identity; it is collapsed out of the stored list.
		default:
			warn("config: unknown value action %q, defaulting to keep", ac.Action)
		}
	}
	return actions
}

// buildTopicAutomaton compiles mqtt.topics[] into a frozen automaton
// mapping each subscription filter to the handler.Handler list bound to
// it, plus the flat, deduplicated subscription list the broker needs to
// hand paho on CONNACK. An invalid filter or a reference to an unknown
// handler id is skipped with a warning.
func buildTopicAutomaton(topics []TopicConfig, handlersById map[string]handler.Handler, warn func(string, ...any)) (*topic.Frozen[handler.Handler], []string) {
	automaton := topic.NewAutomaton[handler.Handler]()
	seen := make(map[string]bool)
	var subscriptions []string

	for _, tc := range topics {
		handlers := make([]handler.Handler, 0, len(tc.Handlers))
		for _, id := range tc.Handlers {
			h, ok := handlersById[id]
			if !ok {
				warn("config: topic entry references unknown handler id %q, skipping", id)
				continue
			}
			handlers = append(handlers, h)
		}

		for _, sub := range tc.Subscriptions {
			if err := topic.ValidateFilter(sub); err != nil {
				warn("config: invalid subscription filter %q: %v, skipping", sub, err)
				continue
			}
			for _, h := range handlers {
				if err := automaton.Add(sub, h); err != nil {
					warn("config: invalid subscription filter %q: %v, skipping", sub, err)
					continue
				}
			}
			if !seen[sub] {
				seen[sub] = true
				subscriptions = append(subscriptions, sub)
			}
		}
	}

	return automaton.Freeze(), subscriptions
}
