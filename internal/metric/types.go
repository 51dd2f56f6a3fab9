// Package metric holds the bridge's core data model: metric identity,
// type/unit/timestamp enumerations, the value-type tag carried alongside
// each observation, and the per-observation MetricData record that flows
// from a Handler into the MetricCache.
package metric

import "fmt"

// Id structurally identifies a metric: its name plus an optional derived
// location. Two Ids are equal iff both fields match.
type Id struct {
	Name     string
	Location string
}

func (id Id) String() string {
	if id.Location == "" {
		return id.Name
	}
	return fmt.Sprintf("%s{location=%s}", id.Name, id.Location)
}

// Less orders Ids by name then location, the grouping key the cache uses
// for stable scrape iteration.
func (id Id) Less(other Id) bool {
	if id.Name != other.Name {
		return id.Name < other.Name
	}
	return id.Location < other.Location
}

// Type enumerates OpenMetrics/Prometheus metric types. Only Gauge carries
// meaningful value semantics today; the rest are reserved per spec §3.
type Type int

const (
	TypeGauge Type = iota
	TypeCounter
	TypeHistogram
	TypeSummary
	TypeInfo
)

var typeNames = [...]string{"gauge", "counter", "histogram", "summary", "info"}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "gauge"
	}
	return typeNames[t]
}

// ParseType maps a configuration string onto a Type, defaulting to Gauge
// for anything unrecognized (the caller is expected to warn).
func ParseType(s string) (Type, bool) {
	for i, n := range typeNames {
		if n == s {
			return Type(i), true
		}
	}
	return TypeGauge, false
}

// Unit enumerates the OpenMetrics standard unit suffixes the bridge
// recognizes, plus None for unitless metrics.
type Unit int

const (
	UnitNone Unit = iota
	UnitSeconds
	UnitBytes
	UnitRatio
	UnitVolts
	UnitAmperes
	UnitJoules
	UnitWatts
	UnitGrams
	UnitMeters
	UnitHertz
	UnitCelsius
	UnitPercent
)

var unitNames = map[Unit]string{
	UnitNone:    "",
	UnitSeconds: "seconds",
	UnitBytes:   "bytes",
	UnitRatio:   "ratio",
	UnitVolts:   "volts",
	UnitAmperes: "amperes",
	UnitJoules:  "joules",
	UnitWatts:   "watts",
	UnitGrams:   "grams",
	UnitMeters:  "meters",
	UnitHertz:   "hertz",
	UnitCelsius: "celsius",
	UnitPercent: "percent",
}

func (u Unit) String() string {
	return unitNames[u]
}

// ParseUnit maps a configuration string onto a Unit, defaulting to UnitNone
// for anything unrecognized.
func ParseUnit(s string) (Unit, bool) {
	if s == "" {
		return UnitNone, true
	}
	for u, n := range unitNames {
		if n == s {
			return u, true
		}
	}
	return UnitNone, false
}

// Timestamp controls whether a metric's samples carry an exposition
// timestamp.
type Timestamp int

const (
	TimestampOn Timestamp = iota
	TimestampOff
)

// ParseTimestamp maps "on"/"off" onto a Timestamp, defaulting to the
// supplied fallback for anything else.
func ParseTimestamp(s string, fallback Timestamp) Timestamp {
	switch s {
	case "on":
		return TimestampOn
	case "off":
		return TimestampOff
	default:
		return fallback
	}
}

// ValueType tags the kind of scalar an observation's raw text came from,
// so downstream value actions and the renderer can branch without
// re-parsing.
type ValueType int

const (
	ValueUnknown ValueType = iota
	ValueString
	ValueInt
	ValueUInt
	ValueFloat
	ValueBool
)
