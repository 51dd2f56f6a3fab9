package config

import "errors"

// Fatal configuration errors, per spec §7: a missing mqtt or prometheus
// root section aborts startup with exit code 1.
var (
	errMissingMqttSection       = errors.New("config: missing required \"mqtt\" section")
	errMissingPrometheusSection = errors.New("config: missing required \"prometheus\" section")
)
