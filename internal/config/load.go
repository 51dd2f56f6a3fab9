package config

import (
	"fmt"

	defaults "github.com/mcuadros/go-defaults"
	"github.com/spf13/viper"
)

// Load reads and unmarshals the YAML document at path, applying the
// scalar defaults declared on File's struct tags via go-defaults —
// mirroring the teacher's own `defaults.SetDefaults(&cfg)` call after
// unmarshal, generalized from JSON to YAML.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if !v.IsSet("mqtt") {
		return nil, errMissingMqttSection
	}
	if !v.IsSet("prometheus") {
		return nil, errMissingPrometheusSection
	}

	var file File
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	defaults.SetDefaults(&file)

	return &file, nil
}
