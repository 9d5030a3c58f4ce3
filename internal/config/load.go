package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// Load builds a Config by applying struct defaults, then overlaying any
// values found in a config file at path (if non-empty) and in environment
// variables prefixed VEHICLED_. CLI flags are expected to be bound into the
// same viper.Viper by the caller (cmd/vehicled) before Load runs, so flags
// take precedence over both.
func Load(v *viper.Viper, path string) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: applying defaults: %w", err)
	}

	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix("VEHICLED")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return cfg, nil
}
