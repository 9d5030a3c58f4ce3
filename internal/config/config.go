package config

import "time"

// Config is the root configuration for vehicled.
type Config struct {
	Runtime      Runtime     `mapstructure:"runtime"`
	Introspect   Introspect  `mapstructure:"introspect"`
	Diagnostics  Diagnostics `mapstructure:"diagnostics"`
	LogFormat    string      `mapstructure:"log_format" default:"console"`
	LogLevel     string      `mapstructure:"log_level" default:"info"`
}

// Runtime configures the scheduler's tick cadence and the controller's
// starting-stall detection.
type Runtime struct {
	TickPeriod         time.Duration `mapstructure:"tick_period" default:"10ms"`
	StallCheckInterval time.Duration `mapstructure:"stall_check_interval" default:"100ms"`
	StallThreshold     int           `mapstructure:"stall_threshold" default:"50"`
}

// Introspect configures the introspection HTTP server.
type Introspect struct {
	Enabled     bool   `mapstructure:"enabled" default:"true"`
	Address     string `mapstructure:"address" default:":8080"`
	AuthEnabled bool   `mapstructure:"auth_enabled" default:"false"`
	JWTSecret   string `mapstructure:"jwt_secret"`
}

// Diagnostics configures the DuckDB-backed history store.
type Diagnostics struct {
	Enabled     bool   `mapstructure:"enabled" default:"true"`
	DatabaseDSN string `mapstructure:"database_dsn" default:"vehicled.duckdb"`
}
