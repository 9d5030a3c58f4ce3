// Package config defines the configuration structure for vehicled.
//
// Configuration is organized into logical sections (Runtime, Introspect,
// Diagnostics) with defaults applied via `github.com/creasty/defaults`
// struct tags and values loaded through `github.com/spf13/viper` from a
// config file, environment variables, and CLI flags, in that increasing
// order of precedence.
//
// # Configuration structure
//
//	Config
//	├── Runtime      - tick period, starting-stall detection
//	├── Introspect   - introspection HTTP server, optional JWT auth
//	├── Diagnostics  - DuckDB-backed history store location
//	├── LogFormat    - logging output format
//	└── LogLevel     - logging verbosity
//
// Functional-option constructors (WithRuntime, WithIntrospect, ...) are
// hand-written rather than generated.
package config
