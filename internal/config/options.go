package config

// WithRuntime overrides the Runtime section.
func WithRuntime(r Runtime) func(*Config) { return func(c *Config) { c.Runtime = r } }

// WithIntrospect overrides the Introspect section.
func WithIntrospect(i Introspect) func(*Config) { return func(c *Config) { c.Introspect = i } }

// WithDiagnostics overrides the Diagnostics section.
func WithDiagnostics(d Diagnostics) func(*Config) { return func(c *Config) { c.Diagnostics = d } }

// WithLogLevel overrides LogLevel.
func WithLogLevel(level string) func(*Config) { return func(c *Config) { c.LogLevel = level } }

// WithLogFormat overrides LogFormat.
func WithLogFormat(format string) func(*Config) { return func(c *Config) { c.LogFormat = format } }

// Apply runs each option against cfg in order.
func Apply(cfg Config, opts ...func(*Config)) Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
