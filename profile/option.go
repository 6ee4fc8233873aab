package profile

// Option configures a [Config].
type Option func(*Config)

// WithMode selects the profiling mode, one of [Modes].
func WithMode(mode string) Option {
	return func(c *Config) { c.mode = mode }
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) Option {
	return func(c *Config) { c.path = path }
}

// WithQuiet suppresses the profiler's own messages on standard error.
func WithQuiet(quiet bool) Option {
	return func(c *Config) { c.quiet = quiet }
}
