package log

// Option modifies a logger configuration.
type Option func(config) config

// apply returns cfg with every option applied in order.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
