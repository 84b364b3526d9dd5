package notify

// config holds watcher configuration.
type config struct {
	source string
	decode bool
}

// defaultConfig returns the default watcher configuration.
func defaultConfig() config {
	return config{
		decode: true,
	}
}

// Option configures a Watcher.
type Option func(*config)

// WithSource stamps a source identifier into every dispatched payload.
func WithSource(source string) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithoutDecode disables decoding of changed YAML and TOML documents
// into the payload.
func WithoutDecode() Option {
	return func(c *config) {
		c.decode = false
	}
}
