package config

type EnvOption func(*envConfig)

func WithEnvEncoder(encoder EnvEncoder) EnvOption {
	return func(c *envConfig) {
		if encoder != nil {
			c.encoder = encoder
		}
	}
}

func WithEnvPrefix(prefix string, trim bool) EnvOption {
	return func(c *envConfig) {
		c.prefix = prefix
		c.trimPrefix = trim
	}
}

// WithEnviron replaces os.Environ as the variable source.
func WithEnviron(environ func() []string) EnvOption {
	return func(c *envConfig) {
		if environ != nil {
			c.environ = environ
		}
	}
}
