package config

import (
	"context"
	"encoding/json"
	"os"
	"strings"
)

// EnvEncoder turns the selected environment variables into decodable bytes.
type EnvEncoder func(vars map[string]string) ([]byte, error)

// EnvJSONEncoder encodes the variables as a flat JSON object, pair it with JSONDecoder.
func EnvJSONEncoder(vars map[string]string) ([]byte, error) {
	return json.Marshal(vars)
}

// FromEnvironment returns a ReadLoader over the process environment.
// With a prefix only matching variables are read, and when trim is set the
// prefix is removed from the names before encoding.
func FromEnvironment(opts ...EnvOption) ReadLoader {
	conf := &envConfig{
		encoder: EnvJSONEncoder,
		environ: os.Environ,
	}

	for _, opt := range opts {
		opt(conf)
	}

	return conf
}

type envConfig struct {
	prefix     string
	trimPrefix bool
	encoder    EnvEncoder
	environ    func() []string
	contents   contents
}

func (c *envConfig) Read(_ context.Context) error {
	vars := make(map[string]string)

	for _, kv := range c.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}

		if c.prefix != "" && !strings.HasPrefix(name, c.prefix) {
			continue
		}

		if c.trimPrefix {
			name = strings.TrimPrefix(name, c.prefix)
		}

		vars[name] = value
	}

	b, err := c.encoder(vars)
	if err != nil {
		return err
	}

	return c.contents.store(b)
}

func (c *envConfig) Load(_ context.Context) ([]byte, error) {
	return c.contents.load()
}
