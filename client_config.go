package rxopc

import (
	"context"
	"fmt"
	"time"

	"github.com/ambitiousfew/rxopc/config"
)

// Config is the file or environment form of the client options.
type Config struct {
	Name            string   `json:"name" yaml:"name" toml:"name"`
	ResponseTimeout Duration `json:"response_timeout" yaml:"response_timeout" toml:"response_timeout"`
	ShutdownGrace   Duration `json:"shutdown_grace" yaml:"shutdown_grace" toml:"shutdown_grace"`
	LogLevel        string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// DefaultConfig returns the values a Client uses without any options.
func DefaultConfig() Config {
	return Config{
		Name:            DefaultName,
		ResponseTimeout: Duration(DefaultResponseTimeout),
		ShutdownGrace:   Duration(DefaultShutdownGrace),
		LogLevel:        "info",
	}
}

func (c Config) Validate() error {
	if c.ResponseTimeout < 0 {
		return fmt.Errorf("response_timeout must not be negative, got %s", c.ResponseTimeout)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("shutdown_grace must not be negative, got %s", c.ShutdownGrace)
	}
	return nil
}

// LoadConfig decodes the contents of rl over DefaultConfig, so missing keys keep their defaults.
func LoadConfig(ctx context.Context, rl config.ReadLoader, decoder config.Decoder) (Config, error) {
	conf := DefaultConfig()
	if err := config.Decode(ctx, rl, decoder, &conf); err != nil {
		return Config{}, err
	}

	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// LoadConfigFile loads a JSON, YAML or TOML file chosen by its extension.
func LoadConfigFile(ctx context.Context, path string) (Config, error) {
	return LoadConfig(ctx, config.FromFile(path), config.FileDecoder(path))
}

// LoadConfigEnv loads the config from environment variables starting with prefix,
// e.g. RXOPC_RESPONSE_TIMEOUT=2s with prefix "RXOPC_".
func LoadConfigEnv(ctx context.Context, prefix string) (Config, error) {
	return LoadConfig(ctx, config.FromEnvironment(config.WithEnvPrefix(prefix, true)), config.JSONDecoder{})
}

// Duration is a time.Duration written as text such as "1s" or "250ms".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
