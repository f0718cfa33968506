package rxopc

import (
	"time"

	"github.com/ambitiousfew/rxopc/log"
)

type Option func(*Client)

// WithName sets the client name used in log fields.
func WithName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger used by the client and its worker.
// Without it the client logs nothing.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithResponseTimeout sets how long a call waits for its result once enqueued.
// Non-positive values are ignored.
func WithResponseTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.responseTimeout = timeout
		}
	}
}

// WithShutdownGrace sets how long Stop waits for the worker to report.
// Non-positive values are ignored.
func WithShutdownGrace(grace time.Duration) Option {
	return func(c *Client) {
		if grace > 0 {
			c.shutdownGrace = grace
		}
	}
}

// WithConfig applies a loaded Config. Options given after it override its values.
func WithConfig(conf Config) Option {
	return func(c *Client) {
		WithName(conf.Name)(c)
		WithResponseTimeout(time.Duration(conf.ResponseTimeout))(c)
		WithShutdownGrace(time.Duration(conf.ShutdownGrace))(c)
		if conf.LogLevel != "" {
			level := log.LevelFromString(conf.LogLevel)
			c.logLevel = &level
		}
	}
}
