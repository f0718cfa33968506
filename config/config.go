// Package config reads raw client configuration from files, readers or the
// process environment and decodes it with a pluggable Decoder.
//
// A ReadLoader is read once (or again on reload) and keeps a copy of the last
// contents, Load hands out copies so concurrent decoders never share a buffer.
package config

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Reader refreshes the contents held by a ReadLoader from its source.
type Reader interface {
	Read(ctx context.Context) error
}

// Loader returns a copy of the contents of the most recent Read.
type Loader interface {
	Load(ctx context.Context) ([]byte, error)
}

type ReadLoader interface {
	Reader
	Loader
}

// Decoder turns raw contents into the value pointed to by into.
type Decoder interface {
	Decode(b []byte, into any) error
}

// DecoderFunc adapts a plain function such as json.Unmarshal to a Decoder.
type DecoderFunc func(b []byte, into any) error

func (f DecoderFunc) Decode(b []byte, into any) error {
	return f(b, into)
}

// Decode reads rl, loads its contents and decodes them into into.
func Decode(ctx context.Context, rl ReadLoader, decoder Decoder, into any) error {
	if rl == nil {
		return errors.New("config: nil read loader")
	}
	if decoder == nil {
		return errors.New("config: nil decoder")
	}

	if err := rl.Read(ctx); err != nil {
		return err
	}

	contents, err := rl.Load(ctx)
	if err != nil {
		return err
	}

	return decoder.Decode(contents, into)
}

// FromReader returns a ReadLoader over r. r is consumed by the first Read,
// later reads keep the contents already captured.
func FromReader(r io.Reader) ReadLoader {
	return &readerConfig{reader: r}
}

type readerConfig struct {
	reader   io.Reader
	contents contents
	once     sync.Once
	err      error
}

func (c *readerConfig) Read(_ context.Context) error {
	c.once.Do(func() {
		if c.reader == nil {
			c.err = errors.New("config: nil reader")
			return
		}

		b, err := io.ReadAll(c.reader)
		if err != nil {
			c.err = err
			return
		}
		c.err = c.contents.store(b)
	})
	return c.err
}

func (c *readerConfig) Load(_ context.Context) ([]byte, error) {
	return c.contents.load()
}

// contents holds the last read bytes behind a lock.
type contents struct {
	b  []byte
	mu sync.RWMutex
}

func (c *contents) store(b []byte) error {
	if len(b) == 0 {
		return errors.New("config: contents were empty on read")
	}
	c.mu.Lock()
	c.b = b
	c.mu.Unlock()
	return nil
}

func (c *contents) load() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.b) == 0 {
		return nil, errors.New("config: nothing loaded, call Read first")
	}

	b := make([]byte, len(c.b))
	copy(b, c.b)
	return b, nil
}
