package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// FromFile returns a ReadLoader over the file at path. Each Read reopens the
// file so a reload picks up changes.
func FromFile(path string) ReadLoader {
	return &fileConfig{path: path}
}

// FileDecoder returns the decoder matching the extension of path.
func FileDecoder(path string) Decoder {
	return DecoderForExt(filepath.Ext(path))
}

type fileConfig struct {
	path     string
	contents contents
}

func (c *fileConfig) Read(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	return c.contents.store(b)
}

func (c *fileConfig) Load(_ context.Context) ([]byte, error) {
	return c.contents.load()
}
