package config

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// JSONDecoder decodes JSON. Unknown fields are ignored and keys match
// struct tags case-insensitively, which lets environment variable names
// such as RESPONSE_TIMEOUT land on a `json:"response_timeout"` field.
type JSONDecoder struct{}

func (JSONDecoder) Decode(b []byte, into any) error {
	return json.Unmarshal(b, into)
}

// YAMLDecoder decodes YAML documents.
type YAMLDecoder struct {
	// KnownFields rejects keys that do not map to a field.
	KnownFields bool
}

func (d YAMLDecoder) Decode(b []byte, into any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(d.KnownFields)
	return dec.Decode(into)
}

// TOMLDecoder decodes TOML documents.
type TOMLDecoder struct{}

func (TOMLDecoder) Decode(b []byte, into any) error {
	_, err := toml.NewDecoder(bytes.NewReader(b)).Decode(into)
	return err
}

// DecoderForExt picks a decoder from a file extension (".yaml", ".yml",
// ".toml", ".json"). Unknown extensions fall back to JSON.
func DecoderForExt(ext string) Decoder {
	switch ext {
	case ".yaml", ".yml":
		return YAMLDecoder{}
	case ".toml":
		return TOMLDecoder{}
	default:
		return JSONDecoder{}
	}
}
