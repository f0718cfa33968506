package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type testConfig struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Timeout string `json:"timeout" yaml:"timeout" toml:"timeout"`
	Retries int    `json:"retries" yaml:"retries" toml:"retries"`
}

func TestDecode_Files(t *testing.T) {
	want := testConfig{Name: "opc", Timeout: "1s", Retries: 3}

	tests := []struct {
		file     string
		contents string
	}{
		{"client.json", `{"name":"opc","timeout":"1s","retries":3}`},
		{"client.yaml", "name: opc\ntimeout: 1s\nretries: 3\n"},
		{"client.yml", "name: opc\ntimeout: 1s\nretries: 3\n"},
		{"client.toml", "name = \"opc\"\ntimeout = \"1s\"\nretries = 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.contents), 0o600); err != nil {
				t.Fatalf("write config file: %v", err)
			}

			var got testConfig
			err := Decode(context.Background(), FromFile(path), FileDecoder(path), &got)
			if err != nil {
				t.Fatalf("decode error: want nil, got %v", err)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("decoded config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_MissingFile(t *testing.T) {
	var got testConfig
	err := Decode(context.Background(), FromFile(filepath.Join(t.TempDir(), "nope.yaml")), YAMLDecoder{}, &got)
	if err == nil {
		t.Fatal("expected an error for a missing file, got nil")
	}
}

func TestDecode_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	var got testConfig
	if err := Decode(context.Background(), FromFile(path), JSONDecoder{}, &got); err == nil {
		t.Fatal("expected an error for an empty file, got nil")
	}
}

func TestDecode_YAMLKnownFields(t *testing.T) {
	var got testConfig
	rl := FromReader(strings.NewReader("name: opc\nbogus: true\n"))
	if err := Decode(context.Background(), rl, YAMLDecoder{KnownFields: true}, &got); err == nil {
		t.Fatal("expected unknown field error, got nil")
	}
}

func TestFromEnvironment(t *testing.T) {
	environ := func() []string {
		return []string{
			"RXOPC_NAME=from-env",
			"RXOPC_TIMEOUT=2s",
			"RXOPC_RETRIES=5",
			"HOME=/root",
			"MALFORMED",
		}
	}

	// env values are strings, retries is decoded separately below.
	var got struct {
		Name    string `json:"name"`
		Timeout string `json:"timeout"`
		Retries string `json:"retries"`
	}

	rl := FromEnvironment(WithEnviron(environ), WithEnvPrefix("RXOPC_", true))
	if err := Decode(context.Background(), rl, JSONDecoder{}, &got); err != nil {
		t.Fatalf("decode error: want nil, got %v", err)
	}

	if got.Name != "from-env" || got.Timeout != "2s" || got.Retries != "5" {
		t.Errorf("unexpected env decode result: %+v", got)
	}
}

func TestLoad_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	rl := FromReader(strings.NewReader(`{"name":"opc"}`))
	if err := rl.Read(ctx); err != nil {
		t.Fatalf("read: %v", err)
	}

	first, err := rl.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first[0] = 'X'

	second, err := rl.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second[0] != '{' {
		t.Errorf("expected Load to hand out copies, got mutated contents %q", second)
	}
}

func TestFromEnvironment_CustomEncoder(t *testing.T) {
	environ := func() []string {
		return []string{"RXOPC_NAME=opc", "RXOPC_RETRIES=5"}
	}

	// renders the variables as yaml so typed fields decode from strings.
	yamlEncoder := func(vars map[string]string) ([]byte, error) {
		var b strings.Builder
		for k, v := range vars {
			b.WriteString(strings.ToLower(k) + ": " + v + "\n")
		}
		return []byte(b.String()), nil
	}

	rl := FromEnvironment(WithEnviron(environ), WithEnvPrefix("RXOPC_", true), WithEnvEncoder(yamlEncoder))

	var got testConfig
	if err := Decode(context.Background(), rl, YAMLDecoder{}, &got); err != nil {
		t.Fatalf("decode error: want nil, got %v", err)
	}

	if diff := cmp.Diff(testConfig{Name: "opc", Retries: 5}, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
