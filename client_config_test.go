package rxopc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ambitiousfew/rxopc/config"
	"github.com/ambitiousfew/rxopc/log"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
		want     Config
	}{
		{
			name: "yaml",
			file: "client.yaml",
			contents: `name: plc-1
response_timeout: 2s
log_level: debug
`,
			want: Config{Name: "plc-1", ResponseTimeout: Duration(2 * time.Second), ShutdownGrace: Duration(DefaultShutdownGrace), LogLevel: "debug"},
		},
		{
			name: "toml",
			file: "client.toml",
			contents: `name = "plc-2"
shutdown_grace = "1s"
`,
			want: Config{Name: "plc-2", ResponseTimeout: Duration(DefaultResponseTimeout), ShutdownGrace: Duration(time.Second), LogLevel: "info"},
		},
		{
			name:     "json",
			file:     "client.json",
			contents: `{"response_timeout": "500ms", "log_level": "warning"}`,
			want:     Config{Name: DefaultName, ResponseTimeout: Duration(500 * time.Millisecond), ShutdownGrace: Duration(DefaultShutdownGrace), LogLevel: "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfigFile(context.Background(), writeConfig(t, tt.file, tt.contents))
			if err != nil {
				t.Fatalf("LoadConfigFile: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "client.yaml", "response_timeout: -1s\n")
	if _, err := LoadConfigFile(context.Background(), path); err == nil {
		t.Error("want an error for a negative timeout")
	}

	path = writeConfig(t, "client.yaml", "response_timeout: soon\n")
	if _, err := LoadConfigFile(context.Background(), path); err == nil {
		t.Error("want an error for an unparsable duration")
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	environ := func() []string {
		return []string{
			"RXOPC_NAME=from-env",
			"RXOPC_RESPONSE_TIMEOUT=3s",
			"OTHER_NAME=ignored",
		}
	}

	rl := config.FromEnvironment(config.WithEnvPrefix("RXOPC_", true), config.WithEnviron(environ))
	got, err := LoadConfig(context.Background(), rl, config.JSONDecoder{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	want.Name = "from-env"
	want.ResponseTimeout = Duration(3 * time.Second)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestWithConfig(t *testing.T) {
	var lines []string
	handler := handlerFunc(func(level log.Level, message string, _ []log.Field) {
		lines = append(lines, level.String()+" "+message)
	})

	conf := Config{
		Name:            "plc-3",
		ResponseTimeout: Duration(2 * time.Second),
		LogLevel:        "error",
	}

	c := New(&stubResource{},
		WithLogger(log.NewLogger(log.LevelDebug, handler)),
		WithConfig(conf),
		WithShutdownGrace(time.Second),
	)

	if c.name != "plc-3" || c.responseTimeout != 2*time.Second || c.shutdownGrace != time.Second {
		t.Errorf("options not applied: name=%s timeout=%s grace=%s", c.name, c.responseTimeout, c.shutdownGrace)
	}

	c.log.Log(log.LevelWarning, "filtered")
	c.log.Log(log.LevelError, "kept")
	if diff := cmp.Diff([]string{"ERROR kept"}, lines); diff != "" {
		t.Errorf("log level not applied (-want +got):\n%s", diff)
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if time.Duration(d) != 90*time.Second {
		t.Errorf("want 90s, got %s", d)
	}

	b, _ := d.MarshalText()
	if string(b) != "1m30s" {
		t.Errorf("want 1m30s, got %s", b)
	}
}

type handlerFunc func(level log.Level, message string, fields []log.Field)

func (f handlerFunc) Handle(level log.Level, message string, fields []log.Field) {
	f(level, message, fields)
}
