package memres

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ambitiousfew/rxopc"
)

func TestResource_ReadWrite(t *testing.T) {
	r := New(WithItems(map[string]any{
		"b": true,
		"i": 7,
		"f": float32(1.5),
		"s": "woo",
	}))

	if got, err := r.ReadBool("b"); err != nil || got != true {
		t.Errorf("ReadBool: want true, got %v (%v)", got, err)
	}
	if got, err := r.ReadInt("i"); err != nil || got != 7 {
		t.Errorf("ReadInt: want 7, got %v (%v)", got, err)
	}
	if got, err := r.ReadFloat("f"); err != nil || got != 1.5 {
		t.Errorf("ReadFloat: want 1.5, got %v (%v)", got, err)
	}
	if got, err := r.ReadString("s"); err != nil || got != "woo" {
		t.Errorf("ReadString: want woo, got %v (%v)", got, err)
	}

	if err := r.WriteString("s", "waa"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if got, _ := r.Value("s"); got != "waa" {
		t.Errorf("value after write: want waa, got %v", got)
	}

	r.Set("n", int32(5))
	if got, err := r.ReadInt("n"); err != nil || got != 5 {
		t.Errorf("ReadInt after Set: want 5, got %v (%v)", got, err)
	}

	want := []string{"b", "i", "f", "s", "n"}
	if diff := cmp.Diff(want, r.Requested()); diff != "" {
		t.Errorf("requested items mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_Errors(t *testing.T) {
	r := New(WithItems(map[string]any{"s": "text"}))

	if _, err := r.ReadBool("missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("read missing: want ErrItemNotFound, got %v", err)
	}
	if err := r.WriteBool("missing", true); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("write missing: want ErrItemNotFound, got %v", err)
	}
	if _, err := r.ReadInt("s"); !errors.Is(err, ErrWrongType) {
		t.Errorf("read wrong type: want ErrWrongType, got %v", err)
	}
}

func TestResource_WriteIntRange(t *testing.T) {
	r := New(WithItems(map[string]any{"n": 0}))

	tests := []struct {
		kind    rxopc.IntKind
		value   int64
		wantErr bool
	}{
		{rxopc.IntI1, 127, false},
		{rxopc.IntI1, 128, true},
		{rxopc.IntI2, -32768, false},
		{rxopc.IntI2, 40000, true},
		{rxopc.IntI4, 1 << 31, true},
		{rxopc.IntI8, 1 << 40, false},
	}

	for _, tt := range tests {
		err := r.WriteInt("n", tt.kind, tt.value)
		if gotErr := errors.Is(err, ErrOutOfRange); gotErr != tt.wantErr {
			t.Errorf("WriteInt(%s, %d): want out of range %v, got %v", tt.kind, tt.value, tt.wantErr, err)
		}
	}
}

func TestResource_InitAndListings(t *testing.T) {
	r := New(
		RequireInit(),
		WithServers("server.1", "server.2"),
		WithItems(map[string]any{"item.2": 2, "item.1": 1}),
	)

	if _, err := r.ItemNames(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ItemNames before init: want ErrNotInitialized, got %v", err)
	}

	if err := r.Init("localhost", "server.3"); err == nil {
		t.Error("Init with unknown server: want error, got nil")
	}
	if err := r.Init("localhost", "server.2"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	names, err := r.ItemNames()
	if err != nil {
		t.Fatalf("ItemNames: %v", err)
	}
	if diff := cmp.Diff([]string{"item.1", "item.2"}, names); diff != "" {
		t.Errorf("item names mismatch (-want +got):\n%s", diff)
	}

	servers, _ := r.LocalServers()
	if diff := cmp.Diff([]string{"server.1", "server.2"}, servers); diff != "" {
		t.Errorf("servers mismatch (-want +got):\n%s", diff)
	}

	if host, server, ok := r.Connection(); !ok || host != "localhost" || server != "server.2" {
		t.Errorf("connection: got %q %q %v", host, server, ok)
	}
}

func TestResource_Hook(t *testing.T) {
	boom := errors.New("boom")
	r := New(
		WithItems(map[string]any{"b": true}),
		WithHook(func(op, item string) error {
			if op == "ReadBoolean" && item == "b" {
				return boom
			}
			return nil
		}),
	)

	if _, err := r.ReadBool("b"); !errors.Is(err, boom) {
		t.Errorf("hook error: want boom, got %v", err)
	}
	if r.Overlaps() != 0 {
		t.Errorf("overlaps: want 0, got %d", r.Overlaps())
	}
}
