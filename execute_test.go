package rxopc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubResource records the calls it receives and returns fixed values.
type stubResource struct {
	calls []string
	err   error
	panic bool
}

func (s *stubResource) record(call string) error {
	s.calls = append(s.calls, call)
	if s.panic {
		panic("resource exploded")
	}
	return s.err
}

func (s *stubResource) Init(host, server string) error {
	return s.record("Init " + host + " " + server)
}

func (s *stubResource) ItemNames() ([]string, error) {
	return []string{"a", "b"}, s.record("ItemNames")
}

func (s *stubResource) LocalServers() ([]string, error) {
	return []string{"srv"}, s.record("LocalServers")
}

func (s *stubResource) ReadBool(item string) (bool, error) {
	return true, s.record("ReadBool " + item)
}

func (s *stubResource) ReadFloat(item string) (float64, error) {
	return 2.5, s.record("ReadFloat " + item)
}

func (s *stubResource) ReadInt(item string) (int64, error) {
	return 9, s.record("ReadInt " + item)
}

func (s *stubResource) ReadString(item string) (string, error) {
	return "woo", s.record("ReadString " + item)
}

func (s *stubResource) WriteBool(item string, value bool) error {
	return s.record("WriteBool " + item)
}

func (s *stubResource) WriteFloat(item string, kind FloatKind, value float64) error {
	return s.record("WriteFloat " + item + " " + string(kind))
}

func (s *stubResource) WriteInt(item string, kind IntKind, value int64) error {
	return s.record("WriteInt " + item + " " + string(kind))
}

func (s *stubResource) WriteString(item string, value string) error {
	return s.record("WriteString " + item)
}

func TestExecute_DispatchesEveryOp(t *testing.T) {
	f := NewCommandFactory()
	ctx := context.Background()
	respC := make(chan Result)

	build := func(cmd Command, err error) Command {
		t.Helper()
		if err != nil {
			t.Fatalf("build command: %v", err)
		}
		return cmd
	}

	tests := []struct {
		cmd  Command
		want Payload
	}{
		{build(f.Init(ctx, respC, "host", "server")), AckPayload{}},
		{build(f.ItemNames(ctx, respC)), NamesPayload{"a", "b"}},
		{build(f.LocalServers(ctx, respC)), NamesPayload{"srv"}},
		{build(f.ReadBool(ctx, respC, "x")), BoolPayload(true)},
		{build(f.ReadFloat(ctx, respC, "x")), FloatPayload(2.5)},
		{build(f.ReadInt(ctx, respC, "x")), IntPayload(9)},
		{build(f.ReadString(ctx, respC, "x")), StringPayload("woo")},
		{build(f.WriteBool(ctx, respC, "x", true)), AckPayload{}},
		{build(f.WriteFloat(ctx, respC, "x", FloatR4, 1)), AckPayload{}},
		{build(f.WriteInt(ctx, respC, "x", IntI2, 1)), AckPayload{}},
		{build(f.WriteString(ctx, respC, "x", "y")), AckPayload{}},
	}

	res := &stubResource{}
	for _, tt := range tests {
		t.Run(tt.cmd.Op.String(), func(t *testing.T) {
			got := execute(res, tt.cmd)
			if !got.Success() {
				t.Fatalf("want success, got %v", got.Err)
			}
			if got.ID != tt.cmd.ID || got.Op != tt.cmd.Op {
				t.Errorf("result not tagged with its command: %+v", got)
			}
			if diff := cmp.Diff(tt.want, got.Payload); diff != "" {
				t.Errorf("payload mismatch (-want +got):\n%s", diff)
			}
		})
	}

	wantCalls := []string{
		"Init host server", "ItemNames", "LocalServers",
		"ReadBool x", "ReadFloat x", "ReadInt x", "ReadString x",
		"WriteBool x", "WriteFloat x R4", "WriteInt x I2", "WriteString x",
	}
	if diff := cmp.Diff(wantCalls, res.calls); diff != "" {
		t.Errorf("resource calls mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_Failures(t *testing.T) {
	f := NewCommandFactory()
	respC := make(chan Result)
	cmd, _ := f.ReadBool(context.Background(), respC, "x")

	boom := errors.New("boom")
	got := execute(&stubResource{err: boom}, cmd)
	if got.Success() || !errors.Is(got.Err, boom) || got.Payload != nil {
		t.Errorf("want failure wrapping boom without payload, got %+v", got)
	}

	got = execute(&stubResource{panic: true}, cmd)
	var perr *PanicError
	if !errors.As(got.Err, &perr) || perr.Op != OpReadBool {
		t.Errorf("want PanicError for ReadBoolean, got %v", got.Err)
	}

	unknown := Command{Op: Op(200), respC: respC}
	got = execute(&stubResource{}, unknown)
	if !errors.Is(got.Err, ErrUnknownOp) {
		t.Errorf("want ErrUnknownOp, got %v", got.Err)
	}
}

func TestPayloadAs(t *testing.T) {
	r := Result{Op: OpReadBool, Payload: BoolPayload(true)}

	if v, err := payloadAs[BoolPayload](r); err != nil || !bool(v) {
		t.Errorf("want true, got %v (%v)", v, err)
	}

	if _, err := payloadAs[StringPayload](r); !errors.Is(err, ErrPayloadMismatch) {
		t.Errorf("want ErrPayloadMismatch, got %v", err)
	}
}
