package rxopc

import (
	"github.com/google/uuid"
)

// Result is the outcome of executing one Command. It succeeded when Err is nil,
// in which case Payload holds the variant matching the command's Op.
type Result struct {
	ID      uuid.UUID
	Op      Op
	Payload Payload
	Err     error
}

func (r Result) Success() bool {
	return r.Err == nil
}

// Payload is implemented only by the payload types of this package.
type Payload interface {
	payload()
}

type (
	// AckPayload is returned by init and every write.
	AckPayload struct{}
	// BoolPayload is returned by ReadBool.
	BoolPayload bool
	// IntPayload is returned by ReadInt.
	IntPayload int64
	// FloatPayload is returned by ReadFloat.
	FloatPayload float64
	// StringPayload is returned by ReadString.
	StringPayload string
	// NamesPayload is returned by ItemNames and LocalServers.
	NamesPayload []string
)

func (AckPayload) payload()    {}
func (BoolPayload) payload()   {}
func (IntPayload) payload()    {}
func (FloatPayload) payload()  {}
func (StringPayload) payload() {}
func (NamesPayload) payload()  {}

func success(cmd Command, p Payload) Result {
	return Result{ID: cmd.ID, Op: cmd.Op, Payload: p}
}

func failure(cmd Command, err error) Result {
	return Result{ID: cmd.ID, Op: cmd.Op, Err: err}
}

// payloadAs extracts the variant P from a successful result.
// A different variant is a bug in the worker, never a resource failure.
func payloadAs[P Payload](r Result) (P, error) {
	p, ok := r.Payload.(P)
	if !ok {
		var zero P
		return zero, ErrPayloadMismatch
	}
	return p, nil
}
