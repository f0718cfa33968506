package rxopc

import (
	"errors"
	"fmt"
)

const (
	// lifecycle
	ErrAlreadyRunning Error = Error("client worker is already running")
	ErrWorkerBusy     Error = Error("previous worker has not exited yet")
	ErrNotRunning     Error = Error("client worker is not running")
	ErrStopped        Error = Error("client stopped before the command executed")
	ErrNilResource    Error = Error("client has no resource")

	// command construction
	ErrEmptyItem      Error = Error("item identifier must not be empty")
	ErrEmptyServer    Error = Error("server name must not be empty")
	ErrInvalidKind    Error = Error("invalid numeric sub-type")
	ErrUnknownOp      Error = Error("unknown operation")
	ErrInvalidCommand Error = Error("invalid command")

	// operation outcome
	ErrOperationFailed Error = Error("operation did not complete")
	ErrExecutionFailed Error = Error("execution failure")
	ErrResponseTimeout Error = Error("timed out waiting for response")
	ErrCanceled        Error = Error("canceled while waiting")
	ErrPayloadMismatch Error = Error("result payload does not match operation")

	// events
	ErrConsumerExists   Error = Error("consumer already subscribed")
	ErrConsumerNotFound Error = Error("consumer not found")
)

type Error string

func (e Error) Error() string {
	return string(e)
}

// OperationError is returned by every client operation that did not complete.
// Reason tells why (ErrExecutionFailed, ErrResponseTimeout, ErrCanceled,
// ErrNotRunning, ErrInvalidCommand or ErrStopped), Err carries the underlying
// resource or context error when there is one.
//
// errors.Is(err, ErrOperationFailed) holds for every OperationError.
type OperationError struct {
	Op     Op
	Item   string
	Reason error
	Err    error
}

func (e *OperationError) Error() string {
	msg := e.Op.String()
	if e.Item != "" {
		msg += " for item [" + e.Item + "]"
	}
	msg += ": " + e.Reason.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

func opError(cmd Command, reason, err error) *OperationError {
	return &OperationError{Op: cmd.Op, Item: cmd.Item, Reason: reason, Err: err}
}

// PanicError wraps a value recovered from a panicking Resource call.
type PanicError struct {
	Op    Op
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("resource panicked during %s: %v", e.Op, e.Value)
}

// IsTimeout reports whether err is an operation that timed out waiting for its result.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrResponseTimeout)
}
