package rxopc

import (
	"context"
	"strconv"

	"github.com/google/uuid"
)

const (
	OpUnknown Op = iota
	OpInit
	OpItemNames
	OpLocalServers
	OpReadBool
	OpReadFloat
	OpReadInt
	OpReadString
	OpWriteBool
	OpWriteFloat
	OpWriteInt
	OpWriteString
)

// Op is the closed set of operations a Command can carry.
type Op uint8

func (o Op) String() string {
	switch o {
	case OpInit:
		return "Init"
	case OpItemNames:
		return "GetItemNames"
	case OpLocalServers:
		return "GetLocalServerList"
	case OpReadBool:
		return "ReadBoolean"
	case OpReadFloat:
		return "ReadFloat"
	case OpReadInt:
		return "ReadInt"
	case OpReadString:
		return "ReadString"
	case OpWriteBool:
		return "WriteBoolean"
	case OpWriteFloat:
		return "WriteFloat"
	case OpWriteInt:
		return "WriteInt"
	case OpWriteString:
		return "WriteString"
	default:
		return "Unknown(" + strconv.Itoa(int(o)) + ")"
	}
}

// ItemScoped reports whether the op targets a single item.
func (o Op) ItemScoped() bool {
	switch o {
	case OpReadBool, OpReadFloat, OpReadInt, OpReadString,
		OpWriteBool, OpWriteFloat, OpWriteInt, OpWriteString:
		return true
	default:
		return false
	}
}

// Command is one deferred operation against the Resource together with the
// channel its Result must be delivered to. Commands are built by a
// CommandFactory and are not modified afterwards.
type Command struct {
	ID   uuid.UUID
	Op   Op
	Item string

	// init only
	host   string
	server string

	// write payloads
	boolValue   bool
	intValue    int64
	floatValue  float64
	stringValue string
	intKind     IntKind
	floatKind   FloatKind

	// ctx is the issuing call's context, done once the caller stopped waiting.
	ctx   context.Context
	respC chan<- Result
}

func (c Command) String() string {
	if !c.Op.ItemScoped() {
		return c.Op.String() + " for item [" + notItemSpecific + "]"
	}
	return c.Op.String() + " for item [" + c.Item + "]"
}

// abandoned reports whether the issuing caller is no longer waiting.
func (c Command) abandoned() bool {
	return c.ctx != nil && c.ctx.Err() != nil
}

// done is nil when the command has no context, so a select on it never fires.
func (c Command) done() <-chan struct{} {
	if c.ctx == nil {
		return nil
	}
	return c.ctx.Done()
}
