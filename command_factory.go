package rxopc

import (
	"context"

	"github.com/google/uuid"
)

// CommandFactory builds ready to enqueue Commands bound to a response channel.
// Construction never blocks and has no side effects.
type CommandFactory struct {
	newID func() uuid.UUID
}

func NewCommandFactory() CommandFactory {
	return CommandFactory{newID: uuid.New}
}

func (f CommandFactory) command(ctx context.Context, respC chan<- Result, op Op, item string) (Command, error) {
	if respC == nil {
		return Command{}, ErrInvalidCommand
	}

	if op.ItemScoped() && item == "" {
		return Command{}, ErrEmptyItem
	}

	newID := f.newID
	if newID == nil {
		newID = uuid.New
	}

	return Command{
		ID:    newID(),
		Op:    op,
		Item:  item,
		ctx:   ctx,
		respC: respC,
	}, nil
}

func (f CommandFactory) Init(ctx context.Context, respC chan<- Result, host, server string) (Command, error) {
	if server == "" {
		return Command{}, ErrEmptyServer
	}

	cmd, err := f.command(ctx, respC, OpInit, "")
	if err != nil {
		return Command{}, err
	}
	cmd.host = host
	cmd.server = server
	return cmd, nil
}

func (f CommandFactory) ItemNames(ctx context.Context, respC chan<- Result) (Command, error) {
	return f.command(ctx, respC, OpItemNames, "")
}

func (f CommandFactory) LocalServers(ctx context.Context, respC chan<- Result) (Command, error) {
	return f.command(ctx, respC, OpLocalServers, "")
}

func (f CommandFactory) ReadBool(ctx context.Context, respC chan<- Result, item string) (Command, error) {
	return f.command(ctx, respC, OpReadBool, item)
}

func (f CommandFactory) ReadFloat(ctx context.Context, respC chan<- Result, item string) (Command, error) {
	return f.command(ctx, respC, OpReadFloat, item)
}

func (f CommandFactory) ReadInt(ctx context.Context, respC chan<- Result, item string) (Command, error) {
	return f.command(ctx, respC, OpReadInt, item)
}

func (f CommandFactory) ReadString(ctx context.Context, respC chan<- Result, item string) (Command, error) {
	return f.command(ctx, respC, OpReadString, item)
}

func (f CommandFactory) WriteBool(ctx context.Context, respC chan<- Result, item string, value bool) (Command, error) {
	cmd, err := f.command(ctx, respC, OpWriteBool, item)
	if err != nil {
		return Command{}, err
	}
	cmd.boolValue = value
	return cmd, nil
}

func (f CommandFactory) WriteFloat(ctx context.Context, respC chan<- Result, item string, kind FloatKind, value float64) (Command, error) {
	if !kind.Valid() {
		return Command{}, ErrInvalidKind
	}

	cmd, err := f.command(ctx, respC, OpWriteFloat, item)
	if err != nil {
		return Command{}, err
	}
	cmd.floatKind = kind
	cmd.floatValue = value
	return cmd, nil
}

func (f CommandFactory) WriteInt(ctx context.Context, respC chan<- Result, item string, kind IntKind, value int64) (Command, error) {
	if !kind.Valid() {
		return Command{}, ErrInvalidKind
	}

	cmd, err := f.command(ctx, respC, OpWriteInt, item)
	if err != nil {
		return Command{}, err
	}
	cmd.intKind = kind
	cmd.intValue = value
	return cmd, nil
}

func (f CommandFactory) WriteString(ctx context.Context, respC chan<- Result, item string, value string) (Command, error) {
	cmd, err := f.command(ctx, respC, OpWriteString, item)
	if err != nil {
		return Command{}, err
	}
	cmd.stringValue = value
	return cmd, nil
}
