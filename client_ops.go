package rxopc

import (
	"context"
	"errors"
	"time"

	"github.com/ambitiousfew/rxopc/log"
)

// builder creates the command for one call once the caller's response channel is known.
type builder func(ctx context.Context, respC chan<- Result) (Command, error)

// call schedules the command made by build and waits for its payload of type P.
func call[P Payload](c *Client, ctx context.Context, op Op, item string, build builder) (P, error) {
	var zero P

	res, err := c.schedule(ctx, op, item, build)
	if err != nil {
		return zero, err
	}

	p, err := payloadAs[P](res)
	if err != nil {
		c.log.Log(log.LevelCritical, "result payload does not match operation",
			log.String("op", op.String()), log.Any("payload", res.Payload))
		return zero, &OperationError{Op: op, Item: item, Reason: ErrPayloadMismatch}
	}
	return p, nil
}

// schedule enqueues one command and waits for its result on the caller's line.
func (c *Client) schedule(ctx context.Context, op Op, item string, build builder) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	l, unlock, err := c.lines.acquire(ctx)
	if err != nil {
		return Result{}, &OperationError{Op: op, Item: item, Reason: ErrCanceled, Err: err}
	}
	defer unlock()

	// cancelled on return so the worker drops or discards work nobody awaits.
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd, err := build(callCtx, l.respC)
	if err != nil {
		return Result{}, &OperationError{Op: op, Item: item, Reason: ErrInvalidCommand, Err: err}
	}

	r := c.current()
	if r == nil {
		return Result{}, opError(cmd, ErrNotRunning, nil)
	}

	// blocks while another command is in flight toward the worker.
	select {
	case c.requestC <- cmd:
	case <-ctx.Done():
		c.log.Log(log.LevelError, "interrupt failure while submitting request", log.String("command", cmd.String()))
		return Result{}, opError(cmd, ErrCanceled, ctx.Err())
	case <-r.ctx.Done():
		return Result{}, opError(cmd, ErrNotRunning, nil)
	case <-r.exitC:
		return Result{}, opError(cmd, ErrNotRunning, nil)
	}

	return c.await(ctx, l, r, cmd)
}

// await waits for the result of cmd for at most the response timeout.
// Results that belong to an earlier command on the same line are discarded.
func (c *Client) await(ctx context.Context, l *line, r *run, cmd Command) (Result, error) {
	timer := time.NewTimer(c.responseTimeout)
	defer timer.Stop()

	for {
		select {
		case res := <-l.respC:
			if res.ID != cmd.ID {
				c.log.Log(log.LevelWarning, "discarding stale result", log.String("op", res.Op.String()), log.String("id", res.ID.String()))
				continue
			}

			if res.Err != nil {
				if errors.Is(res.Err, ErrStopped) {
					return Result{}, opError(cmd, ErrStopped, nil)
				}
				c.log.Log(log.LevelError, "execution failure", log.String("command", cmd.String()), log.Error("error", res.Err))
				return Result{}, opError(cmd, ErrExecutionFailed, res.Err)
			}
			return res, nil

		case <-timer.C:
			c.stats.timedOut.Add(1)
			c.log.Log(log.LevelError, "timeout failure", log.String("command", cmd.String()), log.Any("timeout", c.responseTimeout))
			return Result{}, opError(cmd, ErrResponseTimeout, nil)

		case <-ctx.Done():
			c.log.Log(log.LevelError, "interrupt failure while waiting for response", log.String("command", cmd.String()))
			return Result{}, opError(cmd, ErrCanceled, ctx.Err())

		case <-r.exitC:
			// the worker is gone, only a drained rejection can still arrive.
			select {
			case res := <-l.respC:
				if res.ID == cmd.ID && res.Err == nil {
					return res, nil
				}
			default:
			}
			return Result{}, opError(cmd, ErrStopped, nil)
		}
	}
}

// Init initializes the resource against server on host.
func (c *Client) Init(ctx context.Context, host, server string) error {
	_, err := call[AckPayload](c, ctx, OpInit, "", func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.Init(ctx, respC, host, server)
	})
	return err
}

// ItemNames lists the item identifiers known to the resource.
func (c *Client) ItemNames(ctx context.Context) ([]string, error) {
	names, err := call[NamesPayload](c, ctx, OpItemNames, "", func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.ItemNames(ctx, respC)
	})
	return []string(names), err
}

// LocalServers lists the servers available on the local host.
func (c *Client) LocalServers(ctx context.Context) ([]string, error) {
	servers, err := call[NamesPayload](c, ctx, OpLocalServers, "", func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.LocalServers(ctx, respC)
	})
	return []string(servers), err
}

func (c *Client) ReadBool(ctx context.Context, item string) (bool, error) {
	v, err := call[BoolPayload](c, ctx, OpReadBool, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.ReadBool(ctx, respC, item)
	})
	return bool(v), err
}

func (c *Client) ReadFloat(ctx context.Context, item string) (float64, error) {
	v, err := call[FloatPayload](c, ctx, OpReadFloat, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.ReadFloat(ctx, respC, item)
	})
	return float64(v), err
}

func (c *Client) ReadInt(ctx context.Context, item string) (int64, error) {
	v, err := call[IntPayload](c, ctx, OpReadInt, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.ReadInt(ctx, respC, item)
	})
	return int64(v), err
}

func (c *Client) ReadString(ctx context.Context, item string) (string, error) {
	v, err := call[StringPayload](c, ctx, OpReadString, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.ReadString(ctx, respC, item)
	})
	return string(v), err
}

func (c *Client) WriteBool(ctx context.Context, item string, value bool) error {
	_, err := call[AckPayload](c, ctx, OpWriteBool, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.WriteBool(ctx, respC, item, value)
	})
	return err
}

// WriteFloat writes value to item as the native variant kind (R4 or R8).
func (c *Client) WriteFloat(ctx context.Context, item string, kind FloatKind, value float64) error {
	_, err := call[AckPayload](c, ctx, OpWriteFloat, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.WriteFloat(ctx, respC, item, kind, value)
	})
	return err
}

// WriteInt writes value to item as the native variant kind (I1, I2, I4 or I8).
func (c *Client) WriteInt(ctx context.Context, item string, kind IntKind, value int64) error {
	_, err := call[AckPayload](c, ctx, OpWriteInt, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.WriteInt(ctx, respC, item, kind, value)
	})
	return err
}

func (c *Client) WriteString(ctx context.Context, item string, value string) error {
	_, err := call[AckPayload](c, ctx, OpWriteString, item, func(ctx context.Context, respC chan<- Result) (Command, error) {
		return c.factory.WriteString(ctx, respC, item, value)
	})
	return err
}
