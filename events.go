package rxopc

import (
	"time"

	"github.com/google/uuid"

	"github.com/ambitiousfew/rxopc/intracom"
)

const (
	// EventStateChanged is published on every lifecycle transition.
	EventStateChanged EventKind = iota
	// EventCommandDone is published after the worker executed a command.
	EventCommandDone
	// EventCommandDropped is published when the worker skipped a command
	// because its caller stopped waiting before execution or the client stopped.
	EventCommandDropped
	// EventResultDiscarded is published when a command executed but its
	// caller was gone by the time the result was ready.
	EventResultDiscarded
)

type EventKind uint8

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventCommandDone:
		return "command_done"
	case EventCommandDropped:
		return "command_dropped"
	case EventResultDiscarded:
		return "result_discarded"
	default:
		return "unknown"
	}
}

// Event describes something the client did. State is set for state changes,
// the command fields for everything else.
type Event struct {
	Kind      EventKind
	Time      time.Time
	State     State
	CommandID uuid.UUID
	Op        Op
	Item      string
	Err       error
}

// reporter records what happened to commands in the counters and on the
// event topic. It is shared by the worker and by Stop's drain.
type reporter struct {
	stats  *counters
	events intracom.Topic[Event]
}

func (r reporter) publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	r.events.Publish(ev)
}

// drop records a command that will never be executed.
func (r reporter) drop(cmd Command, reason error) {
	r.stats.dropped.Add(1)
	r.publish(Event{Kind: EventCommandDropped, CommandID: cmd.ID, Op: cmd.Op, Item: cmd.Item, Err: reason})
}

// reject drops cmd and answers its caller with reason.
// Delivery happens off the calling goroutine so a stop never waits on callers.
func (r reporter) reject(cmd Command, reason error) {
	r.drop(cmd, reason)

	go func() {
		select {
		case cmd.respC <- failure(cmd, reason):
		case <-cmd.done():
		}
	}()
}
