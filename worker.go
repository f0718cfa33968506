package rxopc

import (
	"context"

	"github.com/ambitiousfew/rxopc/log"
)

// worker is the only goroutine allowed to call the Resource.
type worker struct {
	reporter
	res      Resource
	requestC <-chan Command
	log      log.Logger
}

// run takes commands off the request channel and executes them one at a time
// until ctx is cancelled. It returns the number of commands it executed.
// Resource failures are delivered to the issuing caller and never end the loop.
func (w *worker) run(ctx context.Context) int {
	w.log.Log(log.LevelInfo, "worker started, waiting for commands")

	var processed int
	for {
		select {
		case <-ctx.Done():
			w.log.Log(log.LevelInfo, "worker interrupted, exiting", log.Int("processed", processed))
			return processed

		case cmd := <-w.requestC:
			if ctx.Err() != nil {
				// took a command while stopping, the resource must not see it.
				w.reject(cmd, ErrStopped)
				w.log.Log(log.LevelInfo, "worker interrupted, exiting", log.Int("processed", processed))
				return processed
			}

			if cmd.abandoned() {
				w.drop(cmd, ErrCanceled)
				w.log.Log(log.LevelWarning, "caller stopped waiting, command not executed", log.String("command", cmd.String()))
				continue
			}

			w.log.Log(log.LevelDebug, "executing command", log.String("command", cmd.String()), log.String("id", cmd.ID.String()))
			result := execute(w.res, cmd)
			processed++
			w.stats.processed.Add(1)

			if result.Err != nil {
				w.stats.failed.Add(1)
				w.log.Log(log.LevelDebug, "command failed", log.String("command", cmd.String()), log.Error("error", result.Err))
			}

			w.publish(Event{Kind: EventCommandDone, CommandID: cmd.ID, Op: cmd.Op, Item: cmd.Item, Err: result.Err})
			w.deliver(cmd, result)
		}
	}
}

// deliver hands result to the caller waiting on the command's response channel.
// If the caller already gave up the result is discarded instead of blocking the worker.
func (w *worker) deliver(cmd Command, result Result) {
	select {
	case cmd.respC <- result:
	case <-cmd.done():
		w.stats.discarded.Add(1)
		w.publish(Event{Kind: EventResultDiscarded, CommandID: cmd.ID, Op: cmd.Op, Item: cmd.Item, Err: result.Err})
		w.log.Log(log.LevelWarning, "late result discarded, caller no longer waiting", log.String("command", cmd.String()))
	}
}
