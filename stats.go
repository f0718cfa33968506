package rxopc

import "sync/atomic"

// Stats are cumulative counters over the life of a Client, across restarts.
type Stats struct {
	// Processed is the number of commands executed against the resource.
	Processed uint64
	// Failed is the number of executed commands whose resource call failed.
	Failed uint64
	// Dropped is the number of commands never executed because the caller
	// gave up before the worker reached them or the client stopped.
	Dropped uint64
	// Discarded is the number of results nobody was waiting for anymore.
	Discarded uint64
	// TimedOut is the number of calls that gave up waiting for their result.
	TimedOut uint64
}

type counters struct {
	processed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
	discarded atomic.Uint64
	timedOut  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Processed: c.processed.Load(),
		Failed:    c.failed.Load(),
		Dropped:   c.dropped.Load(),
		Discarded: c.discarded.Load(),
		TimedOut:  c.timedOut.Load(),
	}
}
