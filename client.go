// Package rxopc gives any number of goroutines safe, blocking access to a
// single-threaded OPC client (a Resource).
//
// Every call is turned into a Command and handed over an unbuffered request
// channel to one worker goroutine, the only goroutine that ever touches the
// Resource. The worker answers on the caller's own response channel and the
// caller waits for that answer for at most the response timeout.
//
//	c := rxopc.New(res, rxopc.WithResponseTimeout(time.Second))
//	if err := c.Start(ctx); err != nil {
//		return err
//	}
//	defer c.Stop()
//
//	ctx = rxopc.WithCaller(ctx, "poller")
//	on, err := c.ReadBool(ctx, "testGroup.myBool")
package rxopc

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ambitiousfew/rxopc/intracom"
	"github.com/ambitiousfew/rxopc/log"
)

// Client is the public facade over a Resource. It is safe for concurrent use.
type Client struct {
	name            string
	res             Resource
	factory         CommandFactory
	responseTimeout time.Duration
	shutdownGrace   time.Duration
	logLevel        *log.Level

	// requestC is unbuffered, at most one command is in flight toward the worker.
	requestC chan Command
	lines    registry
	ic       *intracom.Intracom
	stats    counters
	report   reporter
	log      log.Logger

	mu    sync.Mutex
	state State
	run   *run // current run, or the last one once stopped
}

// run is one Start/Stop cycle of the worker.
type run struct {
	ctx    context.Context
	cancel context.CancelFunc
	countC chan int      // receives the processed count once
	exitC  chan struct{} // closed when the worker goroutine returned
}

// New creates a stopped Client over res.
func New(res Resource, opts ...Option) *Client {
	c := &Client{
		name:            DefaultName,
		res:             res,
		factory:         NewCommandFactory(),
		responseTimeout: DefaultResponseTimeout,
		shutdownGrace:   DefaultShutdownGrace,
		requestC:        make(chan Command),
		log:             log.Noop(),
		state:           StateStopped,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logLevel != nil {
		c.log.SetLevel(*c.logLevel)
	}
	c.log = c.log.With(log.String("client", c.name))

	c.ic = intracom.New(c.name, intracom.WithLogger(c.log.With(log.String("component", "intracom"))))
	// a fresh registry holds no topic that could conflict.
	events, _ := intracom.CreateTopic[Event](c.ic, intracom.TopicConfig{Name: eventsTopic})
	c.report = reporter{stats: &c.stats, events: events}

	return c
}

// Start launches the worker. The worker also exits when ctx is cancelled,
// the client is then stopped and calls fail with ErrNotRunning until Start is
// called again.
func (c *Client) Start(ctx context.Context) error {
	if c.res == nil {
		return ErrNilResource
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateRunning:
		return ErrAlreadyRunning
	case StateStopping:
		return ErrWorkerBusy
	}

	if c.run != nil {
		select {
		case <-c.run.exitC:
		default:
			// a worker from the previous run is stuck in a resource call,
			// starting another would let two goroutines touch the resource.
			return ErrWorkerBusy
		}
	}

	wctx, cancel := context.WithCancel(ctx)
	r := &run{
		ctx:    wctx,
		cancel: cancel,
		countC: make(chan int, 1),
		exitC:  make(chan struct{}),
	}

	w := &worker{
		reporter: c.report,
		res:      c.res,
		requestC: c.requestC,
		log:      c.log.With(log.String("component", "worker")),
	}

	go func() {
		r.countC <- w.run(wctx)
		close(r.exitC)
		c.exited(r)
	}()

	c.run = r
	c.setState(StateRunning)
	c.log.Log(log.LevelNotice, "client started",
		log.Any("response_timeout", c.responseTimeout),
		log.Any("shutdown_grace", c.shutdownGrace))
	return nil
}

// Stop interrupts the worker, fails any command still waiting to be taken and
// waits up to the shutdown grace period for the worker to report how many
// commands it executed. It returns UnknownCount if the worker did not report
// in time, or if the client was not running.
//
// Stop does not wait for a resource call in progress to return.
func (c *Client) Stop() int {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return UnknownCount
	}
	r := c.run
	c.setState(StateStopping)
	c.mu.Unlock()

	c.log.Log(log.LevelInfo, "stopping client worker")
	r.cancel()
	c.drain()

	count := UnknownCount
	timer := time.NewTimer(c.shutdownGrace)
	defer timer.Stop()

	select {
	case n := <-r.countC:
		count = n
	case <-timer.C:
		c.log.Log(log.LevelWarning, "worker did not exit within the shutdown grace period", log.Any("grace", c.shutdownGrace))
	}

	c.mu.Lock()
	c.setState(StateStopped)
	c.mu.Unlock()

	c.log.Log(log.LevelNotice, "command queue consumer stopped", log.Int("processed", count))
	return count
}

// drain fails every command whose sender is still blocked on the request channel.
func (c *Client) drain() {
	for {
		select {
		case cmd := <-c.requestC:
			c.report.reject(cmd, ErrStopped)
			c.log.Log(log.LevelDebug, "drained unclaimed command", log.String("command", cmd.String()))
		default:
			return
		}
	}
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// setState must be called with mu held.
func (c *Client) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	c.report.publish(Event{Kind: EventStateChanged, State: s})
}

// exited moves the client to stopped when the worker of r returned without
// Stop, e.g. because the context given to Start was cancelled.
func (c *Client) exited(r *run) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != r || c.state != StateRunning {
		return
	}
	r.cancel()
	c.setState(StateStopped)
	c.log.Log(log.LevelNotice, "worker exited without stop", log.Int("processed", <-r.countC))
}

// current returns the active run, or nil if the client is not running.
func (c *Client) current() *run {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateRunning {
		return nil
	}
	return c.run
}

// Release forgets the response channel of caller. It reports whether the caller was known.
func (c *Client) Release(caller CallerID) bool {
	return c.lines.release(caller)
}

// Callers returns the number of registered caller response channels.
func (c *Client) Callers() int {
	return c.lines.len()
}

// Stats returns a snapshot of the client counters.
func (c *Client) Stats() Stats {
	return c.stats.snapshot()
}

// Subscribe registers consumer for client events. When the buffer is full the
// oldest event is dropped. buffer < 1 uses a default size.
func (c *Client) Subscribe(consumer string, buffer int) (<-chan Event, error) {
	if buffer < 1 {
		buffer = defaultEventBuffer
	}

	ch, err := intracom.CreateSubscription(c.ic, eventsTopic, intracom.SubscriberConfig[Event]{
		ConsumerGroup: consumer,
		ErrIfExists:   true,
		BufferSize:    buffer,
		BufferPolicy:  intracom.BufferPolicyDropOldest[Event]{},
	})
	if errors.Is(err, intracom.ErrConsumerAlreadyExists) {
		return nil, ErrConsumerExists
	}
	return ch, err
}

// Unsubscribe removes consumer and closes its channel.
func (c *Client) Unsubscribe(consumer string) error {
	err := intracom.RemoveSubscription[Event](c.ic, eventsTopic, consumer)
	if errors.Is(err, intracom.ErrConsumerNotFound) {
		return ErrConsumerNotFound
	}
	return err
}
