package rxopc

import (
	"context"
	"sync"
	"sync/atomic"
)

// CallerID identifies a calling goroutine to the client. Calls carrying the
// same CallerID reuse one response channel and are executed strictly one
// after another.
type CallerID string

type callerKey struct{}

// WithCaller returns a context that makes client calls issued with it use the
// response line of id.
func WithCaller(ctx context.Context, id CallerID) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerFrom returns the CallerID stored in ctx, if any.
func CallerFrom(ctx context.Context) (CallerID, bool) {
	id, ok := ctx.Value(callerKey{}).(CallerID)
	return id, ok && id != ""
}

// line is the response channel of one caller. sem holds a token while a call
// is using the line.
type line struct {
	respC chan Result
	sem   chan struct{}
}

func newLine() *line {
	return &line{
		respC: make(chan Result),
		sem:   make(chan struct{}, 1),
	}
}

func (l *line) lock(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.sem <- struct{}{}:
		return nil
	}
}

func (l *line) unlock() {
	<-l.sem
}

// registry maps callers to their lines. Lines are created lazily on first use
// and live until released.
type registry struct {
	lines sync.Map // map[CallerID]*line
	size  atomic.Int64
}

// acquire returns the locked line for the caller in ctx, or a fresh ephemeral
// line when ctx carries no CallerID. The returned func unlocks it.
func (r *registry) acquire(ctx context.Context) (*line, func(), error) {
	id, ok := CallerFrom(ctx)
	if !ok {
		l := newLine()
		return l, func() {}, nil
	}

	l := r.get(id)
	if err := l.lock(ctx); err != nil {
		return nil, nil, err
	}
	return l, l.unlock, nil
}

func (r *registry) get(id CallerID) *line {
	if v, ok := r.lines.Load(id); ok {
		return v.(*line)
	}

	v, loaded := r.lines.LoadOrStore(id, newLine())
	if !loaded {
		r.size.Add(1)
	}
	return v.(*line)
}

// release forgets the line of id. A call still holding the line finishes normally.
func (r *registry) release(id CallerID) bool {
	if _, loaded := r.lines.LoadAndDelete(id); loaded {
		r.size.Add(-1)
		return true
	}
	return false
}

func (r *registry) len() int {
	return int(r.size.Load())
}
