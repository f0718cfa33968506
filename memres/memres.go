// Package memres is an in-memory rxopc.Resource.
//
// It behaves like a small OPC server holding typed items and is meant for
// tests and examples. Like a real OPC client it expects to be driven by a
// single goroutine, and it counts every call that overlaps another so tests
// can prove the rxopc worker never calls it concurrently.
package memres

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ambitiousfew/rxopc"
)

var (
	// ErrItemNotFound is returned for reads and writes of unknown items.
	ErrItemNotFound = errors.New("failed to find opc item")
	// ErrWrongType is returned when an item holds a different value type.
	ErrWrongType = errors.New("opc item holds a different type")
	// ErrOutOfRange is returned when an int write does not fit its kind.
	ErrOutOfRange = errors.New("value out of range for kind")
	// ErrNotInitialized is returned by ItemNames before a successful Init when
	// the resource was created with RequireInit.
	ErrNotInitialized = errors.New("opc client not initialized")
)

// Hook runs at the start of every call with the operation name and item,
// a non-nil error fails the call.
type Hook func(op, item string) error

// Resource is the in-memory resource.
type Resource struct {
	items       map[string]any
	servers     []string
	requested   []string
	host        string
	server      string
	initialized bool
	requireInit bool
	hook        Hook

	// mu guards the maps for inspection from test goroutines, it is not what
	// makes the resource safe, the rxopc worker is.
	mu       sync.Mutex
	active   atomic.Int32
	overlaps atomic.Int64
}

type Option func(*Resource)

// WithItems seeds the item values, values must be bool, int64, float64 or string.
func WithItems(items map[string]any) Option {
	return func(r *Resource) {
		for k, v := range items {
			r.items[k] = normalize(v)
		}
	}
}

// WithServers sets the local server list.
func WithServers(servers ...string) Option {
	return func(r *Resource) {
		r.servers = append([]string(nil), servers...)
	}
}

// WithHook installs a hook that runs before every call.
func WithHook(h Hook) Option {
	return func(r *Resource) {
		r.hook = h
	}
}

// RequireInit makes ItemNames fail until Init succeeded.
func RequireInit() Option {
	return func(r *Resource) {
		r.requireInit = true
	}
}

func New(opts ...Option) *Resource {
	r := &Resource{
		items: make(map[string]any),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// enter marks the start of a call and runs the hook.
func (r *Resource) enter(op, item string) (func(), error) {
	if r.active.Add(1) > 1 {
		r.overlaps.Add(1)
	}
	leave := func() { r.active.Add(-1) }

	if r.hook != nil {
		if err := r.hook(op, item); err != nil {
			leave()
			return nil, err
		}
	}
	return leave, nil
}

func (r *Resource) Init(host, server string) error {
	leave, err := r.enter("Init", "")
	if err != nil {
		return err
	}
	defer leave()

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.servers) > 0 && !slices.Contains(r.servers, server) {
		return fmt.Errorf("unknown opc server [%s] on host [%s]", server, host)
	}

	r.host = host
	r.server = server
	r.initialized = true
	return nil
}

// ItemNames returns the item identifiers in sorted order.
func (r *Resource) ItemNames() ([]string, error) {
	leave, err := r.enter("GetItemNames", "")
	if err != nil {
		return nil, err
	}
	defer leave()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.requireInit && !r.initialized {
		return nil, ErrNotInitialized
	}

	names := maps.Keys(r.items)
	slices.Sort(names)
	return names, nil
}

func (r *Resource) LocalServers() ([]string, error) {
	leave, err := r.enter("GetLocalServerList", "")
	if err != nil {
		return nil, err
	}
	defer leave()

	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.servers), nil
}

func (r *Resource) ReadBool(item string) (bool, error) {
	return read[bool](r, "ReadBoolean", item)
}

func (r *Resource) ReadFloat(item string) (float64, error) {
	return read[float64](r, "ReadFloat", item)
}

func (r *Resource) ReadInt(item string) (int64, error) {
	return read[int64](r, "ReadInt", item)
}

func (r *Resource) ReadString(item string) (string, error) {
	return read[string](r, "ReadString", item)
}

func (r *Resource) WriteBool(item string, value bool) error {
	return write(r, "WriteBoolean", item, value)
}

func (r *Resource) WriteFloat(item string, kind rxopc.FloatKind, value float64) error {
	if kind == rxopc.FloatR4 {
		if math.Abs(value) > math.MaxFloat32 && !math.IsInf(value, 0) {
			return fmt.Errorf("%w: %v as %s", ErrOutOfRange, value, kind)
		}
		value = float64(float32(value))
	}
	return write(r, "WriteFloat", item, value)
}

func (r *Resource) WriteInt(item string, kind rxopc.IntKind, value int64) error {
	if bits := kind.Bits(); bits > 0 && bits < 64 {
		limit := int64(1) << (bits - 1)
		if value < -limit || value >= limit {
			return fmt.Errorf("%w: %d as %s", ErrOutOfRange, value, kind)
		}
	}
	return write(r, "WriteInt", item, value)
}

func (r *Resource) WriteString(item string, value string) error {
	return write(r, "WriteString", item, value)
}

func read[T any](r *Resource, op, item string) (T, error) {
	var zero T

	leave, err := r.enter(op, item)
	if err != nil {
		return zero, err
	}
	defer leave()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.requested = append(r.requested, item)

	v, ok := r.items[item]
	if !ok || v == nil {
		return zero, fmt.Errorf("%w [%s]", ErrItemNotFound, item)
	}

	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] holds %T", ErrWrongType, item, v)
	}
	return t, nil
}

// write replaces the value of an existing item, the type may change as on a real server.
func write(r *Resource, op, item string, value any) error {
	leave, err := r.enter(op, item)
	if err != nil {
		return err
	}
	defer leave()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item]; !ok {
		return fmt.Errorf("%w [%s]", ErrItemNotFound, item)
	}

	r.items[item] = value
	return nil
}

// Set creates or replaces an item value.
func (r *Resource) Set(item string, value any) {
	r.mu.Lock()
	r.items[item] = normalize(value)
	r.mu.Unlock()
}

// Value returns the current value of item.
func (r *Resource) Value(item string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[item]
	return v, ok
}

// Requested returns the items read so far, in call order.
func (r *Resource) Requested() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.requested)
}

// Connection returns the host and server of the last successful Init.
func (r *Resource) Connection() (host, server string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host, r.server, r.initialized
}

// Overlaps returns how many calls started while another call was still running.
func (r *Resource) Overlaps() int64 {
	return r.overlaps.Load()
}

// normalize widens seeded values to the types the resource stores.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

var _ rxopc.Resource = (*Resource)(nil)
