// Package intracom is a small in-process pub/sub broker. An Intracom is a
// registry of typed topics, each topic fans published messages out to its
// subscribers through per-subscriber buffer policies.
package intracom

import (
	"sync"
	"sync/atomic"

	"github.com/ambitiousfew/rxopc/log"
)

type Option func(*Intracom)

// WithLogger sets the logger used to report errors while closing.
func WithLogger(logger log.Logger) Option {
	return func(ic *Intracom) {
		if logger != nil {
			ic.logger = logger
		}
	}
}

// Intracom acts as a registry for all topics.
type Intracom struct {
	name   string
	topics map[string]closer
	mu     sync.RWMutex

	logger log.Logger
	closed atomic.Bool
}

type closer interface {
	Close() error
}

func New(name string, opts ...Option) *Intracom {
	ic := &Intracom{
		name:   name,
		topics: make(map[string]closer),
		logger: log.Noop(),
	}

	for _, opt := range opts {
		opt(ic)
	}

	return ic
}

// CreateTopic creates the named topic, or returns the existing one.
// With ErrIfExists an existing topic is returned together with ErrTopicAlreadyExists.
func CreateTopic[T any](ic *Intracom, conf TopicConfig) (Topic[T], error) {
	if ic.closed.Load() {
		return nil, ErrTopic{Topic: conf.Name, Action: ActionCreatingTopic, Err: ErrIntracomClosed}
	}

	ic.mu.Lock()
	defer ic.mu.Unlock()

	existing, ok := ic.topics[conf.Name]
	if !ok {
		t := newTopic[T](conf.Name)
		ic.topics[conf.Name] = t
		return t, nil
	}

	t, ok := existing.(Topic[T])
	if !ok {
		return nil, ErrTopic{Topic: conf.Name, Action: ActionCreatingTopic, Err: ErrInvalidTopicType}
	}

	if conf.ErrIfExists {
		return t, ErrTopic{Topic: conf.Name, Action: ActionCreatingTopic, Err: ErrTopicAlreadyExists}
	}
	return t, nil
}

// RemoveTopic closes the named topic and its subscriber channels.
func RemoveTopic[T any](ic *Intracom, name string) error {
	t, err := lookup[T](ic, name)
	if err != nil {
		return ErrTopic{Topic: name, Action: ActionRemovingTopic, Err: err}
	}

	if err := t.Close(); err != nil {
		return ErrTopic{Topic: name, Action: ActionRemovingTopic, Err: err}
	}

	ic.mu.Lock()
	delete(ic.topics, name)
	ic.mu.Unlock()
	return nil
}

// CreateSubscription subscribes to an existing topic.
func CreateSubscription[T any](ic *Intracom, topic string, conf SubscriberConfig[T]) (<-chan T, error) {
	t, err := lookup[T](ic, topic)
	if err != nil {
		return nil, ErrSubscribe{Topic: topic, Consumer: conf.ConsumerGroup, Action: ActionCreatingSubscription, Err: err}
	}

	ch, err := t.Subscribe(conf)
	if err != nil {
		return ch, ErrSubscribe{Topic: topic, Consumer: conf.ConsumerGroup, Action: ActionCreatingSubscription, Err: err}
	}
	return ch, nil
}

// RemoveSubscription removes consumer from topic and closes its channel.
func RemoveSubscription[T any](ic *Intracom, topic, consumer string) error {
	t, err := lookup[T](ic, topic)
	if err == nil {
		err = t.Unsubscribe(consumer)
	}
	if err != nil {
		return ErrSubscribe{Topic: topic, Consumer: consumer, Action: ActionRemovingSubscription, Err: err}
	}
	return nil
}

// Close closes every topic. The registry cannot be used afterwards.
func Close(ic *Intracom) error {
	if ic.closed.Swap(true) {
		return ErrIntracomClosed
	}

	ic.mu.Lock()
	for name, t := range ic.topics {
		if err := t.Close(); err != nil {
			ic.logger.Log(log.LevelError, "error closing topic", log.String("intracom", ic.name), log.String("topic", name), log.Error("error", err))
		}
	}
	ic.topics = make(map[string]closer)
	ic.mu.Unlock()
	return nil
}

func lookup[T any](ic *Intracom, name string) (Topic[T], error) {
	if ic.closed.Load() {
		return nil, ErrIntracomClosed
	}

	ic.mu.RLock()
	existing, ok := ic.topics[name]
	ic.mu.RUnlock()
	if !ok {
		return nil, ErrTopicNotFound
	}

	t, ok := existing.(Topic[T])
	if !ok {
		return nil, ErrInvalidTopicType
	}
	return t, nil
}
