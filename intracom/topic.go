package intracom

import (
	"sync"
	"sync/atomic"
)

// Topic fans every published message out to all of its subscribers.
type Topic[T any] interface {
	Name() string
	// Publish delivers message to every subscriber according to its buffer
	// policy and returns once each policy has handled it.
	Publish(message T)
	Subscribe(conf SubscriberConfig[T]) (<-chan T, error)
	// Unsubscribe removes the consumer and closes its channel.
	Unsubscribe(consumer string) error
	Close() error
}

type TopicConfig struct {
	Name        string // unique name for the topic
	ErrIfExists bool   // return error if topic already exists
}

type topic[T any] struct {
	name        string
	subscribers map[string]*subscriber[T]
	closed      atomic.Bool
	// mu is held for reading while publishing, so a subscriber is never
	// closed in the middle of a send.
	mu sync.RWMutex
}

func newTopic[T any](name string) *topic[T] {
	return &topic[T]{
		name:        name,
		subscribers: make(map[string]*subscriber[T]),
	}
}

func (t *topic[T]) Name() string {
	return t.name
}

func (t *topic[T]) Publish(message T) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.closed.Load() {
		return
	}

	for _, sub := range t.subscribers {
		// a full or stopped subscriber loses the message, the others still get it.
		_ = sub.send(message)
	}
}

func (t *topic[T]) Subscribe(conf SubscriberConfig[T]) (<-chan T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed.Load() {
		return nil, ErrTopicClosed
	}

	if sub, exists := t.subscribers[conf.ConsumerGroup]; exists {
		if conf.ErrIfExists {
			return sub.ch, ErrConsumerAlreadyExists
		}
		return sub.ch, nil
	}

	sub := newSubscriber[T](conf)
	t.subscribers[conf.ConsumerGroup] = sub
	return sub.ch, nil
}

func (t *topic[T]) Unsubscribe(consumer string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed.Load() {
		return ErrTopicClosed
	}

	sub, exists := t.subscribers[consumer]
	if !exists {
		return ErrConsumerNotFound
	}

	delete(t.subscribers, consumer)
	return sub.close()
}

func (t *topic[T]) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed.Swap(true) {
		return ErrTopicClosed
	}

	for name, sub := range t.subscribers {
		_ = sub.close()
		delete(t.subscribers, name)
	}
	return nil
}
