package intracom

import "sync/atomic"

// SubscriberConfig configures one consumer of a topic.
type SubscriberConfig[T any] struct {
	ConsumerGroup string
	ErrIfExists   bool
	BufferSize    int
	// BufferPolicy defaults to BufferPolicyDropNone.
	BufferPolicy BufferPolicyHandler[T]
}

type subscriber[T any] struct {
	consumerGroup string
	bufferPolicy  BufferPolicyHandler[T]
	ch            chan T
	stopC         chan struct{}
	closed        *atomic.Bool
}

func newSubscriber[T any](conf SubscriberConfig[T]) *subscriber[T] {
	policy := conf.BufferPolicy
	if policy == nil {
		policy = BufferPolicyDropNone[T]{}
	}

	size := conf.BufferSize
	if size < 0 {
		size = 0
	}

	return &subscriber[T]{
		consumerGroup: conf.ConsumerGroup,
		bufferPolicy:  policy,
		ch:            make(chan T, size),
		stopC:         make(chan struct{}),
		closed:        &atomic.Bool{},
	}
}

// send hands message to the buffer policy of the subscriber.
func (s *subscriber[T]) send(message T) error {
	if s.closed.Load() {
		return ErrSubscriberStopped
	}
	return s.bufferPolicy.Handle(s.ch, message, s.stopC)
}

// close must only be called once no send is in progress.
func (s *subscriber[T]) close() error {
	if s.closed.Swap(true) {
		return ErrSubscriberStopped
	}

	close(s.stopC)
	close(s.ch)
	return nil
}
