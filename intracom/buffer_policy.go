package intracom

// BufferPolicyHandler decides what happens to a message when a subscriber's
// channel is full.
type BufferPolicyHandler[T any] interface {
	Handle(ch chan T, message T, stopC <-chan struct{}) error
}

// BufferPolicyDropNone blocks until the message fits or the subscriber stops.
// A slow subscriber with this policy stalls the publisher, and with it
// Unsubscribe and Close on the same topic.
type BufferPolicyDropNone[T any] struct{}

func (BufferPolicyDropNone[T]) Handle(ch chan T, message T, stopC <-chan struct{}) error {
	select {
	case <-stopC:
		return ErrSubscriberStopped
	case ch <- message:
		return nil
	}
}

// BufferPolicyDropOldest never blocks: when the channel is full the oldest
// buffered message is popped to make room for the new one.
type BufferPolicyDropOldest[T any] struct{}

func (BufferPolicyDropOldest[T]) Handle(ch chan T, message T, stopC <-chan struct{}) error {
	select {
	case <-stopC:
		return ErrSubscriberStopped
	case ch <- message:
		return nil
	default:
	}

	// full, drop one.
	select {
	case <-ch:
	default:
	}

	select {
	case <-stopC:
		return ErrSubscriberStopped
	case ch <- message:
		return nil
	default:
		// a concurrent publisher refilled it.
		return ErrBufferFull
	}
}

// BufferPolicyDropNewest never blocks: when the channel is full the new
// message is dropped.
type BufferPolicyDropNewest[T any] struct{}

func (BufferPolicyDropNewest[T]) Handle(ch chan T, message T, stopC <-chan struct{}) error {
	select {
	case <-stopC:
		return ErrSubscriberStopped
	case ch <- message:
		return nil
	default:
		return nil
	}
}
