package intracom

// Error is the sentinel error type of the intracom package.
type Error string

const (
	// ErrIntracomClosed is returned by every registry call after Close.
	ErrIntracomClosed = Error("intracom is closed")
	// ErrTopicNotFound is returned when a topic does not exist.
	ErrTopicNotFound = Error("topic not found")
	// ErrTopicAlreadyExists is returned by CreateTopic when ErrIfExists is set.
	ErrTopicAlreadyExists = Error("topic already exists")
	// ErrInvalidTopicType is returned when a topic exists with a different message type.
	ErrInvalidTopicType = Error("topic exists but with a different type")
	// ErrTopicClosed is returned by a topic after Close.
	ErrTopicClosed = Error("topic is closed")
	// ErrConsumerAlreadyExists is returned by Subscribe when ErrIfExists is set.
	ErrConsumerAlreadyExists = Error("consumer already exists")
	// ErrConsumerNotFound is returned by Unsubscribe for an unknown consumer.
	ErrConsumerNotFound = Error("consumer not found")
	// ErrSubscriberStopped is returned when sending to a closed subscriber.
	ErrSubscriberStopped = Error("subscriber stopped")
	// ErrBufferFull is returned when a buffer policy could not place a message.
	ErrBufferFull = Error("buffer full, failed to push message")
)

func (e Error) Error() string {
	return string(e)
}

// Action is the action that was attempted when an error occurred.
type Action string

const (
	ActionCreatingTopic        = Action("creating topic")
	ActionRemovingTopic        = Action("removing topic")
	ActionCreatingSubscription = Action("creating subscription")
	ActionRemovingSubscription = Action("removing subscription")
)

// ErrSubscribe describes a failed subscription change.
type ErrSubscribe struct {
	Topic    string
	Consumer string
	Action   Action
	Err      error
}

func (e ErrSubscribe) Error() string {
	return "error " + string(e.Action) + " to topic '" + e.Topic + "' with consumer '" + e.Consumer + "' reason: " + e.Err.Error()
}

func (e ErrSubscribe) Unwrap() error {
	return e.Err
}

// ErrTopic describes a failed topic change.
type ErrTopic struct {
	Topic  string
	Action Action
	Err    error
}

func (e ErrTopic) Error() string {
	return "error " + string(e.Action) + " '" + e.Topic + "' reason: " + e.Err.Error()
}

func (e ErrTopic) Unwrap() error {
	return e.Err
}
