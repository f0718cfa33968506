package rxopc

import "time"

const (
	// UnknownCount is returned by Stop when the worker did not report its
	// processed count within the shutdown grace period.
	UnknownCount int = -1

	DefaultResponseTimeout = 1 * time.Second
	DefaultShutdownGrace   = 250 * time.Millisecond
	DefaultName            = "rxopc"

	// defaultEventBuffer is used by Subscribe when buffer is not positive.
	defaultEventBuffer = 16
	// eventsTopic is the intracom topic carrying client events.
	eventsTopic = "rxopc.events"

	notItemSpecific = "!not item specific!"
)
