package rxopc

const (
	StateStopped State = iota
	StateRunning
	StateStopping
)

// State is the lifecycle state of a Client.
// A client moves Stopped -> Running -> Stopping -> Stopped and may be started again.
type State uint8

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}
