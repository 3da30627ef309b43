package protocol

// State is the sequencer lifecycle state.
type State uint8

const (
	// StateUninitialized means no connection has been established.
	StateUninitialized State = iota
	// StateConnected means the invalidate+init handshake completed.
	StateConnected
	// StatePrinting means a print sequence is in flight.
	StatePrinting
	// StateIdle means a print sequence completed and the printer is
	// ready for another job.
	StateIdle
	// StateError means a transfer failed. The client must disconnect
	// and reconnect to recover.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnected:
		return "connected"
	case StatePrinting:
		return "printing"
	case StateIdle:
		return "idle"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
