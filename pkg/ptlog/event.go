package ptlog

import (
	"time"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
)

// Event represents a protocol log event captured during a printer session.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the session (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates transfer flow relative to the host.
	Direction analyzer.Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Model is the printer model name (populated after detection).
	Model string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"6,keyasint,omitempty"` // USB transfer
	StateChange *StateChangeEvent `cbor:"7,keyasint,omitempty"` // Client lifecycle
	Error       *ErrorEventData   `cbor:"8,keyasint,omitempty"` // Failures
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates a USB transfer (command or status reply).
	CategoryFrame Category = 0
	// CategoryState indicates a client state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// maxFrameCapture bounds how many transfer bytes are stored per event.
// Raster jobs can move hundreds of kilobytes; the classified command plus
// a prefix is enough for analysis.
const maxFrameCapture = 64

// FrameEvent captures a USB transfer.
type FrameEvent struct {
	// Command is the classified protocol command.
	Command analyzer.Command `cbor:"1,keyasint"`

	// Size is the full transfer size in bytes.
	Size int `cbor:"2,keyasint"`

	// Data is the transfer bytes (may be truncated for large transfers).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// NewFrameEvent builds a FrameEvent from raw transfer bytes, classifying
// them and truncating the stored copy to maxFrameCapture bytes.
func NewFrameEvent(data []byte) *FrameEvent {
	fe := &FrameEvent{
		Command: analyzer.Classify(data).Command,
		Size:    len(data),
	}
	keep := len(data)
	if keep > maxFrameCapture {
		keep = maxFrameCapture
		fe.Truncated = true
	}
	fe.Data = make([]byte, keep)
	copy(fe.Data, data[:keep])
	return fe
}

// StateChangeEvent captures client lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures error details.
type ErrorEventData struct {
	// Op is the operation that failed (e.g. "send", "receive", "print").
	Op string `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`
}
