package transport

import (
	"errors"
	"fmt"
	"time"
)

// Transfer constants.
const (
	// MaxPacketSize is the largest single packet the printers accept.
	MaxPacketSize = 128

	// DefaultPollInterval is the historical completion-poll interval.
	DefaultPollInterval = 1 * time.Millisecond

	// DefaultMaxAttempts is the historical completion-poll ceiling.
	// Together with DefaultPollInterval this yields an effective
	// per-transfer deadline of about one second.
	DefaultMaxAttempts = 1000
)

// ErrPacketTooLarge indicates a Send larger than MaxPacketSize. This is
// a caller error, not a transfer failure.
var ErrPacketTooLarge = fmt.Errorf("packet exceeds %d bytes", MaxPacketSize)

// ErrClosed indicates a transfer on a closed transport.
var ErrClosed = errors.New("transport is closed")

// Config holds transfer timing parameters.
type Config struct {
	// PollInterval is the completion-poll interval.
	PollInterval time.Duration

	// MaxAttempts is the poll ceiling before a transfer times out.
	MaxAttempts int
}

// DefaultConfig returns the historical timing defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		MaxAttempts:  DefaultMaxAttempts,
	}
}

// Deadline returns the effective per-transfer deadline.
func (c Config) Deadline() time.Duration {
	interval := c.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	return interval * time.Duration(attempts)
}
