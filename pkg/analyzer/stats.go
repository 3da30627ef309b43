package analyzer

import (
	"sync"
	"time"
)

// Direction indicates packet flow relative to the host.
type Direction uint8

const (
	// DirectionOut is host to printer.
	DirectionOut Direction = 0
	// DirectionIn is printer to host.
	DirectionIn Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "OUT"
	case DirectionIn:
		return "IN"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is a point-in-time copy of the rolling traffic counters.
type Snapshot struct {
	TotalPackets  uint64
	PacketsOut    uint64
	PacketsIn     uint64
	BytesSent     uint64
	BytesReceived uint64
	Errors        uint64
	FirstPacket   time.Time
	LastPacket    time.Time
}

// Duration is the span between the first and last recorded packet.
func (s Snapshot) Duration() time.Duration {
	if s.FirstPacket.IsZero() || s.LastPacket.IsZero() {
		return 0
	}
	return s.LastPacket.Sub(s.FirstPacket)
}

// Stats aggregates rolling traffic counters. Safe for concurrent use;
// a background status poll and a foreground print job may both record.
type Stats struct {
	mu sync.Mutex
	s  Snapshot

	// now is swapped in tests for deterministic timestamps.
	now func() time.Time
}

// NewStats creates an empty aggregator.
func NewStats() *Stats {
	return &Stats{now: time.Now}
}

// Record counts one packet. failed marks a packet whose transfer ended
// in an error.
func (st *Stats) Record(dir Direction, data []byte, failed bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if st.s.FirstPacket.IsZero() {
		st.s.FirstPacket = now
	}
	st.s.LastPacket = now

	st.s.TotalPackets++
	switch dir {
	case DirectionOut:
		st.s.PacketsOut++
		st.s.BytesSent += uint64(len(data))
	case DirectionIn:
		st.s.PacketsIn++
		st.s.BytesReceived += uint64(len(data))
	}
	if failed {
		st.s.Errors++
	}
}

// Snapshot returns a copy of the current counters.
func (st *Stats) Snapshot() Snapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

// Reset clears all counters.
func (st *Stats) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = Snapshot{}
}
