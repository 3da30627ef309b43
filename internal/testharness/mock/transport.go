// Package mock provides a mock printer transport for testing.
package mock

import (
	"context"
	"sync"

	"github.com/ptouch-protocol/ptouch-go/pkg/status"
	"github.com/ptouch-protocol/ptouch-go/pkg/transport"
)

// Transport is an in-memory transport.Transport implementation that
// records every frame sent to it and serves scripted receive replies.
// It is safe for concurrent use.
type Transport struct {
	// Sent holds every frame passed to Send, in order.
	Sent [][]byte

	// Replies are served by Receive in FIFO order. When the queue is
	// empty, Receive returns a timeout TransferError like real hardware
	// that has nothing to say.
	Replies [][]byte

	// SendErr, when set, is returned by the next Send call and cleared.
	SendErr error

	// ReceiveErr, when set, is returned by the next Receive call and cleared.
	ReceiveErr error

	// OnSend, when set, is called with each sent frame before recording.
	OnSend func(data []byte)

	mu     sync.Mutex
	closed bool
}

// NewTransport creates an empty mock transport.
func NewTransport() *Transport {
	return &Transport{}
}

// QueueReply appends a reply to be served by a later Receive call.
func (t *Transport) QueueReply(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	t.Replies = append(t.Replies, cp)
}

// QueueStatus encodes a status frame and queues it as a Receive reply.
func (t *Transport) QueueStatus(st *status.Status) {
	t.QueueReply(st.Encode())
}

// Send records the frame. It honors SendErr and the closed state.
func (t *Transport) Send(ctx context.Context, data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, transport.ErrClosed
	}
	if len(data) > transport.MaxPacketSize {
		return 0, transport.ErrPacketTooLarge
	}
	if err := t.SendErr; err != nil {
		t.SendErr = nil
		return 0, err
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	if t.OnSend != nil {
		t.OnSend(cp)
	}
	t.Sent = append(t.Sent, cp)
	return len(cp), nil
}

// Receive serves the next queued reply, truncated to maxLen.
func (t *Transport) Receive(ctx context.Context, maxLen int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil, transport.ErrClosed
	}
	if err := t.ReceiveErr; err != nil {
		t.ReceiveErr = nil
		return nil, err
	}
	if len(t.Replies) == 0 {
		return nil, &transport.TransferError{
			Op:     "receive",
			Status: transport.StatusTimeout,
			Err:    context.DeadlineExceeded,
		}
	}

	reply := t.Replies[0]
	t.Replies = t.Replies[1:]
	if len(reply) > maxLen {
		reply = reply[:maxLen]
	}
	return reply, nil
}

// Close marks the transport closed. Safe to call multiple times.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (t *Transport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// SentFrames returns a copy of the recorded frames.
func (t *Transport) SentFrames() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.Sent))
	copy(out, t.Sent)
	return out
}

// Compile-time interface satisfaction check.
var _ transport.Transport = (*Transport)(nil)
