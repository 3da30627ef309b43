package transport

import "context"

// Transport is the byte pipe to a printer. Implemented by USBTransport
// for real hardware and by the test harness mock.
//
// Both transfer methods block until completion or the context deadline.
// Callers that pass a context without a deadline get the transport's
// configured default (see Config.Deadline).
type Transport interface {
	// Send writes one packet to the bulk-OUT endpoint and returns the
	// number of bytes transferred. Packets larger than MaxPacketSize
	// are a caller error, rejected before touching the bus.
	Send(ctx context.Context, data []byte) (int, error)

	// Receive reads up to maxLen bytes from the bulk-IN endpoint.
	Receive(ctx context.Context, maxLen int) ([]byte, error)

	// Close tears the link down. Close is idempotent: releasing an
	// already-released interface or closing an already-closed device
	// is a safe no-op.
	Close() error
}
