//go:build cgo

package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// Enumerate lists the (vendor ID, product ID) pairs of every device
// currently on the bus, without opening any of them.
func Enumerate() ([]DeviceID, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var ids []DeviceID
	devs, err := ctx.OpenDevices(func(d *gousb.DeviceDesc) bool {
		ids = append(ids, DeviceID{uint16(d.Vendor), uint16(d.Product)})
		return false
	})
	for _, d := range devs {
		d.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("enumerating usb bus: %w", err)
	}
	return ids, nil
}

// USBTransport drives a printer over libusb bulk transfers.
type USBTransport struct {
	config Config

	mu     sync.Mutex
	closed bool

	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	in   *gousb.InEndpoint
	out  *gousb.OutEndpoint
}

// Compile-time interface satisfaction check.
var _ Transport = (*USBTransport)(nil)

// OpenUSB opens the first device matching id, claims interface 0 and
// discovers its bulk endpoints. The caller must Close the transport.
func OpenUSB(id DeviceID, config Config) (*USBTransport, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(id.VendorID), gousb.ID(id.ProductID))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("opening device %04x:%04x: %w", id.VendorID, id.ProductID, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: %04x:%04x", ErrNoDevice, id.VendorID, id.ProductID)
	}

	// The kernel usblp driver usually owns the printer; detach it
	// while we hold the interface.
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("setting auto-detach: %w", err)
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("selecting configuration 1: %w", err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claiming interface 0: %w", err)
	}

	t := &USBTransport{
		config: config,
		ctx:    ctx,
		dev:    dev,
		cfg:    cfg,
		intf:   intf,
	}
	if err := t.discoverEndpoints(); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// discoverEndpoints picks the lowest-numbered bulk endpoint in each
// direction from the claimed interface setting.
func (t *USBTransport) discoverEndpoints() error {
	inNum, outNum := -1, -1
	for _, ep := range t.intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch ep.Direction {
		case gousb.EndpointDirectionIn:
			if inNum < 0 || ep.Number < inNum {
				inNum = ep.Number
			}
		case gousb.EndpointDirectionOut:
			if outNum < 0 || ep.Number < outNum {
				outNum = ep.Number
			}
		}
	}
	if inNum < 0 || outNum < 0 {
		return ErrNoBulkEndpoints
	}

	in, err := t.intf.InEndpoint(inNum)
	if err != nil {
		return fmt.Errorf("opening bulk-IN endpoint %d: %w", inNum, err)
	}
	out, err := t.intf.OutEndpoint(outNum)
	if err != nil {
		return fmt.Errorf("opening bulk-OUT endpoint %d: %w", outNum, err)
	}
	t.in, t.out = in, out
	return nil
}

// Send writes one packet to the bulk-OUT endpoint.
func (t *USBTransport) Send(ctx context.Context, data []byte) (int, error) {
	if len(data) > MaxPacketSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, len(data))
	}
	if t.isClosed() {
		return 0, ErrClosed
	}

	ctx, cancel := t.withDeadline(ctx)
	defer cancel()

	n, err := t.out.WriteContext(ctx, data)
	if err != nil {
		return n, &TransferError{Op: "send", Status: statusFromError(err), Err: err}
	}
	return n, nil
}

// Receive reads up to maxLen bytes from the bulk-IN endpoint.
func (t *USBTransport) Receive(ctx context.Context, maxLen int) ([]byte, error) {
	if t.isClosed() {
		return nil, ErrClosed
	}

	ctx, cancel := t.withDeadline(ctx)
	defer cancel()

	buf := make([]byte, maxLen)
	n, err := t.in.ReadContext(ctx, buf)
	if err != nil {
		return nil, &TransferError{Op: "receive", Status: statusFromError(err), Err: err}
	}
	return buf[:n], nil
}

// Close releases the interface and closes the device. Safe to call
// more than once.
func (t *USBTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	if t.intf != nil {
		t.intf.Close()
		t.intf = nil
	}

	var firstErr error
	if t.cfg != nil {
		if err := t.cfg.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.cfg = nil
	}
	if t.dev != nil {
		if err := t.dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.dev = nil
	}
	if t.ctx != nil {
		if err := t.ctx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.ctx = nil
	}
	return firstErr
}

func (t *USBTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// withDeadline applies the configured default deadline when the caller
// did not set one.
func (t *USBTransport) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.config.Deadline())
}

// statusFromError maps driver errors onto transfer status codes.
// Unrecognized errors report as UNKNOWN_ERROR.
func statusFromError(err error) StatusCode {
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gousb.TransferTimedOut),
		errors.Is(err, gousb.ErrorTimeout):
		return StatusTimeout
	case errors.Is(err, context.Canceled),
		errors.Is(err, gousb.TransferCancelled):
		return StatusCancelled
	case errors.Is(err, gousb.TransferStall),
		errors.Is(err, gousb.ErrorPipe):
		return StatusStall
	case errors.Is(err, gousb.TransferNoDevice),
		errors.Is(err, gousb.ErrorNoDevice):
		return StatusNotResponding
	case errors.Is(err, gousb.TransferOverflow),
		errors.Is(err, gousb.ErrorOverflow):
		return StatusDataOverrun
	default:
		return StatusCode(-1)
	}
}
