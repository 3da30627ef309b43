//go:build !cgo

package transport

import (
	"context"
	"errors"
	"fmt"
)

// ErrCgoRequired indicates the binary was built without cgo, so the
// libusb-backed transport is unavailable.
var ErrCgoRequired = errors.New("usb transport requires cgo (built with CGO_ENABLED=0)")

// Enumerate is unavailable without cgo.
func Enumerate() ([]DeviceID, error) {
	return nil, ErrCgoRequired
}

// USBTransport drives a printer over libusb bulk transfers. Without
// cgo it cannot be constructed; every method reports ErrCgoRequired.
type USBTransport struct{}

// Compile-time interface satisfaction check.
var _ Transport = (*USBTransport)(nil)

// OpenUSB is unavailable without cgo.
func OpenUSB(id DeviceID, config Config) (*USBTransport, error) {
	return nil, fmt.Errorf("opening device %04x:%04x: %w", id.VendorID, id.ProductID, ErrCgoRequired)
}

func (t *USBTransport) Send(ctx context.Context, data []byte) (int, error) {
	return 0, ErrCgoRequired
}

func (t *USBTransport) Receive(ctx context.Context, maxLen int) ([]byte, error) {
	return nil, ErrCgoRequired
}

func (t *USBTransport) Close() error {
	return nil
}
