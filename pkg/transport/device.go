package transport

import "errors"

// DeviceID identifies a device on the bus.
type DeviceID struct {
	VendorID  uint16
	ProductID uint16
}

// ErrNoDevice indicates that no matching device is on the bus.
var ErrNoDevice = errors.New("usb device not found")

// ErrNoBulkEndpoints indicates that interface 0 exposes no bulk
// endpoint pair.
var ErrNoBulkEndpoints = errors.New("no bulk IN/OUT endpoint pair on interface 0")
