package protocol

import (
	"errors"
	"fmt"
)

// ErrNoPrinter indicates no supported printer was found on the bus.
var ErrNoPrinter = errors.New("no supported printer found")

// ErrPLiteMode indicates the printer sits in P-Lite mass-storage mode.
// The user must flip the physical mode switch (hold the P-Lite button
// until the Editor Lite LED turns off) before this protocol works.
var ErrPLiteMode = errors.New("printer is in P-Lite mode, switch it to E(scape)P(OS) mode first")

// ErrUnsupportedRaster indicates the model is recognized but its
// raster protocol is not implemented.
var ErrUnsupportedRaster = errors.New("raster printing is not supported for this model")

// ErrNotConnected indicates an operation that needs an established
// connection was called before Connect.
var ErrNotConnected = errors.New("printer not connected")

// ConnectionError wraps a failure while establishing or tearing down a
// printer connection.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError indicates the printer sent something malformed, such
// as a status reply of the wrong length.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// PrintError wraps a failure during the print sequence. Step names the
// sequence step that failed.
type PrintError struct {
	Step string
	Err  error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("print %s: %v", e.Step, e.Err)
}

func (e *PrintError) Unwrap() error { return e.Err }

// DimensionError indicates the image height exceeds the printable
// width of the loaded tape.
type DimensionError struct {
	HeightPx int
	TapePx   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("image height %dpx exceeds tape width %dpx", e.HeightPx, e.TapePx)
}
