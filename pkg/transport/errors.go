package transport

import (
	"errors"
	"fmt"
)

// StatusCode is the terminal status of a bulk transfer, mirroring the
// host controller's completion codes.
type StatusCode int

// Transfer completion codes.
const (
	StatusCompleted StatusCode = iota
	StatusCRCError
	StatusBitStuffError
	StatusDataToggleError
	StatusStall
	StatusNotResponding
	StatusPIDCheckFailure
	StatusUnexpectedPID
	StatusDataOverrun
	StatusDataUnderrun
	StatusBufferOverrun
	StatusBufferUnderrun
	StatusTimeout
	StatusCancelled
)

// String returns the status name.
func (s StatusCode) String() string {
	switch s {
	case StatusCompleted:
		return "SUCCESS"
	case StatusCRCError:
		return "ERROR_CRC"
	case StatusBitStuffError:
		return "ERROR_BITSTUFF"
	case StatusDataToggleError:
		return "ERROR_DATA_TOGGLE"
	case StatusStall:
		return "ERROR_STALL"
	case StatusNotResponding:
		return "ERROR_DEVICE_NOT_RESPONDING"
	case StatusPIDCheckFailure:
		return "ERROR_PID_CHECK_FAILURE"
	case StatusUnexpectedPID:
		return "ERROR_UNEXPECTED_PID"
	case StatusDataOverrun:
		return "ERROR_DATA_OVERRUN"
	case StatusDataUnderrun:
		return "ERROR_DATA_UNDERRUN"
	case StatusBufferOverrun:
		return "ERROR_BUFFER_OVERRUN"
	case StatusBufferUnderrun:
		return "ERROR_BUFFER_UNDERRUN"
	case StatusTimeout:
		return "ERROR_TIMEOUT"
	case StatusCancelled:
		return "ERROR_CANCELLED"
	default:
		return "UNKNOWN_ERROR"
	}
}

// TransferError is a failed bulk transfer. A Status of StatusTimeout
// means the poll ceiling elapsed without completion; any other status
// is a hardware-reported failure (stall, CRC error, ...).
type TransferError struct {
	// Op is "send" or "receive".
	Op string

	// Status is the terminal transfer status.
	Status StatusCode

	// Err is the underlying driver error, if any.
	Err error
}

// Error implements the error interface.
func (e *TransferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("usb %s: %s: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("usb %s: %s", e.Op, e.Status)
}

// Unwrap returns the underlying driver error.
func (e *TransferError) Unwrap() error { return e.Err }

// Timeout reports whether the transfer timed out.
func (e *TransferError) Timeout() bool { return e.Status == StatusTimeout }

// IsTimeout reports whether err is a transfer timeout.
func IsTimeout(err error) bool {
	var te *TransferError
	return errors.As(err, &te) && te.Timeout()
}
