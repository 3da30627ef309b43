package ptlog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// CaptureExt is the file extension for protocol capture files.
// The ptouch-analyze commands accept any path, but captures written
// through FileLogger carry this extension unless the caller picks one.
const CaptureExt = ".plog"

// FileLogger writes capture events to a file as a CBOR event stream,
// one encoded Event per transfer. It is safe for concurrent use.
type FileLogger struct {
	path    string
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileLogger opens a capture file at path for appending, creating it
// with mode 0644 if needed. If path has no extension, CaptureExt is
// added. Appending to an existing capture is valid: each session writes
// under its own connection ID, and readers can filter on it.
func NewFileLogger(path string) (*FileLogger, error) {
	if filepath.Ext(path) == "" {
		path += CaptureExt
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		path:    path,
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Path returns the path of the capture file, including any extension
// added by NewFileLogger.
func (l *FileLogger) Path() string {
	return l.path
}

// Log appends the event to the capture file. Encoding errors are
// dropped; a failing capture must not abort the print in progress.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	_ = l.encoder.Encode(event)
}

// Close closes the capture file. Close is idempotent, and events
// logged after Close are discarded.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
