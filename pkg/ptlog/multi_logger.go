package ptlog

import "io"

// MultiLogger fans capture events out to several loggers. The usual
// pairing is a FileLogger for the capture file plus a SlogAdapter for
// live console output while debugging a printer session.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger returns a MultiLogger forwarding to all given loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Log forwards the event to every logger in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Close closes every logger that implements io.Closer, such as a
// wrapped FileLogger, and returns the first error encountered.
func (m *MultiLogger) Close() error {
	var first error
	for _, l := range m.loggers {
		c, ok := l.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var _ Logger = (*MultiLogger)(nil)
