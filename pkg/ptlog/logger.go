package ptlog

// Logger is the sink for protocol capture events. The protocol client
// emits one event per USB transfer, per state transition, and per
// transfer error; a Logger receives them in emission order for a given
// connection.
//
// Implementations must be safe for concurrent use. Log should return
// quickly: it runs on the transfer path, between the printer commands
// it is recording.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts a plain function to the Logger interface.
// The function must be safe for concurrent use.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// NoopLogger discards all capture events. The protocol client falls
// back to it when constructed with a nil logger, so capture is opt-in.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
)
