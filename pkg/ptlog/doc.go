// Package ptlog provides protocol capture for P-touch printer sessions.
//
// It defines the Logger interface and the Event types the protocol
// client emits for every USB transfer, state transition, and transfer
// error. Capture is separate from operational logging (slog): a capture
// is a complete machine-readable trace of the wire traffic, suitable
// for offline analysis.
//
// # Basic Usage
//
// The capture logger is passed to the protocol client at construction:
//
//	fl, err := ptlog.NewFileLogger("session.plog")
//	if err != nil {
//	    return err
//	}
//	defer fl.Close()
//
//	client := protocol.NewClient(desc, tr, fl)
//
// For live console output during development, wrap an slog.Logger:
//
//	client := protocol.NewClient(desc, tr, ptlog.NewSlogAdapter(slog.Default()))
//
// Or combine both sinks:
//
//	client := protocol.NewClient(desc, tr, ptlog.NewMultiLogger(
//	    fl,
//	    ptlog.NewSlogAdapter(slog.Default()),
//	))
//
// Passing nil to protocol.NewClient disables capture.
//
// # Event Types
//
// Each event carries exactly one payload:
//   - Frame: raw USB transfer bytes with their classified command
//   - StateChange: client lifecycle transitions
//   - Error: transfer or protocol failures
//
// # File Format
//
// Capture files are CBOR event streams, conventionally with the .plog
// extension (see CaptureExt). The ptouch-analyze tool views, filters,
// and summarizes them.
package ptlog
