// Package protocol implements the P-touch command sequencer.
//
// A Client drives one printer through the connect, print, disconnect
// lifecycle over a transport.Transport. The lifecycle is a small state
// machine:
//
//	Uninitialized -> Connected -> Printing -> Idle
//
// with Error reachable from any state on the first transfer failure.
// There is no retry and no partial recovery inside this package: the
// first failed step aborts the remaining sequence and the caller must
// reconnect to get the printer back into a known state.
//
// The Client is not safe for concurrent use. One caller drives the
// whole lifecycle; external serialization is the caller's job.
package protocol
