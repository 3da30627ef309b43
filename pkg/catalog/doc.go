// Package catalog holds the static table of supported Brother P-touch
// printers and the tape geometry tables.
//
// A printer is identified by its USB (vendor ID, product ID) pair. The
// catalog maps that pair to a Descriptor carrying the model name, the
// maximum printable width and the per-model capability set that drives
// command sequencing in pkg/protocol.
package catalog
