// Package transport abstracts the USB link to a printer.
//
// The transport layer handles:
//   - device enumeration and opening by (vendor ID, product ID)
//   - claiming interface 0 and discovering the bulk endpoints
//   - bulk transfers with a bounded per-transfer deadline
//   - idempotent teardown
//
// It knows nothing about printer semantics; pkg/protocol drives it.
// The hardware completes transfers asynchronously; the historical
// host-side loop polled completion up to a fixed attempt ceiling. That
// bounded-attempts behavior is kept but expressed as a single blocking
// call whose deadline is PollInterval times MaxAttempts.
package transport
