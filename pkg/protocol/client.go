package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
	"github.com/ptouch-protocol/ptouch-go/pkg/raster"
	"github.com/ptouch-protocol/ptouch-go/pkg/status"
	"github.com/ptouch-protocol/ptouch-go/pkg/transport"
)

// initSettleTime is how long the printer needs after a reset frame
// before it accepts further commands.
const initSettleTime = 100 * time.Millisecond

// PrintOptions control a single print job.
type PrintOptions struct {
	// Chain keeps the label in the printer so the next job continues
	// on the same strip without a feed between labels.
	Chain bool

	// Precut cuts the leader before the first label on models with a
	// precut stage. Ignored elsewhere.
	Precut bool
}

// Client drives one printer through the connect/print/disconnect
// lifecycle. Not safe for concurrent use.
type Client struct {
	desc  catalog.Descriptor
	tr    transport.Transport
	state State

	connID string
	logger ptlog.Logger
	stats  *analyzer.Stats

	lastStatus  *status.Status
	tapeWidthPx int

	// sleep is injectable so tests do not pay the settle delays.
	sleep func(time.Duration)
}

// NewClient creates a sequencer for the given printer over the given
// transport. Logger may be nil to disable protocol capture.
func NewClient(desc catalog.Descriptor, tr transport.Transport, logger ptlog.Logger) *Client {
	if logger == nil {
		logger = ptlog.NoopLogger{}
	}
	return &Client{
		desc:   desc,
		tr:     tr,
		state:  StateUninitialized,
		connID: uuid.NewString(),
		logger: logger,
		stats:  analyzer.NewStats(),
		sleep:  time.Sleep,
	}
}

// Detect enumerates the bus and returns the descriptor of the first
// supported printer. Models in P-Lite mode or without raster support
// are rejected with distinct errors so the caller can tell the user
// what to do about it.
func Detect(enumerate func() ([]transport.DeviceID, error)) (catalog.Descriptor, error) {
	if enumerate == nil {
		enumerate = transport.Enumerate
	}

	ids, err := enumerate()
	if err != nil {
		return catalog.Descriptor{}, fmt.Errorf("enumerate: %w", err)
	}

	for _, id := range ids {
		desc, ok := catalog.Lookup(id.VendorID, id.ProductID)
		if !ok {
			continue
		}
		if desc.Capabilities.PLite {
			return catalog.Descriptor{}, fmt.Errorf("%s: %w", desc.Name, ErrPLiteMode)
		}
		if desc.Capabilities.UnsupportedRaster {
			return catalog.Descriptor{}, fmt.Errorf("%s: %w", desc.Name, ErrUnsupportedRaster)
		}
		return desc, nil
	}
	return catalog.Descriptor{}, ErrNoPrinter
}

// ListSupportedDevices returns every connectable model in the catalog.
func ListSupportedDevices() []catalog.Descriptor {
	return catalog.Supported()
}

// State returns the current lifecycle state.
func (c *Client) State() State { return c.state }

// Descriptor returns the printer's catalog entry.
func (c *Client) Descriptor() catalog.Descriptor { return c.desc }

// ConnectionID returns the session UUID used in protocol logs.
func (c *Client) ConnectionID() string { return c.connID }

// Name returns the printer model name.
func (c *Client) Name() string { return c.desc.Name }

// MaxWidth returns the printable width in pixels.
func (c *Client) MaxWidth() int { return c.desc.MaxPixelWidth }

// DPI returns the print resolution.
func (c *Client) DPI() int { return c.desc.DPI }

// TapeWidthPixels returns the printable height for the loaded tape, as
// learned from the last status query. Zero before the first query.
func (c *Client) TapeWidthPixels() int { return c.tapeWidthPx }

// LastStatus returns the most recent decoded status, or nil.
func (c *Client) LastStatus() *status.Status { return c.lastStatus }

// Stats returns a snapshot of the session's transfer statistics.
func (c *Client) Stats() analyzer.Snapshot { return c.stats.Snapshot() }

// ResetStats clears the session's transfer statistics.
func (c *Client) ResetStats() { c.stats.Reset() }

// Connect performs the initialization handshake. On any failure the
// client enters StateError and returns a ConnectionError.
func (c *Client) Connect(ctx context.Context) error {
	if c.desc.Capabilities.P700Init {
		if err := c.send(ctx, initCommand()); err != nil {
			c.fail("connect")
			return &ConnectionError{Op: "init", Err: err}
		}
		c.sleep(initSettleTime)
	}

	if err := c.send(ctx, invalidateInit()); err != nil {
		c.fail("connect")
		return &ConnectionError{Op: "invalidate", Err: err}
	}
	c.sleep(initSettleTime)

	c.setState(StateConnected, "handshake complete")
	return nil
}

// GetStatus queries the printer and decodes the 32-byte reply. A reply
// of any other length is a ProtocolError. The tape width in pixels is
// refreshed from the reported media width; an unknown width keeps the
// previous value.
func (c *Client) GetStatus(ctx context.Context) (*status.Status, error) {
	if c.state == StateUninitialized {
		return nil, ErrNotConnected
	}

	if err := c.send(ctx, statusRequest()); err != nil {
		c.fail("status request")
		return nil, err
	}

	reply, err := c.receive(ctx, status.FrameLength)
	if err != nil {
		c.fail("status reply")
		return nil, err
	}

	st, err := status.Decode(reply)
	if err != nil {
		return nil, &ProtocolError{Op: "status decode", Err: err}
	}

	c.lastStatus = st
	if px, ok := st.TapeWidthPixels(); ok {
		c.tapeWidthPx = px
	}
	return st, nil
}

// PrintImage runs the full raster print sequence for one image. The
// image is printed rotated: each image column becomes one raster line
// spanning the tape height. The first failing step aborts the sequence
// and is returned wrapped in a PrintError.
func (c *Client) PrintImage(ctx context.Context, img *raster.Image, opts PrintOptions) error {
	if c.state == StateUninitialized {
		return ErrNotConnected
	}

	st, err := c.GetStatus(ctx)
	if err != nil {
		return &PrintError{Step: "status", Err: err}
	}
	if st.HasError() {
		return &PrintError{Step: "status", Err: fmt.Errorf("printer reports: %s", st.ErrorString())}
	}

	if c.tapeWidthPx == 0 || img.Height() > c.tapeWidthPx {
		return &PrintError{Step: "dimensions", Err: &DimensionError{
			HeightPx: img.Height(),
			TapePx:   c.tapeWidthPx,
		}}
	}

	c.setState(StatePrinting, "print job")

	caps := c.desc.Capabilities
	if caps.PackBits {
		if err := c.printStep(ctx, "packbits enable", packBitsEnable()); err != nil {
			return err
		}
	}

	if err := c.printStep(ctx, "raster start", rasterStart(caps.P700Init)); err != nil {
		return err
	}

	if caps.UseInfoCommand {
		cmd := infoCommand(st.MediaWidthMM, uint32(img.Width()), caps.D460BTMagic)
		if err := c.printStep(ctx, "info", cmd); err != nil {
			return err
		}
	}

	if caps.D460BTMagic {
		if err := c.printStep(ctx, "chain", chainCommand()); err != nil {
			return err
		}
		if err := c.printStep(ctx, "magic", magicCommand()); err != nil {
			return err
		}
	}

	if caps.Precut {
		if err := c.printStep(ctx, "precut", precut(opts.Precut)); err != nil {
			return err
		}
	}

	enc := raster.NewEncoder(c.desc)
	offset := enc.CenterOffset(img.Height())
	for x := 0; x < img.Width(); x++ {
		line, err := enc.EncodeColumn(img, x, offset)
		if err != nil {
			c.fail("raster line")
			return &PrintError{Step: "raster line", Err: err}
		}
		if err := c.printStep(ctx, "raster line", enc.FrameLine(line)); err != nil {
			return err
		}
	}

	if err := c.printStep(ctx, "finalize", finalize()); err != nil {
		return err
	}
	if !opts.Chain {
		if err := c.printStep(ctx, "feed print", feedPrint()); err != nil {
			return err
		}
	}

	c.setState(StateIdle, "print complete")
	return nil
}

// FeedTape advances the tape by n steps.
func (c *Client) FeedTape(ctx context.Context, n int) error {
	if c.state == StateUninitialized {
		return ErrNotConnected
	}
	for i := 0; i < n; i++ {
		if err := c.send(ctx, feedCommand()); err != nil {
			c.fail("feed")
			return err
		}
	}
	return nil
}

// Cut triggers the cutter.
func (c *Client) Cut(ctx context.Context) error {
	if c.state == StateUninitialized {
		return ErrNotConnected
	}
	if err := c.send(ctx, cutCommand()); err != nil {
		c.fail("cut")
		return err
	}
	return nil
}

// SetPageFlags sets the feed amount, auto-cut and mirror bits for
// subsequent labels.
func (c *Client) SetPageFlags(ctx context.Context, flags byte) error {
	if c.state == StateUninitialized {
		return ErrNotConnected
	}
	if err := c.send(ctx, pageFlags(flags)); err != nil {
		c.fail("page flags")
		return err
	}
	return nil
}

// Disconnect tears down the transport and returns the client to
// StateUninitialized. Safe to call multiple times.
func (c *Client) Disconnect() error {
	if c.state == StateUninitialized {
		return nil
	}
	c.setState(StateUninitialized, "disconnect")
	return c.tr.Close()
}

// printStep sends one frame of the print sequence, failing the whole
// job on error.
func (c *Client) printStep(ctx context.Context, step string, frame []byte) error {
	if err := c.send(ctx, frame); err != nil {
		c.fail(step)
		return &PrintError{Step: step, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, data []byte) error {
	_, err := c.tr.Send(ctx, data)
	c.stats.Record(analyzer.DirectionOut, data, err != nil)
	c.logFrame(analyzer.DirectionOut, data, err)
	return err
}

func (c *Client) receive(ctx context.Context, maxLen int) ([]byte, error) {
	data, err := c.tr.Receive(ctx, maxLen)
	c.stats.Record(analyzer.DirectionIn, data, err != nil)
	c.logFrame(analyzer.DirectionIn, data, err)
	return data, err
}

func (c *Client) logFrame(dir analyzer.Direction, data []byte, err error) {
	if err != nil {
		c.logger.Log(ptlog.Event{
			Timestamp:    time.Now(),
			ConnectionID: c.connID,
			Direction:    dir,
			Category:     ptlog.CategoryError,
			Model:        c.desc.Name,
			Error:        &ptlog.ErrorEventData{Op: dir.String(), Message: err.Error()},
		})
		return
	}
	c.logger.Log(ptlog.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Direction:    dir,
		Category:     ptlog.CategoryFrame,
		Model:        c.desc.Name,
		Frame:        ptlog.NewFrameEvent(data),
	})
}

func (c *Client) setState(next State, reason string) {
	if c.state == next {
		return
	}
	old := c.state
	c.state = next
	c.logger.Log(ptlog.Event{
		Timestamp:    time.Now(),
		ConnectionID: c.connID,
		Category:     ptlog.CategoryState,
		Model:        c.desc.Name,
		StateChange: &ptlog.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
			Reason:   reason,
		},
	})
}

func (c *Client) fail(reason string) {
	c.setState(StateError, reason)
}
