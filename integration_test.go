package ptouch_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptouch-protocol/ptouch-go/internal/testharness/mock"
	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
	"github.com/ptouch-protocol/ptouch-go/pkg/protocol"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
	"github.com/ptouch-protocol/ptouch-go/pkg/raster"
	"github.com/ptouch-protocol/ptouch-go/pkg/status"
	"github.com/ptouch-protocol/ptouch-go/pkg/transport"
)

// TestE2E_PrintLifecycle drives the full detect, connect, print,
// disconnect sequence against a mock transport and verifies both the
// wire traffic and the protocol capture written alongside it.
func TestE2E_PrintLifecycle(t *testing.T) {
	ctx := context.Background()

	// Detection: a PT-P700 shows up on the bus.
	desc, err := protocol.Detect(func() ([]transport.DeviceID, error) {
		return []transport.DeviceID{
			{VendorID: catalog.BrotherVendorID, ProductID: 0x2061},
		}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "PT-P700", desc.Name)

	logPath := filepath.Join(t.TempDir(), "session.plog")
	logger, err := ptlog.NewFileLogger(logPath)
	require.NoError(t, err)

	tr := mock.NewTransport()
	tr.QueueStatus(&status.Status{
		PrintheadMark: 0x80,
		Size:          0x20,
		BrotherCode:   'B',
		SeriesCode:    '0',
		MediaWidthMM:  12,
	})

	client := protocol.NewClient(desc, tr, logger)

	require.NoError(t, client.Connect(ctx))
	require.Equal(t, protocol.StateConnected, client.State())

	img, err := raster.NewImage(10, 76)
	require.NoError(t, err)
	img.FillRect(0, 0, 10, 76, true)

	require.NoError(t, client.PrintImage(ctx, img, protocol.PrintOptions{Precut: true}))
	require.Equal(t, protocol.StateIdle, client.State())

	require.NoError(t, client.Disconnect())
	require.NoError(t, logger.Close())

	// The wire traffic matches the published sequence for this model.
	counts := make(map[analyzer.Command]int)
	for _, f := range tr.SentFrames() {
		counts[analyzer.Classify(f).Command]++
	}
	assert.Equal(t, 2, counts[analyzer.CmdInit]) // ESC @ plus long form
	assert.Equal(t, 1, counts[analyzer.CmdStatusRequest])
	assert.Equal(t, 1, counts[analyzer.CmdPackBitsEnable])
	assert.Equal(t, 1, counts[analyzer.CmdRasterStart])
	assert.Equal(t, 1, counts[analyzer.CmdPrecut])
	assert.Equal(t, 10, counts[analyzer.CmdRasterLine])
	assert.Equal(t, 1, counts[analyzer.CmdFinalize])

	// The capture replays the same story.
	reader, err := ptlog.NewReader(logPath)
	require.NoError(t, err)
	defer reader.Close()

	frames := 0
	states := 0
	for {
		e, err := reader.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		require.Equal(t, client.ConnectionID(), e.ConnectionID)
		switch {
		case e.Frame != nil:
			frames++
		case e.StateChange != nil:
			states++
		}
	}
	// One frame event per transfer: sends plus the status reply.
	assert.Equal(t, len(tr.SentFrames())+1, frames)
	assert.GreaterOrEqual(t, states, 3)
}

// TestE2E_TransferFailure verifies that a mid-job transfer failure
// aborts the sequence and leaves the client in the error state.
func TestE2E_TransferFailure(t *testing.T) {
	ctx := context.Background()

	desc, ok := catalog.Lookup(catalog.BrotherVendorID, 0x2074) // PT-D600
	require.True(t, ok)

	tr := mock.NewTransport()
	tr.QueueStatus(&status.Status{
		PrintheadMark: 0x80,
		Size:          0x20,
		BrotherCode:   'B',
		SeriesCode:    '0',
		MediaWidthMM:  12,
	})

	client := protocol.NewClient(desc, tr, nil)
	require.NoError(t, client.Connect(ctx))

	sends := 0
	tr.OnSend = func([]byte) {
		sends++
		if sends == 4 {
			tr.SendErr = &transport.TransferError{Op: "send", Status: transport.StatusStall}
		}
	}

	img, err := raster.NewImage(6, 76)
	require.NoError(t, err)
	img.FillRect(0, 0, 6, 76, true)

	err = client.PrintImage(ctx, img, protocol.PrintOptions{})
	var printErr *protocol.PrintError
	require.ErrorAs(t, err, &printErr)
	assert.Equal(t, protocol.StateError, client.State())

	// Recovery means reconnecting from scratch.
	require.NoError(t, client.Disconnect())
	assert.Equal(t, protocol.StateUninitialized, client.State())

	snap := client.Stats()
	assert.Equal(t, uint64(1), snap.Errors)
}
