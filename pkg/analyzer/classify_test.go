package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	longInit := make([]byte, 102)
	longInit[100] = 0x1B
	longInit[101] = 0x40

	almostInit := make([]byte, 102)
	almostInit[50] = 0x01
	almostInit[100] = 0x1B
	almostInit[101] = 0x40

	tests := []struct {
		name string
		data []byte
		want Command
	}{
		{"empty", nil, CmdUnknown},
		{"status request", []byte{0x1B, 0x69, 0x53}, CmdStatusRequest},
		{"info", []byte{0x1B, 0x69, 0x7A, 0x00, 0x00}, CmdInfo},
		{"raster start standard", []byte{0x1B, 0x69, 0x52, 0x01}, CmdRasterStart},
		{"raster start p700", []byte{0x1B, 0x69, 0x61, 0x01}, CmdRasterStart},
		{"precut", []byte{0x1B, 0x69, 0x4D, 0x40}, CmdPrecut},
		{"chain", []byte{0x1B, 0x69, 0x4B, 0x00}, CmdD460BTChain},
		{"magic", []byte{0x1B, 0x69, 0x64, 0x0E, 0x00, 0x4D, 0x00}, CmdD460BTMagic},
		{"short init", []byte{0x1B, 0x40}, CmdInit},
		{"packbits enable", []byte{0x4D, 0x02}, CmdPackBitsEnable},
		{"raster line", []byte{0x47, 0x10, 0x00, 0xFF}, CmdRasterLine},
		{"finalize", []byte{0x1A}, CmdFinalize},
		{"cut paper", []byte{0x0C}, CmdCutPaper},
		{"feed paper", []byte{0x5A}, CmdFeedPaper},
		{"long init", longInit, CmdInit},
		{"long init with stray byte", almostInit, CmdUnknown},
		{"unknown single byte", []byte{0xFF}, CmdUnknown},
		{"unknown esc sequence", []byte{0x1B, 0x69, 0x99}, CmdUnknown},
		{"bare esc", []byte{0x1B}, CmdUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.data)
			if got.Command != tt.want {
				t.Errorf("Classify(% X) = %s, want %s", tt.data, got.Command, tt.want)
			}
			if got.Description == "" {
				t.Error("Description must never be empty")
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	data := []byte{0x1B, 0x69, 0x53}
	first := Classify(data)
	second := Classify(data)
	assert.Equal(t, first, second)
}

func TestDescribeP700Variant(t *testing.T) {
	got := Classify([]byte{0x1B, 0x69, 0x61, 0x01})
	assert.Equal(t, "Start raster mode (P700)", got.Description)

	got = Classify([]byte{0x1B, 0x69, 0x52, 0x01})
	assert.Equal(t, "Start raster mode", got.Description)
}

func TestCommandNames(t *testing.T) {
	for c := CmdUnknown; c <= CmdCutPaper; c++ {
		assert.NotEmpty(t, c.String())
	}
	assert.Equal(t, "PAGE_FLAGS", CmdPageFlags.String())
	assert.Equal(t, "UNKNOWN", Command(0xFF).String())
}

func TestClassifyPageFlagsAsPrecut(t *testing.T) {
	// ESC i M carries both precut mode and page flags; on the wire
	// they are the same frame, so classification settles on precut.
	for _, flags := range []byte{0x00, 0x08, 0x0C, 0x1A, 0x40 | 0x1A} {
		got := Classify([]byte{0x1B, 0x69, 0x4D, flags})
		assert.Equal(t, CmdPrecut, got.Command)
	}
}

func TestStatsRecord(t *testing.T) {
	st := NewStats()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	st.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	st.Record(DirectionOut, make([]byte, 102), false)
	st.Record(DirectionOut, make([]byte, 4), false)
	st.Record(DirectionIn, make([]byte, 32), false)
	st.Record(DirectionOut, make([]byte, 19), true)

	s := st.Snapshot()
	assert.Equal(t, uint64(4), s.TotalPackets)
	assert.Equal(t, uint64(3), s.PacketsOut)
	assert.Equal(t, uint64(1), s.PacketsIn)
	assert.Equal(t, uint64(125), s.BytesSent)
	assert.Equal(t, uint64(32), s.BytesReceived)
	assert.Equal(t, uint64(1), s.Errors)
	assert.Equal(t, 3*time.Second, s.Duration())
}

func TestStatsReset(t *testing.T) {
	st := NewStats()
	st.Record(DirectionOut, []byte{0x1A}, false)
	st.Reset()

	s := st.Snapshot()
	assert.Equal(t, Snapshot{}, s)
	assert.Equal(t, time.Duration(0), s.Duration())
}
