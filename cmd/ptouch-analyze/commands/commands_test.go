package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
)

func writeCapture(t *testing.T, events []ptlog.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.plog")

	logger, err := ptlog.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func frameEvent(ts time.Time, dir analyzer.Direction, data []byte) ptlog.Event {
	return ptlog.Event{
		Timestamp:    ts,
		ConnectionID: "11112222-3333-4444-5555-666677778888",
		Direction:    dir,
		Category:     ptlog.CategoryFrame,
		Frame:        ptlog.NewFrameEvent(data),
	}
}

func TestCollectAggregates(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, []ptlog.Event{
		frameEvent(base, analyzer.DirectionOut, []byte{0x1B, 0x69, 0x53}),
		frameEvent(base.Add(time.Second), analyzer.DirectionIn, make([]byte, 32)),
		frameEvent(base.Add(2*time.Second), analyzer.DirectionOut, []byte{0x4D, 0x02}),
		{
			Timestamp:    base.Add(3 * time.Second),
			ConnectionID: "11112222-3333-4444-5555-666677778888",
			Category:     ptlog.CategoryError,
			Error:        &ptlog.ErrorEventData{Op: "send", Message: "stall"},
		},
	})

	stats, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if stats.TotalEvents != 4 {
		t.Errorf("TotalEvents: got %d, want 4", stats.TotalEvents)
	}
	if stats.Frames != 3 {
		t.Errorf("Frames: got %d, want 3", stats.Frames)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors: got %d, want 1", stats.Errors)
	}
	if got := stats.ByCommand[analyzer.CmdStatusRequest]; got != 1 {
		t.Errorf("status requests: got %d, want 1", got)
	}
	if got := stats.Bytes[analyzer.DirectionOut]; got != 5 {
		t.Errorf("bytes out: got %d, want 5", got)
	}
	if got := stats.Bytes[analyzer.DirectionIn]; got != 32 {
		t.Errorf("bytes in: got %d, want 32", got)
	}
	if got := stats.TimeRange.End.Sub(stats.TimeRange.Start); got != 3*time.Second {
		t.Errorf("time range: got %v, want 3s", got)
	}
}

func TestRunStatsOutput(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, []ptlog.Event{
		frameEvent(base, analyzer.DirectionOut, []byte{0x1B, 0x69, 0x53}),
		frameEvent(base, analyzer.DirectionOut, []byte{0x1B, 0x69, 0x53}),
		frameEvent(base, analyzer.DirectionOut, []byte{0x1A}),
	})

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "STATUS_REQ") {
		t.Errorf("missing histogram entry:\n%s", out)
	}
	if !strings.Contains(out, "FINALIZE") {
		t.Errorf("missing finalize entry:\n%s", out)
	}
}

func TestRunViewFiltersByCommand(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeCapture(t, []ptlog.Event{
		frameEvent(base, analyzer.DirectionOut, []byte{0x1B, 0x69, 0x53}),
		frameEvent(base, analyzer.DirectionOut, []byte{0x1A}),
	})

	var buf bytes.Buffer
	if err := RunView(path, "STATUS_REQ", "", &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "STATUS_REQ") {
		t.Errorf("expected status request in output:\n%s", out)
	}
	if strings.Contains(out, "FINALIZE") {
		t.Errorf("finalize should be filtered out:\n%s", out)
	}
}

func TestRunViewUnknownCommand(t *testing.T) {
	path := writeCapture(t, nil)

	if err := RunView(path, "NOT_A_COMMAND", "", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown command name")
	}
}

func TestRunHexClassifiesLines(t *testing.T) {
	in := strings.NewReader(`
# a capture snippet
1B 69 53
4D02
ff
`)

	var buf bytes.Buffer
	if err := RunHex(in, &buf); err != nil {
		t.Fatalf("RunHex failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "STATUS_REQ") {
		t.Errorf("line 0: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "PACKBITS_EN") {
		t.Errorf("line 1: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "UNKNOWN") {
		t.Errorf("line 2: %q", lines[2])
	}
}

func TestRunHexBadHex(t *testing.T) {
	if err := RunHex(strings.NewReader("zz\n"), &bytes.Buffer{}); err == nil {
		t.Error("expected error for invalid hex")
	}
}
