// Package commands implements the ptouch-analyze CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
)

// RunView prints the capture in human-readable format. Command and
// direction narrow the output when non-empty.
func RunView(path, command, direction string, w io.Writer) error {
	filter := ptlog.Filter{}

	if command != "" {
		cmd, ok := commandByName(command)
		if !ok {
			return fmt.Errorf("unknown command %q", command)
		}
		filter.Command = &cmd
	}
	if direction != "" {
		dir, ok := directionByName(direction)
		if !ok {
			return fmt.Errorf("unknown direction %q (want in or out)", direction)
		}
		filter.Direction = &dir
	}

	reader, err := ptlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event ptlog.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = event.Frame.Command.String()
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s\n", ts, connID, event.Direction, typeLabel)

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.StateChange != nil:
		fmt.Fprintf(w, "  %s -> %s", event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			fmt.Fprintf(w, " (%s)", event.StateChange.Reason)
		}
		fmt.Fprintln(w)
	case event.Error != nil:
		fmt.Fprintf(w, "  %s: %s\n", event.Error.Op, event.Error.Message)
	}

	fmt.Fprintln(w)
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFrameDetails(w io.Writer, frame *ptlog.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(frame.Data))
		if frame.Truncated {
			fmt.Fprint(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func commandByName(name string) (analyzer.Command, bool) {
	name = strings.ToUpper(name)
	for c := analyzer.CmdUnknown; c <= analyzer.CmdCutPaper; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return analyzer.CmdUnknown, false
}

func directionByName(name string) (analyzer.Direction, bool) {
	switch strings.ToLower(name) {
	case "in":
		return analyzer.DirectionIn, true
	case "out":
		return analyzer.DirectionOut, true
	default:
		return 0, false
	}
}
