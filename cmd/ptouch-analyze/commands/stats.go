package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents int
	Frames      int
	StateEvents int
	Errors      int

	ByCommand   map[analyzer.Command]int
	ByDirection map[analyzer.Direction]int
	Bytes       map[analyzer.Direction]int

	Connections map[string]int

	TimeRange struct {
		Start time.Time
		End   time.Time
	}
}

// Collect reads the whole capture and aggregates it.
func Collect(path string) (*Stats, error) {
	reader, err := ptlog.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		ByCommand:   make(map[analyzer.Command]int),
		ByDirection: make(map[analyzer.Direction]int),
		Bytes:       make(map[analyzer.Direction]int),
		Connections: make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event ptlog.Event) {
	s.TotalEvents++
	s.Connections[event.ConnectionID]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	switch {
	case event.Frame != nil:
		s.Frames++
		s.ByCommand[event.Frame.Command]++
		s.ByDirection[event.Direction]++
		s.Bytes[event.Direction] += event.Frame.Size
	case event.StateChange != nil:
		s.StateEvents++
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events:      %d (%d frames, %d state, %d errors)\n",
		stats.TotalEvents, stats.Frames, stats.StateEvents, stats.Errors)
	fmt.Fprintf(w, "Sessions:    %d\n", len(stats.Connections))
	if !stats.TimeRange.Start.IsZero() {
		fmt.Fprintf(w, "Time range:  %s .. %s (%s)\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339),
			stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Traffic:     %d bytes out, %d bytes in\n",
		stats.Bytes[analyzer.DirectionOut], stats.Bytes[analyzer.DirectionIn])

	if len(stats.ByCommand) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Frames by command:")
		printHistogram(w, stats.ByCommand)
	}
	return nil
}

// printHistogram prints commands sorted by descending count.
func printHistogram(w io.Writer, counts map[analyzer.Command]int) {
	type row struct {
		cmd   analyzer.Command
		count int
	}
	rows := make([]row, 0, len(counts))
	max := 0
	for cmd, n := range counts {
		rows = append(rows, row{cmd, n})
		if n > max {
			max = n
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].cmd < rows[j].cmd
	})

	for _, r := range rows {
		bar := barLength(r.count, max, 40)
		fmt.Fprintf(w, "  %-14s %6d  %s\n", r.cmd, r.count, bar)
	}
}

func barLength(n, max, width int) string {
	if max == 0 {
		return ""
	}
	l := n * width / max
	if l == 0 && n > 0 {
		l = 1
	}
	out := make([]byte, l)
	for i := range out {
		out[i] = '#'
	}
	return string(out)
}
