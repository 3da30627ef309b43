package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/ptouch-protocol/ptouch-go/pkg/analyzer"
)

// RunHex classifies hex-encoded frames read from r, one frame per
// line. Whitespace and '#' comments are ignored; blank lines are
// skipped. Each frame prints its classification and size.
func RunHex(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.Map(dropSpace, line)
		if line == "" {
			continue
		}

		data, err := hex.DecodeString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		c := analyzer.Classify(data)
		fmt.Fprintf(w, "%-14s %4d bytes  %s\n", c.Command, len(data), c.Description)
	}
	return scanner.Err()
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\t', ':', ',':
		return -1
	}
	return r
}
