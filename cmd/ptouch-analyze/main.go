// Command ptouch-analyze inspects P-touch protocol captures.
//
// Captures are created by running ptouch-print with the -log-file flag,
// which writes a CBOR event stream. The hex command classifies raw
// frames from a hex dump instead.
//
// Usage:
//
//	ptouch-analyze <command> [flags] <file>
//
// Commands:
//
//	view     View a capture in human-readable format
//	stats    Show a per-command histogram and traffic totals
//	hex      Classify hex-encoded frames, one per line (use - for stdin)
//
// Examples:
//
//	# View all captured events
//	ptouch-analyze view session.plog
//
//	# View only raster lines
//	ptouch-analyze view -command RASTER_LINE session.plog
//
//	# Traffic summary
//	ptouch-analyze stats session.plog
//
//	# Classify frames pasted from a USB sniffer
//	ptouch-analyze hex -
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ptouch-protocol/ptouch-go/cmd/ptouch-analyze/commands"
	"github.com/ptouch-protocol/ptouch-go/pkg/version"
)

const usage = `ptouch-analyze - P-touch protocol capture analyzer

Usage:
  ptouch-analyze <command> [flags] <file>

Commands:
  view     View a capture in human-readable format
  stats    Show a per-command histogram and traffic totals
  hex      Classify hex-encoded frames, one per line (use - for stdin)

Use "ptouch-analyze <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "stats":
		runStats(args)
	case "hex":
		runHex(args)
	case "version", "-version", "--version":
		fmt.Printf("ptouch-analyze %s\n", version.String())
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	command := fs.String("command", "", "Only show frames classified as this command (e.g. RASTER_LINE)")
	direction := fs.String("direction", "", "Only show transfers in this direction: in, out")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ptouch-analyze view [flags] <file.plog>")
		os.Exit(1)
	}

	if err := commands.RunView(fs.Arg(0), *command, *direction, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ptouch-analyze stats <file.plog>")
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runHex(args []string) {
	fs := flag.NewFlagSet("hex", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ptouch-analyze hex <file|->")
		os.Exit(1)
	}

	in := os.Stdin
	if fs.Arg(0) != "-" {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	if err := commands.RunHex(in, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
