// Package interactive provides the interactive command-line console
// for ptouch-print.
package interactive

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ptouch-protocol/ptouch-go/pkg/protocol"
	"github.com/ptouch-protocol/ptouch-go/pkg/raster"
)

// Console handles interactive mode for ptouch-print.
type Console struct {
	client *protocol.Client
	rl     *readline.Instance

	chain  bool
	precut bool
}

// New creates a new interactive console for the given client.
func New(client *protocol.Client) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ptouch> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Console{
		client: client,
		rl:     rl,
		precut: true,
	}, nil
}

// Run starts the interactive command loop. It returns when the user
// quits or the context is cancelled.
func (c *Console) Run(ctx context.Context) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			c.printHelp()

		case "status", "s":
			c.cmdStatus(ctx)

		case "print", "p":
			c.cmdPrint(ctx, args)

		case "feed", "f":
			c.cmdFeed(ctx, args)

		case "cut":
			c.cmdCut(ctx)

		case "chain":
			c.chain = !c.chain
			fmt.Printf("chain mode: %v\n", c.chain)

		case "precut":
			c.precut = !c.precut
			fmt.Printf("precut: %v\n", c.precut)

		case "stats":
			c.cmdStats()

		case "reset":
			c.client.ResetStats()
			fmt.Println("statistics cleared")

		case "quit", "q", "exit":
			return

		default:
			fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	fmt.Println(`Commands:
  status, s          Query printer status
  print, p <file>    Print a PNG file
  feed, f [n]        Feed the tape n steps (default 1)
  cut                Trigger the cutter
  chain              Toggle chain mode
  precut             Toggle precut
  stats              Show transfer statistics
  reset              Clear transfer statistics
  help, ?            Show this help
  quit, q            Exit`)
}

func (c *Console) cmdStatus(ctx context.Context) {
	st, err := c.client.GetStatus(ctx)
	if err != nil {
		fmt.Printf("status query failed: %v\n", err)
		return
	}

	fmt.Printf("media:  %s, %d mm (%d px)\n", st.MediaTypeString(), st.MediaWidthMM, c.client.TapeWidthPixels())
	fmt.Printf("tape:   %s on %s\n", st.TextColorString(), st.TapeColorString())
	if st.HasError() {
		fmt.Printf("error:  %s\n", st.ErrorString())
	} else {
		fmt.Println("ready")
	}
}

func (c *Console) cmdPrint(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: print <file.png>")
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Printf("open failed: %v\n", err)
		return
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		fmt.Printf("decode failed: %v\n", err)
		return
	}

	img, err := raster.Threshold(src, 128)
	if err != nil {
		fmt.Printf("convert failed: %v\n", err)
		return
	}

	opts := protocol.PrintOptions{Chain: c.chain, Precut: c.precut}
	if err := c.client.PrintImage(ctx, img, opts); err != nil {
		fmt.Printf("print failed: %v\n", err)
		return
	}
	fmt.Printf("printed %s (%dx%d)\n", args[0], img.Width(), img.Height())
}

func (c *Console) cmdFeed(ctx context.Context, args []string) {
	n := 1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			fmt.Println("usage: feed [n]")
			return
		}
		n = v
	}

	if err := c.client.FeedTape(ctx, n); err != nil {
		fmt.Printf("feed failed: %v\n", err)
	}
}

func (c *Console) cmdCut(ctx context.Context) {
	if err := c.client.Cut(ctx); err != nil {
		fmt.Printf("cut failed: %v\n", err)
	}
}

func (c *Console) cmdStats() {
	snap := c.client.Stats()
	fmt.Printf("packets: %d total, %d out, %d in\n", snap.TotalPackets, snap.PacketsOut, snap.PacketsIn)
	fmt.Printf("bytes:   %d sent, %d received\n", snap.BytesSent, snap.BytesReceived)
	fmt.Printf("errors:  %d\n", snap.Errors)
	if snap.TotalPackets > 0 {
		fmt.Printf("window:  %s\n", snap.Duration())
	}
}
