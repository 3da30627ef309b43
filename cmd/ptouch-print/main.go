// Command ptouch-print drives a Brother P-touch label printer over USB.
//
// Usage:
//
//	ptouch-print [flags]
//
// Flags:
//
//	-list               List supported printer models and exit
//	-status             Query and print the current printer status
//	-image string       PNG file to print (black pixels are printed)
//	-chain              Keep the label in the printer (no feed between jobs)
//	-no-precut          Disable the precut stage on models that have one
//	-feed int           Feed the tape n steps
//	-cut                Trigger the cutter
//	-config string      YAML configuration file path
//	-log-file string    Write a CBOR protocol log to this file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-interactive        Start the interactive console
//
// Examples:
//
//	# Show the loaded tape and any printer errors
//	ptouch-print -status
//
//	# Print a label and capture the protocol exchange
//	ptouch-print -image label.png -log-file session.plog
//
//	# Print several labels on one strip
//	ptouch-print -image first.png -chain
//	ptouch-print -image second.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/ptouch-protocol/ptouch-go/cmd/ptouch-print/interactive"
	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
	"github.com/ptouch-protocol/ptouch-go/pkg/protocol"
	"github.com/ptouch-protocol/ptouch-go/pkg/ptlog"
	"github.com/ptouch-protocol/ptouch-go/pkg/raster"
	"github.com/ptouch-protocol/ptouch-go/pkg/transport"
	"github.com/ptouch-protocol/ptouch-go/pkg/version"
)

var config Config

func init() {
	flag.BoolVar(&config.List, "list", false, "List supported printer models and exit")
	flag.BoolVar(&config.Status, "status", false, "Query and print the current printer status")
	flag.StringVar(&config.Image, "image", "", "PNG file to print (black pixels are printed)")
	flag.BoolVar(&config.Chain, "chain", false, "Keep the label in the printer (no feed between jobs)")
	flag.BoolVar(&config.NoPrecut, "no-precut", false, "Disable the precut stage on models that have one")
	flag.IntVar(&config.Feed, "feed", 0, "Feed the tape n steps")
	flag.BoolVar(&config.Cut, "cut", false, "Trigger the cutter")
	flag.StringVar(&config.ConfigFile, "config", "", "YAML configuration file path")
	flag.StringVar(&config.LogFile, "log-file", "", "Write a CBOR protocol log to this file")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive console")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
}

var showVersion bool

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("ptouch-print %s\n", version.String())
		return
	}

	if err := config.LoadFile(config.ConfigFile); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	setupLogging(config.LogLevel)

	if config.List {
		listSupported()
		return
	}

	logger, closeLogger, err := buildProtocolLogger()
	if err != nil {
		log.Fatalf("Failed to open protocol log: %v", err)
	}
	defer closeLogger()

	client, err := openPrinter(logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Disconnect()

	log.Printf("Connected to %s (%d px, %d dpi)", client.Name(), client.MaxWidth(), client.DPI())

	ctx := context.Background()

	if config.Interactive {
		console, err := interactive.New(client)
		if err != nil {
			log.Fatalf("Failed to start console: %v", err)
		}
		console.Run(ctx)
		return
	}

	if config.Status {
		if err := printStatus(ctx, client); err != nil {
			log.Fatalf("Status query failed: %v", err)
		}
	}

	if config.Image != "" {
		if err := printImage(ctx, client, config.Image); err != nil {
			log.Fatalf("Print failed: %v", err)
		}
		log.Printf("Printed %s", config.Image)
	}

	if config.Feed > 0 {
		if err := client.FeedTape(ctx, config.Feed); err != nil {
			log.Fatalf("Feed failed: %v", err)
		}
	}

	if config.Cut {
		if err := client.Cut(ctx); err != nil {
			log.Fatalf("Cut failed: %v", err)
		}
	}
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// buildProtocolLogger assembles the protocol capture pipeline: a CBOR
// file log when -log-file is set, plus console output at debug level.
func buildProtocolLogger() (ptlog.Logger, func(), error) {
	var loggers []ptlog.Logger
	closer := func() {}

	if config.LogFile != "" {
		fl, err := ptlog.NewFileLogger(config.LogFile)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closer = func() { fl.Close() }
	}
	if config.LogLevel == "debug" {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		loggers = append(loggers, ptlog.NewSlogAdapter(slog.New(handler)))
	}

	switch len(loggers) {
	case 0:
		return ptlog.NoopLogger{}, closer, nil
	case 1:
		return loggers[0], closer, nil
	default:
		ml := ptlog.NewMultiLogger(loggers...)
		return ml, func() { ml.Close() }, nil
	}
}

func openPrinter(logger ptlog.Logger) (*protocol.Client, error) {
	desc, err := protocol.Detect(nil)
	if err != nil {
		return nil, fmt.Errorf("detect printer: %w", err)
	}

	tr, err := transport.OpenUSB(
		transport.DeviceID{VendorID: desc.VendorID, ProductID: desc.ProductID},
		config.TransportConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", desc.Name, err)
	}

	client := protocol.NewClient(desc, tr, logger)
	if err := client.Connect(context.Background()); err != nil {
		tr.Close()
		return nil, fmt.Errorf("connect %s: %w", desc.Name, err)
	}
	return client, nil
}

func listSupported() {
	fmt.Println("Supported printers:")
	for _, d := range catalog.Supported() {
		fmt.Printf("  %04X:%04X  %-12s %3d px  %d dpi  [%s]\n",
			d.VendorID, d.ProductID, d.Name, d.MaxPixelWidth, d.DPI, d.Capabilities)
	}
}

func printStatus(ctx context.Context, client *protocol.Client) error {
	st, err := client.GetStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Model:      %s\n", client.Name())
	fmt.Printf("Media:      %s, %d mm (%d px)\n", st.MediaTypeString(), st.MediaWidthMM, client.TapeWidthPixels())
	fmt.Printf("Tape:       %s on %s\n", st.TextColorString(), st.TapeColorString())
	if st.HasError() {
		fmt.Printf("Error:      %s\n", st.ErrorString())
	}
	return nil
}

func printImage(ctx context.Context, client *protocol.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	img, err := raster.Threshold(src, config.Threshold)
	if err != nil {
		return err
	}

	return client.PrintImage(ctx, img, protocol.PrintOptions{
		Chain:  config.Chain,
		Precut: !config.NoPrecut,
	})
}
