package protocol

import "encoding/binary"

// Wire commands. Every frame fits in a single packet.

const (
	esc = 0x1B

	byteFinalize = 0x1A
	byteFeed     = 0x5A
	byteCut      = 0x0C
)

// Page flag bits for the ESC i M command.
const (
	// FeedNone through FeedLarge select the post-print feed amount.
	FeedNone   byte = 0x00
	FeedSmall  byte = 0x08
	FeedMedium byte = 0x0C
	FeedLarge  byte = 0x1A

	// FlagAutoCut enables the automatic cutter after each label.
	FlagAutoCut byte = 1 << 6

	// FlagMirror mirrors the printout.
	FlagMirror byte = 1 << 7
)

// initCommand is the bare ESC @ reset.
func initCommand() []byte {
	return []byte{esc, 0x40}
}

// invalidateInit builds the 102-byte synchronization frame sent at
// connection start: 100 zero bytes followed by ESC @.
func invalidateInit() []byte {
	frame := make([]byte, 102)
	frame[100] = esc
	frame[101] = 0x40
	return frame
}

// statusRequest asks for a 32-byte status reply.
func statusRequest() []byte {
	return []byte{esc, 0x69, 0x53}
}

// packBitsEnable switches the printer to compressed raster framing.
func packBitsEnable() []byte {
	return []byte{0x4D, 0x02}
}

// rasterStart enters raster mode. The P700 family uses a different
// selector byte.
func rasterStart(p700 bool) []byte {
	if p700 {
		return []byte{esc, 0x69, 0x61, 0x01}
	}
	return []byte{esc, 0x69, 0x52, 0x01}
}

// infoCommand builds the print-information command. The buffer is 13
// bytes but only the first 12 go on the wire. Media width sits at
// offset 5 and the raster line count at offsets 7..10 (little-endian).
// D460BT models want 0x02 in the reserved byte at offset 11.
func infoCommand(mediaWidthMM byte, rasterCount uint32, d460bt bool) []byte {
	buf := make([]byte, 13)
	buf[0] = esc
	buf[1] = 0x69
	buf[2] = 0x7A
	buf[5] = mediaWidthMM
	binary.LittleEndian.PutUint32(buf[7:11], rasterCount)
	if d460bt {
		buf[11] = 0x02
	}
	return buf[:12]
}

// precut enables or disables cutting before the first label.
func precut(enabled bool) []byte {
	b := byte(0x00)
	if enabled {
		b = 0x40
	}
	return []byte{esc, 0x69, 0x4D, b}
}

// chainCommand and magicCommand are the extra D460BT frames sent
// before raster data.
func chainCommand() []byte {
	return []byte{esc, 0x69, 0x4B, 0x00}
}

func magicCommand() []byte {
	return []byte{esc, 0x69, 0x64, 0x0E, 0x00, 0x4D, 0x00}
}

// finalize ejects the label. When not chaining, the feed/print command
// ESC i A 01 follows as a separate frame.
func finalize() []byte {
	return []byte{byteFinalize}
}

func feedPrint() []byte {
	return []byte{esc, 0x69, 0x41, 0x01}
}

// feedCommand advances the tape by one step.
func feedCommand() []byte {
	return []byte{byteFeed}
}

// cutCommand triggers the cutter.
func cutCommand() []byte {
	return []byte{byteCut}
}

// pageFlags sets feed amount, auto-cut and mirroring.
func pageFlags(flags byte) []byte {
	return []byte{esc, 0x69, 0x4D, flags}
}
