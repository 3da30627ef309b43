package raster

import (
	"fmt"

	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
)

// LineOpcode is the raster-line command byte.
const LineOpcode = 0x47

// Encoder turns image columns into device raster lines for one printer
// model. It borrows the caller's Image read-only.
type Encoder struct {
	maxPixels int
	packBits  bool
}

// NewEncoder creates an encoder for the given printer model.
func NewEncoder(d catalog.Descriptor) *Encoder {
	return &Encoder{
		maxPixels: d.MaxPixelWidth,
		packBits:  d.Capabilities.PackBits,
	}
}

// LineBytes returns the fixed length of an unframed raster line.
func (e *Encoder) LineBytes() int {
	return e.maxPixels / 8
}

// CenterOffset returns the pixel offset that centers an image of the
// given height on the print head. Integer arithmetic, computed once per
// print job.
func (e *Encoder) CenterOffset(height int) int {
	return e.maxPixels/2 - height/2
}

// EncodeColumn builds the raster line for image column x. Bit
// addressing is reflected: pixel position 0 lands in the last byte's
// least significant bit, so the line reads bottom-up on the head.
func (e *Encoder) EncodeColumn(img *Image, x, offset int) ([]byte, error) {
	if x < 0 || x >= img.Width() {
		return nil, fmt.Errorf("column %d out of range [0,%d)", x, img.Width())
	}

	size := e.LineBytes()
	line := make([]byte, size)
	h := img.Height()
	for y := 0; y < h; y++ {
		if !img.Pixel(x, y) {
			continue
		}
		setLinePixel(line, offset+(h-1-y))
	}
	return line, nil
}

// setLinePixel sets bit position p within the reflected line buffer.
// Positions outside the line are dropped silently; centering can push
// them off the head on narrow tape.
func setLinePixel(line []byte, p int) {
	if p < 0 || p >= len(line)*8 {
		return
	}
	line[len(line)-1-p/8] |= 1 << (p % 8)
}

// FrameLine wraps an encoded line into the full raster-line command,
// including the leading opcode byte.
//
// Plain framing is [0x47, len, 0x00, data...], len+3 bytes total. The
// PackBits framing is [0x47, len+1, 0x00, len-1, data...], len+4 bytes
// total: the line is always emitted as one uncompressed run. Real
// run-length encoding is never performed; the printers accept the
// degenerate single-run stream.
func (e *Encoder) FrameLine(line []byte) []byte {
	n := len(line)
	if e.packBits {
		cmd := make([]byte, 0, n+4)
		cmd = append(cmd, LineOpcode, byte(n+1), 0x00, byte(n-1))
		return append(cmd, line...)
	}
	cmd := make([]byte, 0, n+3)
	cmd = append(cmd, LineOpcode, byte(n), 0x00)
	return append(cmd, line...)
}
