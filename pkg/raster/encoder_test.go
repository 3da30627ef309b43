package raster

import (
	"bytes"
	"testing"

	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
)

func testDescriptor(maxPx int, packBits bool) catalog.Descriptor {
	return catalog.Descriptor{
		Name:          "test",
		MaxPixelWidth: maxPx,
		DPI:           180,
		Capabilities:  catalog.Capabilities{PackBits: packBits},
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		maxPx, height, want int
	}{
		{128, 76, 26},
		{128, 128, 0},
		{128, 32, 48},
		{384, 120, 132},
	}

	for _, tt := range tests {
		e := NewEncoder(testDescriptor(tt.maxPx, false))
		if got := e.CenterOffset(tt.height); got != tt.want {
			t.Errorf("CenterOffset(maxPx=%d, height=%d) = %d, want %d", tt.maxPx, tt.height, got, tt.want)
		}
	}
}

func TestFrameLinePlain(t *testing.T) {
	e := NewEncoder(testDescriptor(128, false))
	line := bytes.Repeat([]byte{0xAA}, 16)

	cmd := e.FrameLine(line)
	if len(cmd) != len(line)+3 {
		t.Fatalf("framed length = %d, want %d", len(cmd), len(line)+3)
	}
	if cmd[0] != LineOpcode || cmd[1] != byte(len(line)) || cmd[2] != 0x00 {
		t.Errorf("header = % X, want 47 %02X 00", cmd[:3], len(line))
	}
	if !bytes.Equal(cmd[3:], line) {
		t.Error("payload mismatch")
	}
}

func TestFrameLinePackBits(t *testing.T) {
	e := NewEncoder(testDescriptor(128, true))
	line := bytes.Repeat([]byte{0x55}, 16)

	cmd := e.FrameLine(line)
	if len(cmd) != len(line)+4 {
		t.Fatalf("framed length = %d, want %d", len(cmd), len(line)+4)
	}
	want := []byte{LineOpcode, byte(len(line) + 1), 0x00, byte(len(line) - 1)}
	if !bytes.Equal(cmd[:4], want) {
		t.Errorf("header = % X, want % X", cmd[:4], want)
	}
	if !bytes.Equal(cmd[4:], line) {
		t.Error("payload mismatch")
	}
}

func TestEncodeColumnBitAddressing(t *testing.T) {
	// Single set pixel at (0,0) in a 1x1 image, no offset: position
	// H-1-0 = 0, which must land in the last byte's LSB.
	img, err := NewImage(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixel(0, 0, true)

	e := NewEncoder(testDescriptor(128, false))
	line, err := e.EncodeColumn(img, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(line) != 16 {
		t.Fatalf("line length = %d, want 16", len(line))
	}
	if line[15] != 0x01 {
		t.Errorf("line[15] = 0x%02X, want 0x01", line[15])
	}
	for i := 0; i < 15; i++ {
		if line[i] != 0 {
			t.Errorf("line[%d] = 0x%02X, want 0", i, line[i])
		}
	}
}

func TestEncodeColumnCentering(t *testing.T) {
	// All-black column of height 76 centered on a 128px head:
	// positions offset..offset+75 = 26..101 are set.
	img, err := NewImage(1, 76)
	if err != nil {
		t.Fatal(err)
	}
	img.FillRect(0, 0, 1, 76, true)

	e := NewEncoder(testDescriptor(128, false))
	offset := e.CenterOffset(76)
	line, err := e.EncodeColumn(img, 0, offset)
	if err != nil {
		t.Fatal(err)
	}

	for p := 0; p < 128; p++ {
		want := p >= 26 && p <= 101
		got := line[len(line)-1-p/8]&(1<<(p%8)) != 0
		if got != want {
			t.Errorf("bit position %d = %v, want %v", p, got, want)
		}
	}
}

func TestEncodeColumnOutOfRange(t *testing.T) {
	img, _ := NewImage(4, 4)
	e := NewEncoder(testDescriptor(128, false))
	if _, err := e.EncodeColumn(img, 4, 0); err == nil {
		t.Error("expected error for out-of-range column")
	}
	if _, err := e.EncodeColumn(img, -1, 0); err == nil {
		t.Error("expected error for negative column")
	}
}

func TestImagePixelRoundTrip(t *testing.T) {
	img, err := NewImage(10, 7) // stride 2, with padding bits
	if err != nil {
		t.Fatal(err)
	}

	img.SetPixel(0, 0, true)
	img.SetPixel(9, 6, true)
	img.SetPixel(7, 3, true)

	if !img.Pixel(0, 0) || !img.Pixel(9, 6) || !img.Pixel(7, 3) {
		t.Error("set pixels not readable")
	}
	if img.Pixel(1, 0) || img.Pixel(8, 6) {
		t.Error("unset pixels read as set")
	}

	img.SetPixel(7, 3, false)
	if img.Pixel(7, 3) {
		t.Error("cleared pixel still set")
	}

	// Out of bounds is a no-op / reads unset.
	img.SetPixel(10, 0, true)
	if img.Pixel(10, 0) {
		t.Error("out-of-bounds pixel read as set")
	}
}

func TestImageInvert(t *testing.T) {
	img, err := NewImage(9, 2) // stride 2 with 7 padding bits
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixel(3, 1, true)
	img.Invert()

	if img.Pixel(3, 1) {
		t.Error("inverted pixel should be clear")
	}
	if !img.Pixel(0, 0) || !img.Pixel(8, 0) {
		t.Error("inverted pixels should be set")
	}
}
