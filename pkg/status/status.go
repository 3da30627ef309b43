// Package status decodes the 32-byte status frame P-touch printers send
// in reply to a status request.
package status

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ptouch-protocol/ptouch-go/pkg/catalog"
)

// FrameLength is the exact length of a status frame.
const FrameLength = 32

// ErrBadFrameLength indicates a status frame of the wrong length.
// Frames are never partially decoded.
var ErrBadFrameLength = fmt.Errorf("status frame must be %d bytes", FrameLength)

// Error bits reported in the status frame's error mask.
const (
	ErrorNoMedia         = 0x0001
	ErrorEndOfMedia      = 0x0002
	ErrorCutterJam       = 0x0004
	ErrorWeakBatteries   = 0x0008
	ErrorHighVoltage     = 0x0010
	ErrorReplaceMedia    = 0x0040
	ErrorExpansionBuffer = 0x0080
)

// Status holds the decoded fields of a status frame, laid out by their
// fixed byte offsets. A fresh Status replaces the previous one wholesale
// on every successful query.
type Status struct {
	PrintheadMark byte   // offset 0, always 0x80
	Size          byte   // offset 1, always 0x20
	BrotherCode   byte   // offset 2, 'B'
	SeriesCode    byte   // offset 3, '0'
	Model         byte   // offset 4
	Country       byte   // offset 5, '0'
	Error         uint16 // offsets 8-9, little-endian error mask
	MediaWidthMM  byte   // offset 10, tape width in mm
	MediaType     byte   // offset 11
	NCol          byte   // offset 12
	Fonts         byte   // offset 13
	JPFonts       byte   // offset 14
	Mode          byte   // offset 15
	Density       byte   // offset 16
	MediaLength   byte   // offset 17
	StatusType    byte   // offset 18
	PhaseType     byte   // offset 19
	PhaseNumber   uint16 // offsets 20-21, little-endian
	NotifNumber   byte   // offset 22
	Expansion     byte   // offset 23
	TapeColor     byte   // offset 24
	TextColor     byte   // offset 25
	HWSetting     uint32 // offsets 26-29, little-endian
}

// Decode parses a raw status frame. A frame of any length other than
// FrameLength is a protocol error, not silently accepted.
func Decode(frame []byte) (*Status, error) {
	if len(frame) != FrameLength {
		return nil, fmt.Errorf("%w: got %d", ErrBadFrameLength, len(frame))
	}

	return &Status{
		PrintheadMark: frame[0],
		Size:          frame[1],
		BrotherCode:   frame[2],
		SeriesCode:    frame[3],
		Model:         frame[4],
		Country:       frame[5],
		Error:         binary.LittleEndian.Uint16(frame[8:10]),
		MediaWidthMM:  frame[10],
		MediaType:     frame[11],
		NCol:          frame[12],
		Fonts:         frame[13],
		JPFonts:       frame[14],
		Mode:          frame[15],
		Density:       frame[16],
		MediaLength:   frame[17],
		StatusType:    frame[18],
		PhaseType:     frame[19],
		PhaseNumber:   binary.LittleEndian.Uint16(frame[20:22]),
		NotifNumber:   frame[22],
		Expansion:     frame[23],
		TapeColor:     frame[24],
		TextColor:     frame[25],
		HWSetting:     binary.LittleEndian.Uint32(frame[26:30]),
	}, nil
}

// Encode serializes the status back into a 32-byte frame. Reserved
// bytes are zero. Mainly used by mocks and tests; decoding an encoded
// status reproduces the original field values.
func (s *Status) Encode() []byte {
	frame := make([]byte, FrameLength)
	frame[0] = s.PrintheadMark
	frame[1] = s.Size
	frame[2] = s.BrotherCode
	frame[3] = s.SeriesCode
	frame[4] = s.Model
	frame[5] = s.Country
	binary.LittleEndian.PutUint16(frame[8:10], s.Error)
	frame[10] = s.MediaWidthMM
	frame[11] = s.MediaType
	frame[12] = s.NCol
	frame[13] = s.Fonts
	frame[14] = s.JPFonts
	frame[15] = s.Mode
	frame[16] = s.Density
	frame[17] = s.MediaLength
	frame[18] = s.StatusType
	frame[19] = s.PhaseType
	binary.LittleEndian.PutUint16(frame[20:22], s.PhaseNumber)
	frame[22] = s.NotifNumber
	frame[23] = s.Expansion
	frame[24] = s.TapeColor
	frame[25] = s.TextColor
	binary.LittleEndian.PutUint32(frame[26:30], s.HWSetting)
	return frame
}

// HasError reports whether any error bit is set.
func (s *Status) HasError() bool {
	return s.Error != 0
}

// ErrorString returns a description of the error mask, or "No error".
// An unrecognized nonzero mask maps to "Unknown error".
func (s *Status) ErrorString() string {
	if s.Error == 0 {
		return "No error"
	}

	known := map[uint16]string{
		ErrorNoMedia:         "No media",
		ErrorEndOfMedia:      "End of media",
		ErrorCutterJam:       "Cutter jam",
		ErrorWeakBatteries:   "Weak batteries",
		ErrorHighVoltage:     "High voltage adapter",
		ErrorReplaceMedia:    "Replace media",
		ErrorExpansionBuffer: "Expansion buffer full",
	}
	if msg, ok := known[s.Error]; ok {
		return msg
	}

	// A combined mask still names each recognized bit.
	var parts []string
	for _, bit := range []uint16{
		ErrorNoMedia, ErrorEndOfMedia, ErrorCutterJam, ErrorWeakBatteries,
		ErrorHighVoltage, ErrorReplaceMedia, ErrorExpansionBuffer,
	} {
		if s.Error&bit != 0 {
			parts = append(parts, known[bit])
		}
	}
	if len(parts) == 0 {
		return "Unknown error"
	}
	return strings.Join(parts, "; ")
}

// MediaTypeString returns the human-readable media type name.
func (s *Status) MediaTypeString() string {
	return catalog.MediaTypeString(s.MediaType)
}

// TapeColorString returns the human-readable tape color name.
func (s *Status) TapeColorString() string {
	return catalog.TapeColorString(s.TapeColor)
}

// TextColorString returns the human-readable text color name.
func (s *Status) TextColorString() string {
	return catalog.TextColorString(s.TextColor)
}

// TapeWidthPixels returns the printable height in pixels for the
// reported tape width. The second return value mirrors
// catalog.TapeWidthPixels: false means the width is not in the table
// and the caller should keep its previous value.
func (s *Status) TapeWidthPixels() (int, bool) {
	return catalog.TapeWidthPixels(int(s.MediaWidthMM))
}
