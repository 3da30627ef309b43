package analyzer

import "fmt"

// Command is the protocol command taxonomy.
type Command uint8

// Known protocol commands.
const (
	CmdUnknown Command = iota
	CmdInit
	CmdStatusRequest
	CmdInfo
	CmdPackBitsEnable
	CmdRasterStart
	CmdRasterLine
	CmdPrecut
	CmdFinalize
	CmdD460BTMagic
	CmdD460BTChain
	// CmdPageFlags covers ESC i M with a flag byte. Classify never
	// yields it: the frame is byte-compatible with CmdPrecut, which
	// matches first.
	CmdPageFlags
	CmdFeedPaper
	CmdCutPaper
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdInit:
		return "INIT"
	case CmdStatusRequest:
		return "STATUS_REQ"
	case CmdInfo:
		return "INFO"
	case CmdPackBitsEnable:
		return "PACKBITS_EN"
	case CmdRasterStart:
		return "RASTER_START"
	case CmdRasterLine:
		return "RASTER_LINE"
	case CmdPrecut:
		return "PRECUT"
	case CmdFinalize:
		return "FINALIZE"
	case CmdD460BTMagic:
		return "D460BT_MAGIC"
	case CmdD460BTChain:
		return "D460BT_CHAIN"
	case CmdPageFlags:
		return "PAGE_FLAGS"
	case CmdFeedPaper:
		return "FEED_PAPER"
	case CmdCutPaper:
		return "CUT_PAPER"
	default:
		return "UNKNOWN"
	}
}

// Classification is the result of classifying one frame.
type Classification struct {
	// Command is the recognized command, or CmdUnknown.
	Command Command

	// Description is a human-readable summary of the frame.
	Description string
}

// Classify identifies the protocol command in a raw frame. It matches
// the most specific pattern first, has no side effects and accepts any
// input, including an empty slice.
func Classify(data []byte) Classification {
	cmd := identify(data)
	return Classification{Command: cmd, Description: describe(cmd, data)}
}

func identify(data []byte) Command {
	if len(data) == 0 {
		return CmdUnknown
	}

	if len(data) >= 2 {
		if data[0] == 0x1B {
			if len(data) >= 3 && data[1] == 0x69 {
				switch data[2] {
				case 0x53:
					return CmdStatusRequest
				case 0x7A:
					return CmdInfo
				case 0x52, 0x61:
					return CmdRasterStart
				case 0x4D:
					return CmdPrecut
				case 0x4B:
					return CmdD460BTChain
				case 0x64:
					return CmdD460BTMagic
				}
			}
			if data[1] == 0x40 {
				return CmdInit
			}
		}

		if data[0] == 0x4D && data[1] == 0x02 {
			return CmdPackBitsEnable
		}
	}

	if data[0] == 0x47 {
		return CmdRasterLine
	}

	if len(data) == 1 {
		switch data[0] {
		case 0x1A:
			return CmdFinalize
		case 0x0C:
			return CmdCutPaper
		case 0x5A:
			return CmdFeedPaper
		}
	}

	// Long-form init: 100 zeros followed by ESC @.
	if len(data) >= 102 {
		isInit := true
		for i := 0; i < 100; i++ {
			if data[i] != 0x00 {
				isInit = false
				break
			}
		}
		if isInit && data[100] == 0x1B && data[101] == 0x40 {
			return CmdInit
		}
	}

	return CmdUnknown
}

func describe(cmd Command, data []byte) string {
	switch cmd {
	case CmdInit:
		if len(data) >= 102 {
			return fmt.Sprintf("Invalidate + Init (%d bytes)", len(data))
		}
		return "Init command"
	case CmdStatusRequest:
		return "Status request"
	case CmdInfo:
		return fmt.Sprintf("Info command (%d bytes)", len(data))
	case CmdPackBitsEnable:
		return "Enable PackBits compression"
	case CmdRasterStart:
		if len(data) >= 3 && data[1] == 0x69 && data[2] == 0x61 {
			return "Start raster mode (P700)"
		}
		return "Start raster mode"
	case CmdRasterLine:
		return fmt.Sprintf("Raster line (%d bytes)", len(data))
	case CmdPrecut:
		return "Precut command"
	case CmdFinalize:
		return "Print and eject"
	case CmdD460BTMagic:
		return "D460BT magic sequence"
	case CmdD460BTChain:
		return "D460BT chain command"
	case CmdPageFlags:
		return "Page flags command"
	case CmdFeedPaper:
		return "Feed paper (line feed)"
	case CmdCutPaper:
		return "Cut paper (form feed)"
	default:
		return fmt.Sprintf("Unknown command (%d bytes)", len(data))
	}
}
