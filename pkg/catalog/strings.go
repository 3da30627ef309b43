package catalog

// MediaTypeString returns the human-readable name of a media type code
// from the status frame.
func MediaTypeString(code byte) string {
	switch code {
	case 0x00:
		return "No media"
	case 0x01:
		return "Laminated tape"
	case 0x03:
		return "Non-laminated tape"
	case 0x04:
		return "Fabric tape"
	case 0x11:
		return "Heat-shrink tube"
	case 0x13:
		return "Fle tape"
	case 0x14:
		return "Flexible ID tape"
	case 0x15:
		return "Satin tape"
	case 0xFF:
		return "Incompatible tape"
	default:
		return "Unknown"
	}
}

var tapeColorNames = map[byte]string{
	0x01: "White",
	0x02: "Other",
	0x03: "Clear",
	0x04: "Red",
	0x05: "Blue",
	0x06: "Yellow",
	0x07: "Green",
	0x08: "Black",
	0x09: "Clear",
	0x20: "Matte White",
	0x21: "Matte Clear",
	0x22: "Matte Silver",
	0x23: "Satin Gold",
	0x24: "Satin Silver",
	0x30: "Blue (TZe-5[345]5)",
	0x31: "Red (TZe-435)",
	0x40: "Fluorescent Orange",
	0x41: "Fluorescent Yellow",
	0x50: "Berry Pink (TZe-MQP35)",
	0x51: "Light Gray (TZe-MQL35)",
	0x52: "Lime Green (TZe-MQG35)",
	0x60: "Yellow",
	0x61: "Pink",
	0x62: "Blue",
	0x70: "Heat-shrink Tube",
	0x90: "White(Flex. ID)",
	0x91: "Yellow(Flex. ID)",
	0xF0: "Cleaning",
	0xF1: "Stencil",
	0xFF: "Incompatible",
}

// Text colors use a smaller code space of their own; it overlaps the
// tape colors for the common inks but diverges above 0x08.
var textColorNames = map[byte]string{
	0x01: "White",
	0x02: "Other",
	0x04: "Red",
	0x05: "Blue",
	0x08: "Black",
	0x0A: "Gold",
	0x62: "Blue(F)",
	0xF0: "Cleaning",
	0xF1: "Stencil",
	0xFF: "Incompatible",
}

// TapeColorString returns the human-readable tape color name.
func TapeColorString(code byte) string {
	if name, ok := tapeColorNames[code]; ok {
		return name
	}
	return "Unknown"
}

// TextColorString returns the human-readable text color name.
func TextColorString(code byte) string {
	if name, ok := textColorNames[code]; ok {
		return name
	}
	return "Unknown"
}
