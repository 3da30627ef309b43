package catalog

import "strings"

// BrotherVendorID is the USB vendor ID shared by all Brother printers.
const BrotherVendorID = 0x04F9

// Capabilities is the set of per-model behavioral switches.
// Modeled as named booleans rather than a raw bitmask so that switches
// are individually addressable and exhaustiveness is checkable.
type Capabilities struct {
	// UnsupportedRaster marks models whose raster protocol is not
	// implemented. Detection rejects them.
	UnsupportedRaster bool

	// PackBits selects the compressed raster-line framing.
	PackBits bool

	// PLite marks a device sitting in the vendor's P-Lite mass-storage
	// mode, which disables the raster protocol entirely. Detection
	// rejects these and tells the user to switch the physical mode.
	PLite bool

	// P700Init requires an extra ESC @ frame before the invalidate+init
	// sequence and selects the P700 raster-start variant.
	P700Init bool

	// UseInfoCommand requires the Info command after raster start.
	UseInfoCommand bool

	// Precut requires a precut command before raster start.
	Precut bool

	// D460BTMagic requires the chain+magic command pair and sets the
	// Info command's reserved byte to 0x02.
	D460BTMagic bool
}

// String returns the set capabilities as a comma-separated list.
func (c Capabilities) String() string {
	var names []string
	if c.UnsupportedRaster {
		names = append(names, "unsup-raster")
	}
	if c.PackBits {
		names = append(names, "packbits")
	}
	if c.PLite {
		names = append(names, "plite")
	}
	if c.P700Init {
		names = append(names, "p700-init")
	}
	if c.UseInfoCommand {
		names = append(names, "info-cmd")
	}
	if c.Precut {
		names = append(names, "precut")
	}
	if c.D460BTMagic {
		names = append(names, "d460bt-magic")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Descriptor describes one supported printer model.
// Descriptors are immutable; the catalog hands out copies.
type Descriptor struct {
	// VendorID is the USB vendor ID (always BrotherVendorID today).
	VendorID uint16

	// ProductID is the USB product ID.
	ProductID uint16

	// Name is the marketing model name.
	Name string

	// MaxPixelWidth is the maximum printable width in pixels.
	MaxPixelWidth int

	// DPI is the print resolution in dots per inch.
	DPI int

	// Capabilities holds the model's behavioral switches.
	Capabilities Capabilities
}

// Connectable reports whether the protocol client may connect to this
// model. P-Lite and unsupported-raster models must be rejected at
// detection time.
func (d Descriptor) Connectable() bool {
	return !d.Capabilities.PLite && !d.Capabilities.UnsupportedRaster
}

var supportedDevices = []Descriptor{
	{BrotherVendorID, 0x2001, "PT-9200DX", 384, 360, Capabilities{PackBits: true, Precut: true}},
	{BrotherVendorID, 0x2004, "PT-2300", 112, 180, Capabilities{PackBits: true, Precut: true}},
	{BrotherVendorID, 0x2007, "PT-2420PC", 128, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x2011, "PT-2450PC", 128, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x2019, "PT-1950", 112, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x201F, "PT-2700", 128, 180, Capabilities{Precut: true}},
	{BrotherVendorID, 0x202C, "PT-1230PC", 128, 180, Capabilities{}},
	{BrotherVendorID, 0x202D, "PT-2430PC", 128, 180, Capabilities{}},
	{BrotherVendorID, 0x2030, "PT-1230PC (PLite Mode)", 128, 180, Capabilities{PLite: true}},
	{BrotherVendorID, 0x2031, "PT-2430PC (PLite Mode)", 128, 180, Capabilities{PLite: true}},
	{BrotherVendorID, 0x2041, "PT-2730", 128, 180, Capabilities{}},
	{BrotherVendorID, 0x205E, "PT-H500", 128, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x205F, "PT-E500", 128, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x2061, "PT-P700", 128, 180, Capabilities{PackBits: true, P700Init: true, Precut: true}},
	{BrotherVendorID, 0x2062, "PT-P750W", 128, 180, Capabilities{PackBits: true, P700Init: true}},
	{BrotherVendorID, 0x2064, "PT-P700 (PLite Mode)", 128, 180, Capabilities{PLite: true}},
	{BrotherVendorID, 0x2065, "PT-P750W (PLite Mode)", 128, 180, Capabilities{PLite: true}},
	{BrotherVendorID, 0x2073, "PT-D450", 128, 180, Capabilities{UseInfoCommand: true}},
	{BrotherVendorID, 0x2074, "PT-D600", 128, 180, Capabilities{PackBits: true}},
	{BrotherVendorID, 0x20AF, "PT-P710BT", 128, 180, Capabilities{PackBits: true, Precut: true}},
	{BrotherVendorID, 0x20DF, "PT-D410", 128, 180, Capabilities{UseInfoCommand: true, Precut: true, D460BTMagic: true}},
	{BrotherVendorID, 0x20E0, "PT-D460BT", 128, 180, Capabilities{P700Init: true, UseInfoCommand: true, Precut: true, D460BTMagic: true}},
	{BrotherVendorID, 0x20E1, "PT-D610BT", 128, 180, Capabilities{P700Init: true, UseInfoCommand: true, Precut: true, D460BTMagic: true}},
	{BrotherVendorID, 0x2201, "PT-E310BT", 128, 180, Capabilities{P700Init: true, UseInfoCommand: true, D460BTMagic: true}},
}

// Lookup returns the descriptor for the given USB identifiers.
// The second return value reports whether the model is known.
func Lookup(vendorID, productID uint16) (Descriptor, bool) {
	for _, d := range supportedDevices {
		if d.VendorID == vendorID && d.ProductID == productID {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Supported returns the descriptors of all models a client may connect
// to, in catalog order. P-Lite placeholders are excluded.
func Supported() []Descriptor {
	out := make([]Descriptor, 0, len(supportedDevices))
	for _, d := range supportedDevices {
		if d.Connectable() {
			out = append(out, d)
		}
	}
	return out
}

// All returns every catalog entry, including the P-Lite placeholders.
// Useful for diagnostics that explain why a model was rejected.
func All() []Descriptor {
	out := make([]Descriptor, len(supportedDevices))
	copy(out, supportedDevices)
	return out
}
