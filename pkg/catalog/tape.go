package catalog

// TapeInfo describes the printable area of one physical tape width.
type TapeInfo struct {
	// WidthMM is the physical tape width in millimeters.
	WidthMM int

	// WidthPixels is the printable height in pixels at 180 dpi.
	WidthPixels int

	// MarginMM is the default margin on each side in millimeters.
	MarginMM float64
}

var tapeTable = []TapeInfo{
	{4, 24, 0.5}, // reported as 4 mm by 3.5 mm tape
	{6, 32, 1.0},
	{9, 52, 1.0},
	{12, 76, 2.0},
	{18, 120, 3.0},
	{24, 128, 3.0},
	{36, 192, 4.5},
}

// TapeWidthPixels returns the printable pixel height for a tape width
// reported in millimeters. The second return value is false when the
// width is not in the table; callers keep their previous value then.
func TapeWidthPixels(mm int) (int, bool) {
	for _, t := range tapeTable {
		if t.WidthMM == mm {
			return t.WidthPixels, true
		}
	}
	return 0, false
}

// Tapes returns the known tape geometries in ascending width order.
func Tapes() []TapeInfo {
	out := make([]TapeInfo, len(tapeTable))
	copy(out, tapeTable)
	return out
}
