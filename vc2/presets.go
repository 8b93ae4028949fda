package vc2

// FrameRate is a frame rate expressed as a rational number of frames per
// second.
type FrameRate struct {
	Numer int
	Denom int
}

// PixelAspectRatio is the ratio of pixel width to pixel height.
type PixelAspectRatio struct {
	Numer int
	Denom int
}

// SignalRange holds the offsets and excursions of the luma and color
// difference components (11.4.9).
type SignalRange struct {
	LumaOffset         int
	LumaExcursion      int
	ColorDiffOffset    int
	ColorDiffExcursion int
}

// ColorSpec bundles the three color specification sub-indices selected by a
// preset color specification (11.4.10.2).
type ColorSpec struct {
	ColorPrimariesIndex   int
	ColorMatrixIndex      int
	TransferFunctionIndex int
}

// PresetFrameRates maps frame rate preset indices to concrete rates
// (Table 11.3). Index 0 is reserved for fully custom rates and has no entry.
var PresetFrameRates = map[int]FrameRate{
	1:  {24000, 1001},
	2:  {24, 1},
	3:  {25, 1},
	4:  {30000, 1001},
	5:  {30, 1},
	6:  {50, 1},
	7:  {60000, 1001},
	8:  {60, 1},
	9:  {15000, 1001},
	10: {25, 2},
	11: {48, 1},
}

// PresetPixelAspectRatios maps pixel aspect ratio preset indices to concrete
// ratios (Table 11.4). Index 0 is reserved for custom ratios.
var PresetPixelAspectRatios = map[int]PixelAspectRatio{
	1: {1, 1},
	2: {10, 11},
	3: {12, 11},
	4: {40, 33},
	5: {16, 11},
	6: {4, 3},
}

// PresetSignalRanges maps signal range preset indices to concrete ranges
// (Table 11.5). Index 0 is reserved for custom ranges.
var PresetSignalRanges = map[int]SignalRange{
	1: {0, 255, 128, 255},      // 8 bit full range
	2: {16, 219, 128, 224},     // 8 bit video range
	3: {64, 876, 512, 896},     // 10 bit video range
	4: {256, 3504, 2048, 3584}, // 12 bit video range
}

// PresetColorSpecs maps color specification preset indices to the three
// sub-indices they select (Table 11.6). Index 0 selects the custom
// specification, whose defaults are all zero.
var PresetColorSpecs = map[int]ColorSpec{
	0: {0, 0, 0}, // custom
	1: {1, 1, 0}, // SDTV 525
	2: {2, 1, 0}, // SDTV 625
	3: {0, 0, 0}, // HDTV
	4: {3, 2, 3}, // D-Cinema
}
