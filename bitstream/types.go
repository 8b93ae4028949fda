package bitstream

import "github.com/vc2tools/go-vc2-conformance/vc2"

// ParseInfo is the framing header preceding every data unit (10.5.1).
// Offsets measure the distance in bytes between the starts of adjacent
// parse_info blocks; zero marks the ends of the chain.
type ParseInfo struct {
	ParseCode           vc2.ParseCode
	NextParseOffset     uint32
	PreviousParseOffset uint32
}

// ParseInfoSize is the coded size of a parse_info block in bytes: the four
// byte prefix, the parse code, and two four byte offsets.
const ParseInfoSize = 13

// parseInfoPrefix is the magic number opening every parse_info block.
var parseInfoPrefix = [4]byte{0x42, 0x42, 0x43, 0x44} // "BBCD"

// ParseParameters carries the stream's version, profile and level (11.2.1).
type ParseParameters struct {
	MajorVersion int
	MinorVersion int
	Profile      vc2.Profile
	Level        vc2.Level
}

// The sub-structures of SourceParameters mirror the override groups of the
// coded sequence header (11.4): each holds a custom flag and the values
// coded when the flag is set. When a flag is clear the corresponding fields
// are absent from the stream and ignored here.

type FrameSize struct {
	CustomDimensionsFlag bool
	FrameWidth           int
	FrameHeight          int
}

type ColorDiffSamplingFormat struct {
	CustomColorDiffFormatFlag bool
	ColorDiffFormatIndex      vc2.ColorDiffFormat
}

type ScanFormat struct {
	CustomScanFormatFlag bool
	SourceSampling       vc2.SourceSampling
}

// FrameRate codes a preset index or, with index zero, an explicit rational
// rate.
type FrameRate struct {
	CustomFrameRateFlag bool
	Index               int
	FrameRateNumer      int
	FrameRateDenom      int
}

type PixelAspectRatio struct {
	CustomPixelAspectRatioFlag bool
	Index                      int
	PixelAspectRatioNumer      int
	PixelAspectRatioDenom      int
}

type CleanArea struct {
	CustomCleanAreaFlag bool
	CleanWidth          int
	CleanHeight         int
	LeftOffset          int
	TopOffset           int
}

// SignalRange codes a preset index or, with index zero, explicit offsets and
// excursions.
type SignalRange struct {
	CustomSignalRangeFlag bool
	Index                 int
	LumaOffset            int
	LumaExcursion         int
	ColorDiffOffset       int
	ColorDiffExcursion    int
}

type ColorPrimaries struct {
	CustomColorPrimariesFlag bool
	Index                    int
}

type ColorMatrix struct {
	CustomColorMatrixFlag bool
	Index                 int
}

type TransferFunction struct {
	CustomTransferFunctionFlag bool
	Index                      int
}

// ColorSpec codes a preset color specification or, with index zero, custom
// primaries, matrix and transfer function.
type ColorSpec struct {
	CustomColorSpecFlag bool
	Index               int
	ColorPrimaries      ColorPrimaries
	ColorMatrix         ColorMatrix
	TransferFunction    TransferFunction
}

// SourceParameters is the full set of sequence header overrides applied on
// top of a base video format's defaults (11.4.1).
type SourceParameters struct {
	FrameSize               FrameSize
	ColorDiffSamplingFormat ColorDiffSamplingFormat
	ScanFormat              ScanFormat
	FrameRate               FrameRate
	PixelAspectRatio        PixelAspectRatio
	CleanArea               CleanArea
	SignalRange             SignalRange
	ColorSpec               ColorSpec
}

// SequenceHeader is a coded sequence header data unit (11.1).
type SequenceHeader struct {
	ParseParameters   ParseParameters
	BaseVideoFormat   vc2.BaseVideoFormat
	SourceParameters  SourceParameters
	PictureCodingMode vc2.PictureCodingMode
}

// TransformParameters describes the wavelet transform and slice layout of a
// picture (12.4).
type TransformParameters struct {
	WaveletIndex vc2.WaveletFilter
	DwtDepth     int

	SlicesX          int
	SlicesY          int
	SlicePrefixBytes int
	SliceSizeScaler  int

	CustomQuantMatrixFlag bool
	// QuantMatrix holds one value per subband in coding order when the
	// custom flag is set.
	QuantMatrix []int
}

// HQSlice is one coded slice of a high quality profile picture (13.5.4):
// a quantization index and the coefficients of each component in coding
// order.
type HQSlice struct {
	Qindex     int
	Components [3][]int32
}

// PictureParse is a coded picture data unit (12.1). Slices are stored in
// raster order.
type PictureParse struct {
	PictureNumber       uint32
	TransformParameters TransformParameters
	Slices              []HQSlice
}

// DataUnit is one parse_info block plus its payload. Exactly one of the
// payload fields is meaningful, selected by the parse code: SequenceHeader
// for sequence headers, Picture for pictures, Payload for padding and
// auxiliary data, none for end of sequence.
type DataUnit struct {
	ParseCode      vc2.ParseCode
	SequenceHeader *SequenceHeader
	Picture        *PictureParse
	Payload        []byte
}

// Sequence is a whole coded sequence: a list of data units which the framing
// layer chains together with parse_info offsets.
type Sequence struct {
	DataUnits []DataUnit
}
