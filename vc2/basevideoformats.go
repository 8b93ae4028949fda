package vc2

import "sort"

// BaseVideoFormat is a base video format index (11.3, Table 11.1). A
// sequence header names a base format and then optionally overrides
// individual parameters.
type BaseVideoFormat int

const (
	BaseVideoFormatCustom    BaseVideoFormat = 0
	BaseVideoFormatQSIF525   BaseVideoFormat = 1
	BaseVideoFormatQCIF      BaseVideoFormat = 2
	BaseVideoFormatSIF525    BaseVideoFormat = 3
	BaseVideoFormatCIF       BaseVideoFormat = 4
	BaseVideoFormat4SIF525   BaseVideoFormat = 5
	BaseVideoFormat4CIF      BaseVideoFormat = 6
	BaseVideoFormatSD480I60  BaseVideoFormat = 7
	BaseVideoFormatSD576I50  BaseVideoFormat = 8
	BaseVideoFormatHD720P60  BaseVideoFormat = 9
	BaseVideoFormatHD720P50  BaseVideoFormat = 10
	BaseVideoFormatHD1080I60 BaseVideoFormat = 11
	BaseVideoFormatHD1080I50 BaseVideoFormat = 12
	BaseVideoFormatHD1080P60 BaseVideoFormat = 13
	BaseVideoFormatHD1080P50 BaseVideoFormat = 14
)

// BaseVideoFormatParameters are the default video parameters selected by a
// base video format index before any sequence header overrides are applied.
// Frame rate, pixel aspect ratio and signal range are stored as preset
// indices into the tables in presets.go; the color spec index selects an
// entry of PresetColorSpecs.
type BaseVideoFormatParameters struct {
	Name string

	FrameWidth  int
	FrameHeight int

	ColorDiffFormat ColorDiffFormat
	SourceSampling  SourceSampling
	TopFieldFirst   bool

	FrameRateIndex        int
	PixelAspectRatioIndex int

	CleanWidth  int
	CleanHeight int
	LeftOffset  int
	TopOffset   int

	SignalRangeIndex int
	ColorSpecIndex   int
}

// BaseVideoFormatParametersTable holds the defaults for every base video
// format defined by this toolkit, indexed by BaseVideoFormat.
var BaseVideoFormatParametersTable = map[BaseVideoFormat]BaseVideoFormatParameters{
	BaseVideoFormatCustom: {
		Name: "custom_format", FrameWidth: 640, FrameHeight: 480,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: false, FrameRateIndex: 1, PixelAspectRatioIndex: 1,
		CleanWidth: 640, CleanHeight: 480,
		SignalRangeIndex: 1, ColorSpecIndex: 0,
	},
	BaseVideoFormatQSIF525: {
		Name: "qsif525", FrameWidth: 176, FrameHeight: 120,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: false, FrameRateIndex: 9, PixelAspectRatioIndex: 2,
		CleanWidth: 176, CleanHeight: 120,
		SignalRangeIndex: 1, ColorSpecIndex: 1,
	},
	BaseVideoFormatQCIF: {
		Name: "qcif", FrameWidth: 176, FrameHeight: 144,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 10, PixelAspectRatioIndex: 3,
		CleanWidth: 176, CleanHeight: 144,
		SignalRangeIndex: 1, ColorSpecIndex: 2,
	},
	BaseVideoFormatSIF525: {
		Name: "sif525", FrameWidth: 352, FrameHeight: 240,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: false, FrameRateIndex: 9, PixelAspectRatioIndex: 2,
		CleanWidth: 352, CleanHeight: 240,
		SignalRangeIndex: 1, ColorSpecIndex: 1,
	},
	BaseVideoFormatCIF: {
		Name: "cif", FrameWidth: 352, FrameHeight: 288,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 10, PixelAspectRatioIndex: 3,
		CleanWidth: 352, CleanHeight: 288,
		SignalRangeIndex: 1, ColorSpecIndex: 2,
	},
	BaseVideoFormat4SIF525: {
		Name: "4sif525", FrameWidth: 704, FrameHeight: 480,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: false, FrameRateIndex: 9, PixelAspectRatioIndex: 2,
		CleanWidth: 704, CleanHeight: 480,
		SignalRangeIndex: 1, ColorSpecIndex: 1,
	},
	BaseVideoFormat4CIF: {
		Name: "4cif", FrameWidth: 704, FrameHeight: 576,
		ColorDiffFormat: ColorDiff420, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 10, PixelAspectRatioIndex: 3,
		CleanWidth: 704, CleanHeight: 576,
		SignalRangeIndex: 1, ColorSpecIndex: 2,
	},
	BaseVideoFormatSD480I60: {
		Name: "sd480i_60", FrameWidth: 720, FrameHeight: 480,
		ColorDiffFormat: ColorDiff422, SourceSampling: InterlacedSampling,
		TopFieldFirst: false, FrameRateIndex: 4, PixelAspectRatioIndex: 2,
		CleanWidth: 704, CleanHeight: 480, LeftOffset: 8,
		SignalRangeIndex: 3, ColorSpecIndex: 1,
	},
	BaseVideoFormatSD576I50: {
		Name: "sd576i_50", FrameWidth: 720, FrameHeight: 576,
		ColorDiffFormat: ColorDiff422, SourceSampling: InterlacedSampling,
		TopFieldFirst: true, FrameRateIndex: 3, PixelAspectRatioIndex: 3,
		CleanWidth: 704, CleanHeight: 576, LeftOffset: 8,
		SignalRangeIndex: 3, ColorSpecIndex: 2,
	},
	BaseVideoFormatHD720P60: {
		Name: "hd720p_60", FrameWidth: 1280, FrameHeight: 720,
		ColorDiffFormat: ColorDiff422, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 7, PixelAspectRatioIndex: 1,
		CleanWidth: 1280, CleanHeight: 720,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
	BaseVideoFormatHD720P50: {
		Name: "hd720p_50", FrameWidth: 1280, FrameHeight: 720,
		ColorDiffFormat: ColorDiff422, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 6, PixelAspectRatioIndex: 1,
		CleanWidth: 1280, CleanHeight: 720,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
	BaseVideoFormatHD1080I60: {
		Name: "hd1080i_60", FrameWidth: 1920, FrameHeight: 1080,
		ColorDiffFormat: ColorDiff422, SourceSampling: InterlacedSampling,
		TopFieldFirst: true, FrameRateIndex: 4, PixelAspectRatioIndex: 1,
		CleanWidth: 1920, CleanHeight: 1080,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
	BaseVideoFormatHD1080I50: {
		Name: "hd1080i_50", FrameWidth: 1920, FrameHeight: 1080,
		ColorDiffFormat: ColorDiff422, SourceSampling: InterlacedSampling,
		TopFieldFirst: true, FrameRateIndex: 3, PixelAspectRatioIndex: 1,
		CleanWidth: 1920, CleanHeight: 1080,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
	BaseVideoFormatHD1080P60: {
		Name: "hd1080p_60", FrameWidth: 1920, FrameHeight: 1080,
		ColorDiffFormat: ColorDiff422, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 7, PixelAspectRatioIndex: 1,
		CleanWidth: 1920, CleanHeight: 1080,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
	BaseVideoFormatHD1080P50: {
		Name: "hd1080p_50", FrameWidth: 1920, FrameHeight: 1080,
		ColorDiffFormat: ColorDiff422, SourceSampling: ProgressiveSampling,
		TopFieldFirst: true, FrameRateIndex: 6, PixelAspectRatioIndex: 1,
		CleanWidth: 1920, CleanHeight: 1080,
		SignalRangeIndex: 3, ColorSpecIndex: 3,
	},
}

// AllBaseVideoFormats lists every defined base video format in ascending
// index order.
func AllBaseVideoFormats() []BaseVideoFormat {
	out := make([]BaseVideoFormat, 0, len(BaseVideoFormatParametersTable))
	for f := range BaseVideoFormatParametersTable {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
