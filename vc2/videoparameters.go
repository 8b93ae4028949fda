package vc2

import "sort"

// VideoParameters is the fully expanded set of source parameters describing a
// video format (11.4). Unlike a sequence header, every field here is
// concrete: preset indices from the base format tables have already been
// resolved to their values.
type VideoParameters struct {
	FrameWidth  int
	FrameHeight int

	ColorDiffFormat ColorDiffFormat
	SourceSampling  SourceSampling
	TopFieldFirst   bool

	FrameRateNumer int
	FrameRateDenom int

	PixelAspectRatioNumer int
	PixelAspectRatioDenom int

	CleanWidth  int
	CleanHeight int
	LeftOffset  int
	TopOffset   int

	LumaOffset         int
	LumaExcursion      int
	ColorDiffOffset    int
	ColorDiffExcursion int

	ColorPrimariesIndex   int
	ColorMatrixIndex      int
	TransferFunctionIndex int
}

// SetSourceDefaults expands a base video format into a concrete set of video
// parameters (11.4.2). The second return is false for an unknown format
// index.
func SetSourceDefaults(format BaseVideoFormat) (VideoParameters, bool) {
	base, ok := BaseVideoFormatParametersTable[format]
	if !ok {
		return VideoParameters{}, false
	}
	frameRate := PresetFrameRates[base.FrameRateIndex]
	par := PresetPixelAspectRatios[base.PixelAspectRatioIndex]
	signalRange := PresetSignalRanges[base.SignalRangeIndex]
	colorSpec := PresetColorSpecs[base.ColorSpecIndex]
	return VideoParameters{
		FrameWidth:  base.FrameWidth,
		FrameHeight: base.FrameHeight,

		ColorDiffFormat: base.ColorDiffFormat,
		SourceSampling:  base.SourceSampling,
		TopFieldFirst:   base.TopFieldFirst,

		FrameRateNumer: frameRate.Numer,
		FrameRateDenom: frameRate.Denom,

		PixelAspectRatioNumer: par.Numer,
		PixelAspectRatioDenom: par.Denom,

		CleanWidth:  base.CleanWidth,
		CleanHeight: base.CleanHeight,
		LeftOffset:  base.LeftOffset,
		TopOffset:   base.TopOffset,

		LumaOffset:         signalRange.LumaOffset,
		LumaExcursion:      signalRange.LumaExcursion,
		ColorDiffOffset:    signalRange.ColorDiffOffset,
		ColorDiffExcursion: signalRange.ColorDiffExcursion,

		ColorPrimariesIndex:   colorSpec.ColorPrimariesIndex,
		ColorMatrixIndex:      colorSpec.ColorMatrixIndex,
		TransferFunctionIndex: colorSpec.TransferFunctionIndex,
	}, true
}

// CountDifferences counts the fields which differ between two sets of video
// parameters. Used to rank base video formats by similarity to a target
// format.
func CountDifferences(a, b VideoParameters) int {
	n := 0
	if a.FrameWidth != b.FrameWidth {
		n++
	}
	if a.FrameHeight != b.FrameHeight {
		n++
	}
	if a.ColorDiffFormat != b.ColorDiffFormat {
		n++
	}
	if a.SourceSampling != b.SourceSampling {
		n++
	}
	if a.TopFieldFirst != b.TopFieldFirst {
		n++
	}
	if a.FrameRateNumer != b.FrameRateNumer {
		n++
	}
	if a.FrameRateDenom != b.FrameRateDenom {
		n++
	}
	if a.PixelAspectRatioNumer != b.PixelAspectRatioNumer {
		n++
	}
	if a.PixelAspectRatioDenom != b.PixelAspectRatioDenom {
		n++
	}
	if a.CleanWidth != b.CleanWidth {
		n++
	}
	if a.CleanHeight != b.CleanHeight {
		n++
	}
	if a.LeftOffset != b.LeftOffset {
		n++
	}
	if a.TopOffset != b.TopOffset {
		n++
	}
	if a.LumaOffset != b.LumaOffset {
		n++
	}
	if a.LumaExcursion != b.LumaExcursion {
		n++
	}
	if a.ColorDiffOffset != b.ColorDiffOffset {
		n++
	}
	if a.ColorDiffExcursion != b.ColorDiffExcursion {
		n++
	}
	if a.ColorPrimariesIndex != b.ColorPrimariesIndex {
		n++
	}
	if a.ColorMatrixIndex != b.ColorMatrixIndex {
		n++
	}
	if a.TransferFunctionIndex != b.TransferFunctionIndex {
		n++
	}
	return n
}

// RankBaseVideoFormatSimilarity orders base video formats from most to least
// similar to the target parameters. Only formats with a matching
// top_field_first flag are returned: that flag cannot be overridden by a
// sequence header, so formats which disagree on it can never express the
// target. Ties are broken by ascending format index, making the ranking
// deterministic.
func RankBaseVideoFormatSimilarity(target VideoParameters) []BaseVideoFormat {
	type ranked struct {
		format BaseVideoFormat
		diffs  int
	}
	var candidates []ranked
	for _, format := range AllBaseVideoFormats() {
		defaults, _ := SetSourceDefaults(format)
		if defaults.TopFieldFirst != target.TopFieldFirst {
			continue
		}
		candidates = append(candidates, ranked{format, CountDifferences(defaults, target)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].diffs != candidates[j].diffs {
			return candidates[i].diffs < candidates[j].diffs
		}
		return candidates[i].format < candidates[j].format
	})
	out := make([]BaseVideoFormat, len(candidates))
	for i, c := range candidates {
		out[i] = c.format
	}
	return out
}
