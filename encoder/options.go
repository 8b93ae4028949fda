package encoder

import (
	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/constraint"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// allowedFunc returns the set of values the level permits for a constraint
// table key, given the coding options already fixed by the codec features.
type allowedFunc func(key string) *constraint.ValueSet

// Each *Options function below enumerates the legal codings of one sequence
// header sub-field, most preferable first: leaving the base format's default
// in place beats naming a preset, which beats coding explicit values. An
// empty result means the level cannot express the target value at all.
//
// Enumerating each sub-field separately and combining the results without a
// cross product is sound because, within one level, table columns differ
// only in sequence header option keys (see the constraint table tests): a
// choice for one sub-field never invalidates a choice for another.

func frameSizeOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.FrameSize {
	var out []bitstream.FrameSize
	matches := defaults.FrameWidth == target.FrameWidth &&
		defaults.FrameHeight == target.FrameHeight
	if matches && allowed("custom_dimensions_flag").Contains(false) {
		out = append(out, bitstream.FrameSize{})
	}
	if allowed("custom_dimensions_flag").Contains(true) &&
		allowed("frame_width").Contains(target.FrameWidth) &&
		allowed("frame_height").Contains(target.FrameHeight) {
		out = append(out, bitstream.FrameSize{
			CustomDimensionsFlag: true,
			FrameWidth:           target.FrameWidth,
			FrameHeight:          target.FrameHeight,
		})
	}
	return out
}

func colorDiffSamplingFormatOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.ColorDiffSamplingFormat {
	var out []bitstream.ColorDiffSamplingFormat
	if defaults.ColorDiffFormat == target.ColorDiffFormat &&
		allowed("custom_color_diff_format_flag").Contains(false) {
		out = append(out, bitstream.ColorDiffSamplingFormat{})
	}
	if allowed("custom_color_diff_format_flag").Contains(true) &&
		allowed("color_diff_format_index").Contains(int(target.ColorDiffFormat)) {
		out = append(out, bitstream.ColorDiffSamplingFormat{
			CustomColorDiffFormatFlag: true,
			ColorDiffFormatIndex:      target.ColorDiffFormat,
		})
	}
	return out
}

func scanFormatOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.ScanFormat {
	var out []bitstream.ScanFormat
	if defaults.SourceSampling == target.SourceSampling &&
		allowed("custom_scan_format_flag").Contains(false) {
		out = append(out, bitstream.ScanFormat{})
	}
	if allowed("custom_scan_format_flag").Contains(true) &&
		allowed("source_sampling").Contains(int(target.SourceSampling)) {
		out = append(out, bitstream.ScanFormat{
			CustomScanFormatFlag: true,
			SourceSampling:       target.SourceSampling,
		})
	}
	return out
}

func frameRateOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.FrameRate {
	var out []bitstream.FrameRate
	if defaults.FrameRateNumer == target.FrameRateNumer &&
		defaults.FrameRateDenom == target.FrameRateDenom &&
		allowed("custom_frame_rate_flag").Contains(false) {
		out = append(out, bitstream.FrameRate{})
	}
	if allowed("custom_frame_rate_flag").Contains(true) {
		for index := 1; index <= len(vc2.PresetFrameRates); index++ {
			preset := vc2.PresetFrameRates[index]
			if preset.Numer == target.FrameRateNumer &&
				preset.Denom == target.FrameRateDenom &&
				allowed("frame_rate_index").Contains(index) {
				out = append(out, bitstream.FrameRate{
					CustomFrameRateFlag: true,
					Index:               index,
				})
			}
		}
		if allowed("frame_rate_index").Contains(0) &&
			allowed("frame_rate_numer").Contains(target.FrameRateNumer) &&
			allowed("frame_rate_denom").Contains(target.FrameRateDenom) {
			out = append(out, bitstream.FrameRate{
				CustomFrameRateFlag: true,
				Index:               0,
				FrameRateNumer:      target.FrameRateNumer,
				FrameRateDenom:      target.FrameRateDenom,
			})
		}
	}
	return out
}

func pixelAspectRatioOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.PixelAspectRatio {
	var out []bitstream.PixelAspectRatio
	if defaults.PixelAspectRatioNumer == target.PixelAspectRatioNumer &&
		defaults.PixelAspectRatioDenom == target.PixelAspectRatioDenom &&
		allowed("custom_pixel_aspect_ratio_flag").Contains(false) {
		out = append(out, bitstream.PixelAspectRatio{})
	}
	if allowed("custom_pixel_aspect_ratio_flag").Contains(true) {
		for index := 1; index <= len(vc2.PresetPixelAspectRatios); index++ {
			preset := vc2.PresetPixelAspectRatios[index]
			if preset.Numer == target.PixelAspectRatioNumer &&
				preset.Denom == target.PixelAspectRatioDenom &&
				allowed("pixel_aspect_ratio_index").Contains(index) {
				out = append(out, bitstream.PixelAspectRatio{
					CustomPixelAspectRatioFlag: true,
					Index:                      index,
				})
			}
		}
		if allowed("pixel_aspect_ratio_index").Contains(0) &&
			allowed("pixel_aspect_ratio_numer").Contains(target.PixelAspectRatioNumer) &&
			allowed("pixel_aspect_ratio_denom").Contains(target.PixelAspectRatioDenom) {
			out = append(out, bitstream.PixelAspectRatio{
				CustomPixelAspectRatioFlag: true,
				Index:                      0,
				PixelAspectRatioNumer:      target.PixelAspectRatioNumer,
				PixelAspectRatioDenom:      target.PixelAspectRatioDenom,
			})
		}
	}
	return out
}

func cleanAreaOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.CleanArea {
	var out []bitstream.CleanArea
	if defaults.CleanWidth == target.CleanWidth &&
		defaults.CleanHeight == target.CleanHeight &&
		defaults.LeftOffset == target.LeftOffset &&
		defaults.TopOffset == target.TopOffset &&
		allowed("custom_clean_area_flag").Contains(false) {
		out = append(out, bitstream.CleanArea{})
	}
	if allowed("custom_clean_area_flag").Contains(true) &&
		allowed("clean_width").Contains(target.CleanWidth) &&
		allowed("clean_height").Contains(target.CleanHeight) &&
		allowed("left_offset").Contains(target.LeftOffset) &&
		allowed("top_offset").Contains(target.TopOffset) {
		out = append(out, bitstream.CleanArea{
			CustomCleanAreaFlag: true,
			CleanWidth:          target.CleanWidth,
			CleanHeight:         target.CleanHeight,
			LeftOffset:          target.LeftOffset,
			TopOffset:           target.TopOffset,
		})
	}
	return out
}

func signalRangeOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.SignalRange {
	var out []bitstream.SignalRange
	matches := func(r vc2.SignalRange) bool {
		return r.LumaOffset == target.LumaOffset &&
			r.LumaExcursion == target.LumaExcursion &&
			r.ColorDiffOffset == target.ColorDiffOffset &&
			r.ColorDiffExcursion == target.ColorDiffExcursion
	}
	defaultRange := vc2.SignalRange{
		LumaOffset:         defaults.LumaOffset,
		LumaExcursion:      defaults.LumaExcursion,
		ColorDiffOffset:    defaults.ColorDiffOffset,
		ColorDiffExcursion: defaults.ColorDiffExcursion,
	}
	if matches(defaultRange) && allowed("custom_signal_range_flag").Contains(false) {
		out = append(out, bitstream.SignalRange{})
	}
	if allowed("custom_signal_range_flag").Contains(true) {
		for index := 1; index <= len(vc2.PresetSignalRanges); index++ {
			if matches(vc2.PresetSignalRanges[index]) &&
				allowed("custom_signal_range_index").Contains(index) {
				out = append(out, bitstream.SignalRange{
					CustomSignalRangeFlag: true,
					Index:                 index,
				})
			}
		}
		if allowed("custom_signal_range_index").Contains(0) &&
			allowed("luma_offset").Contains(target.LumaOffset) &&
			allowed("luma_excursion").Contains(target.LumaExcursion) &&
			allowed("color_diff_offset").Contains(target.ColorDiffOffset) &&
			allowed("color_diff_excursion").Contains(target.ColorDiffExcursion) {
			out = append(out, bitstream.SignalRange{
				CustomSignalRangeFlag: true,
				Index:                 0,
				LumaOffset:            target.LumaOffset,
				LumaExcursion:         target.LumaExcursion,
				ColorDiffOffset:       target.ColorDiffOffset,
				ColorDiffExcursion:    target.ColorDiffExcursion,
			})
		}
	}
	return out
}

func colorPrimariesOptions(allowed allowedFunc, target int) []bitstream.ColorPrimaries {
	var out []bitstream.ColorPrimaries
	// The custom color spec defaults every sub-index to zero.
	if target == 0 && allowed("custom_color_primaries_flag").Contains(false) {
		out = append(out, bitstream.ColorPrimaries{})
	}
	if allowed("custom_color_primaries_flag").Contains(true) &&
		allowed("color_primaries_index").Contains(target) {
		out = append(out, bitstream.ColorPrimaries{CustomColorPrimariesFlag: true, Index: target})
	}
	return out
}

func colorMatrixOptions(allowed allowedFunc, target int) []bitstream.ColorMatrix {
	var out []bitstream.ColorMatrix
	if target == 0 && allowed("custom_color_matrix_flag").Contains(false) {
		out = append(out, bitstream.ColorMatrix{})
	}
	if allowed("custom_color_matrix_flag").Contains(true) &&
		allowed("color_matrix_index").Contains(target) {
		out = append(out, bitstream.ColorMatrix{CustomColorMatrixFlag: true, Index: target})
	}
	return out
}

func transferFunctionOptions(allowed allowedFunc, target int) []bitstream.TransferFunction {
	var out []bitstream.TransferFunction
	if target == 0 && allowed("custom_transfer_function_flag").Contains(false) {
		out = append(out, bitstream.TransferFunction{})
	}
	if allowed("custom_transfer_function_flag").Contains(true) &&
		allowed("transfer_function_index").Contains(target) {
		out = append(out, bitstream.TransferFunction{CustomTransferFunctionFlag: true, Index: target})
	}
	return out
}

func colorSpecOptions(allowed allowedFunc, target, defaults vc2.VideoParameters) []bitstream.ColorSpec {
	var out []bitstream.ColorSpec
	matches := func(spec vc2.ColorSpec) bool {
		return spec.ColorPrimariesIndex == target.ColorPrimariesIndex &&
			spec.ColorMatrixIndex == target.ColorMatrixIndex &&
			spec.TransferFunctionIndex == target.TransferFunctionIndex
	}
	defaultSpec := vc2.ColorSpec{
		ColorPrimariesIndex:   defaults.ColorPrimariesIndex,
		ColorMatrixIndex:      defaults.ColorMatrixIndex,
		TransferFunctionIndex: defaults.TransferFunctionIndex,
	}
	if matches(defaultSpec) && allowed("custom_color_spec_flag").Contains(false) {
		out = append(out, bitstream.ColorSpec{})
	}
	if !allowed("custom_color_spec_flag").Contains(true) {
		return out
	}

	// Preset specifications, skipping 0 which opens the custom form.
	for index := 1; index <= 4; index++ {
		if matches(vc2.PresetColorSpecs[index]) && allowed("color_spec_index").Contains(index) {
			out = append(out, bitstream.ColorSpec{CustomColorSpecFlag: true, Index: index})
		}
	}

	if allowed("color_spec_index").Contains(0) {
		primaries := colorPrimariesOptions(allowed, target.ColorPrimariesIndex)
		matrices := colorMatrixOptions(allowed, target.ColorMatrixIndex)
		transfers := transferFunctionOptions(allowed, target.TransferFunctionIndex)
		if len(primaries) > 0 && len(matrices) > 0 && len(transfers) > 0 {
			n := maxLen(len(primaries), len(matrices), len(transfers))
			for i := 0; i < n; i++ {
				out = append(out, bitstream.ColorSpec{
					CustomColorSpecFlag: true,
					Index:               0,
					ColorPrimaries:      pick(primaries, i),
					ColorMatrix:         pick(matrices, i),
					TransferFunction:    pick(transfers, i),
				})
			}
		}
	}
	return out
}

// pick indexes into a non-empty option list, repeating the final option
// when i runs past the end. Combining sub-field options this way yields
// max-length many combinations instead of a cross product.
func pick[T any](options []T, i int) T {
	if i < len(options) {
		return options[i]
	}
	return options[len(options)-1]
}

func maxLen(lens ...int) int {
	out := 0
	for _, n := range lens {
		if n > out {
			out = n
		}
	}
	return out
}

// sourceParameterOptions enumerates every legal coding of the source
// parameters for one candidate base video format, most preferable first. A
// nil result means the base format cannot express the target parameters
// within the level: either its top_field_first flag disagrees (there is no
// override for it) or some sub-field has no permitted coding.
func sourceParameterOptions(allowed allowedFunc, target vc2.VideoParameters, base vc2.BaseVideoFormat) []bitstream.SourceParameters {
	defaults, ok := vc2.SetSourceDefaults(base)
	if !ok || defaults.TopFieldFirst != target.TopFieldFirst {
		return nil
	}

	frameSizes := frameSizeOptions(allowed, target, defaults)
	colorDiffs := colorDiffSamplingFormatOptions(allowed, target, defaults)
	scans := scanFormatOptions(allowed, target, defaults)
	frameRates := frameRateOptions(allowed, target, defaults)
	aspects := pixelAspectRatioOptions(allowed, target, defaults)
	cleanAreas := cleanAreaOptions(allowed, target, defaults)
	signalRanges := signalRangeOptions(allowed, target, defaults)
	colorSpecs := colorSpecOptions(allowed, target, defaults)

	if len(frameSizes) == 0 || len(colorDiffs) == 0 || len(scans) == 0 ||
		len(frameRates) == 0 || len(aspects) == 0 || len(cleanAreas) == 0 ||
		len(signalRanges) == 0 || len(colorSpecs) == 0 {
		return nil
	}

	n := maxLen(
		len(frameSizes), len(colorDiffs), len(scans), len(frameRates),
		len(aspects), len(cleanAreas), len(signalRanges), len(colorSpecs),
	)
	out := make([]bitstream.SourceParameters, n)
	for i := range out {
		out[i] = bitstream.SourceParameters{
			FrameSize:               pick(frameSizes, i),
			ColorDiffSamplingFormat: pick(colorDiffs, i),
			ScanFormat:              pick(scans, i),
			FrameRate:               pick(frameRates, i),
			PixelAspectRatio:        pick(aspects, i),
			CleanArea:               pick(cleanAreas, i),
			SignalRange:             pick(signalRanges, i),
			ColorSpec:               pick(colorSpecs, i),
		}
	}
	return out
}
