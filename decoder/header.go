package decoder

import (
	"fmt"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// expandVideoParameters resolves a coded sequence header into concrete video
// parameters: the base video format's defaults with the header's overrides
// applied on top (11.4.2). Unknown base formats or preset indices are
// reported as errors for the caller to turn into conformance failures.
func expandVideoParameters(h *bitstream.SequenceHeader) (vc2.VideoParameters, error) {
	params, ok := vc2.SetSourceDefaults(h.BaseVideoFormat)
	if !ok {
		return params, fmt.Errorf("unknown base video format %d", int(h.BaseVideoFormat))
	}
	p := &h.SourceParameters

	if p.FrameSize.CustomDimensionsFlag {
		params.FrameWidth = p.FrameSize.FrameWidth
		params.FrameHeight = p.FrameSize.FrameHeight
	}
	if p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag {
		params.ColorDiffFormat = p.ColorDiffSamplingFormat.ColorDiffFormatIndex
	}
	if p.ScanFormat.CustomScanFormatFlag {
		params.SourceSampling = p.ScanFormat.SourceSampling
	}

	if p.FrameRate.CustomFrameRateFlag {
		if p.FrameRate.Index == 0 {
			params.FrameRateNumer = p.FrameRate.FrameRateNumer
			params.FrameRateDenom = p.FrameRate.FrameRateDenom
		} else {
			preset, ok := vc2.PresetFrameRates[p.FrameRate.Index]
			if !ok {
				return params, fmt.Errorf("unknown frame rate preset %d", p.FrameRate.Index)
			}
			params.FrameRateNumer = preset.Numer
			params.FrameRateDenom = preset.Denom
		}
	}

	if p.PixelAspectRatio.CustomPixelAspectRatioFlag {
		if p.PixelAspectRatio.Index == 0 {
			params.PixelAspectRatioNumer = p.PixelAspectRatio.PixelAspectRatioNumer
			params.PixelAspectRatioDenom = p.PixelAspectRatio.PixelAspectRatioDenom
		} else {
			preset, ok := vc2.PresetPixelAspectRatios[p.PixelAspectRatio.Index]
			if !ok {
				return params, fmt.Errorf("unknown pixel aspect ratio preset %d", p.PixelAspectRatio.Index)
			}
			params.PixelAspectRatioNumer = preset.Numer
			params.PixelAspectRatioDenom = preset.Denom
		}
	}

	if p.CleanArea.CustomCleanAreaFlag {
		params.CleanWidth = p.CleanArea.CleanWidth
		params.CleanHeight = p.CleanArea.CleanHeight
		params.LeftOffset = p.CleanArea.LeftOffset
		params.TopOffset = p.CleanArea.TopOffset
	}

	if p.SignalRange.CustomSignalRangeFlag {
		if p.SignalRange.Index == 0 {
			params.LumaOffset = p.SignalRange.LumaOffset
			params.LumaExcursion = p.SignalRange.LumaExcursion
			params.ColorDiffOffset = p.SignalRange.ColorDiffOffset
			params.ColorDiffExcursion = p.SignalRange.ColorDiffExcursion
		} else {
			preset, ok := vc2.PresetSignalRanges[p.SignalRange.Index]
			if !ok {
				return params, fmt.Errorf("unknown signal range preset %d", p.SignalRange.Index)
			}
			params.LumaOffset = preset.LumaOffset
			params.LumaExcursion = preset.LumaExcursion
			params.ColorDiffOffset = preset.ColorDiffOffset
			params.ColorDiffExcursion = preset.ColorDiffExcursion
		}
	}

	if p.ColorSpec.CustomColorSpecFlag {
		preset, ok := vc2.PresetColorSpecs[p.ColorSpec.Index]
		if !ok {
			return params, fmt.Errorf("unknown color spec preset %d", p.ColorSpec.Index)
		}
		params.ColorPrimariesIndex = preset.ColorPrimariesIndex
		params.ColorMatrixIndex = preset.ColorMatrixIndex
		params.TransferFunctionIndex = preset.TransferFunctionIndex
		if p.ColorSpec.Index == 0 {
			if p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag {
				params.ColorPrimariesIndex = p.ColorSpec.ColorPrimaries.Index
			}
			if p.ColorSpec.ColorMatrix.CustomColorMatrixFlag {
				params.ColorMatrixIndex = p.ColorSpec.ColorMatrix.Index
			}
			if p.ColorSpec.TransferFunction.CustomTransferFunctionFlag {
				params.TransferFunctionIndex = p.ColorSpec.TransferFunction.Index
			}
		}
	}

	return params, nil
}
