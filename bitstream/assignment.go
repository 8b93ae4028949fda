package bitstream

import "github.com/vc2tools/go-vc2-conformance/constraint"

// ConstraintAssignment expresses a sequence header's coded choices as a
// constraint table assignment. Only values actually present in the stream
// are assigned: fields gated behind a clear custom flag get no key, matching
// the table's convention that absent keys are unconstrained.
func (h *SequenceHeader) ConstraintAssignment() constraint.Assignment {
	a := constraint.Assignment{
		"level":               int(h.ParseParameters.Level),
		"profile":             int(h.ParseParameters.Profile),
		"major_version":       h.ParseParameters.MajorVersion,
		"minor_version":       h.ParseParameters.MinorVersion,
		"base_video_format":   int(h.BaseVideoFormat),
		"picture_coding_mode": int(h.PictureCodingMode),
	}

	p := &h.SourceParameters

	a["custom_dimensions_flag"] = p.FrameSize.CustomDimensionsFlag
	if p.FrameSize.CustomDimensionsFlag {
		a["frame_width"] = p.FrameSize.FrameWidth
		a["frame_height"] = p.FrameSize.FrameHeight
	}

	a["custom_color_diff_format_flag"] = p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag
	if p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag {
		a["color_diff_format_index"] = int(p.ColorDiffSamplingFormat.ColorDiffFormatIndex)
	}

	a["custom_scan_format_flag"] = p.ScanFormat.CustomScanFormatFlag
	if p.ScanFormat.CustomScanFormatFlag {
		a["source_sampling"] = int(p.ScanFormat.SourceSampling)
	}

	a["custom_frame_rate_flag"] = p.FrameRate.CustomFrameRateFlag
	if p.FrameRate.CustomFrameRateFlag {
		a["frame_rate_index"] = p.FrameRate.Index
		if p.FrameRate.Index == 0 {
			a["frame_rate_numer"] = p.FrameRate.FrameRateNumer
			a["frame_rate_denom"] = p.FrameRate.FrameRateDenom
		}
	}

	a["custom_pixel_aspect_ratio_flag"] = p.PixelAspectRatio.CustomPixelAspectRatioFlag
	if p.PixelAspectRatio.CustomPixelAspectRatioFlag {
		a["pixel_aspect_ratio_index"] = p.PixelAspectRatio.Index
		if p.PixelAspectRatio.Index == 0 {
			a["pixel_aspect_ratio_numer"] = p.PixelAspectRatio.PixelAspectRatioNumer
			a["pixel_aspect_ratio_denom"] = p.PixelAspectRatio.PixelAspectRatioDenom
		}
	}

	a["custom_clean_area_flag"] = p.CleanArea.CustomCleanAreaFlag
	if p.CleanArea.CustomCleanAreaFlag {
		a["clean_width"] = p.CleanArea.CleanWidth
		a["clean_height"] = p.CleanArea.CleanHeight
		a["left_offset"] = p.CleanArea.LeftOffset
		a["top_offset"] = p.CleanArea.TopOffset
	}

	a["custom_signal_range_flag"] = p.SignalRange.CustomSignalRangeFlag
	if p.SignalRange.CustomSignalRangeFlag {
		a["custom_signal_range_index"] = p.SignalRange.Index
		if p.SignalRange.Index == 0 {
			a["luma_offset"] = p.SignalRange.LumaOffset
			a["luma_excursion"] = p.SignalRange.LumaExcursion
			a["color_diff_offset"] = p.SignalRange.ColorDiffOffset
			a["color_diff_excursion"] = p.SignalRange.ColorDiffExcursion
		}
	}

	a["custom_color_spec_flag"] = p.ColorSpec.CustomColorSpecFlag
	if p.ColorSpec.CustomColorSpecFlag {
		a["color_spec_index"] = p.ColorSpec.Index
		if p.ColorSpec.Index == 0 {
			a["custom_color_primaries_flag"] = p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag
			if p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag {
				a["color_primaries_index"] = p.ColorSpec.ColorPrimaries.Index
			}
			a["custom_color_matrix_flag"] = p.ColorSpec.ColorMatrix.CustomColorMatrixFlag
			if p.ColorSpec.ColorMatrix.CustomColorMatrixFlag {
				a["color_matrix_index"] = p.ColorSpec.ColorMatrix.Index
			}
			a["custom_transfer_function_flag"] = p.ColorSpec.TransferFunction.CustomTransferFunctionFlag
			if p.ColorSpec.TransferFunction.CustomTransferFunctionFlag {
				a["transfer_function_index"] = p.ColorSpec.TransferFunction.Index
			}
		}
	}

	return a
}

// ConstraintAssignment expresses a picture's transform parameters as a
// constraint table assignment.
func (t *TransformParameters) ConstraintAssignment() constraint.Assignment {
	return constraint.Assignment{
		"wavelet_index":       int(t.WaveletIndex),
		"dwt_depth":           t.DwtDepth,
		"slices_x":            t.SlicesX,
		"slices_y":            t.SlicesY,
		"slice_prefix_bytes":  t.SlicePrefixBytes,
		"slice_size_scaler":   t.SliceSizeScaler,
		"custom_quant_matrix": t.CustomQuantMatrixFlag,
	}
}
