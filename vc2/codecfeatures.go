package vc2

import "github.com/vc2tools/go-vc2-conformance/constraint"

// CodecFeatures is a complete description of the coding options an encoder
// should use: the video format to declare, the transform to apply, and the
// slice layout and rate parameters. A codec features record, together with
// raw pictures, is everything needed to produce a stream.
type CodecFeatures struct {
	Name string

	Level   Level
	Profile Profile

	MajorVersion int
	MinorVersion int

	PictureCodingMode PictureCodingMode
	VideoParameters   VideoParameters

	WaveletIndex WaveletFilter
	DwtDepth     int

	SlicesX int
	SlicesY int

	// Lossless selects variable-rate lossless coding; PictureBytes is
	// ignored when set. Otherwise PictureBytes fixes the coded size of
	// each picture.
	Lossless     bool
	PictureBytes int

	// QuantizationMatrix overrides the default quantization matrix when
	// non-nil, keyed by (level << 8) | orientation.
	QuantizationMatrix map[int]int
}

// PictureDimensions returns the luma and color difference dimensions of a
// single picture for the given features (11.6.2). Field pictures are half
// the frame height.
func PictureDimensions(features CodecFeatures) (lumaWidth, lumaHeight, colorDiffWidth, colorDiffHeight int) {
	lumaWidth = features.VideoParameters.FrameWidth
	lumaHeight = features.VideoParameters.FrameHeight
	if features.PictureCodingMode == PicturesAreFields {
		lumaHeight /= 2
	}
	colorDiffWidth, colorDiffHeight = lumaWidth, lumaHeight
	switch features.VideoParameters.ColorDiffFormat {
	case ColorDiff422:
		colorDiffWidth /= 2
	case ColorDiff420:
		colorDiffWidth /= 2
		colorDiffHeight /= 2
	}
	return
}

// SlicesHaveSameDimensions reports whether every slice in a picture covers
// an identical number of transform coefficients. This holds when the
// transform-padded picture dimensions divide evenly into the slice grid, for
// both luma and color difference components.
func SlicesHaveSameDimensions(features CodecFeatures) bool {
	lw, lh, cw, ch := PictureDimensions(features)
	align := 1 << features.DwtDepth
	for _, dim := range []struct{ size, slices int }{
		{paddedTo(lw, align), features.SlicesX},
		{paddedTo(lh, align), features.SlicesY},
		{paddedTo(cw, align), features.SlicesX},
		{paddedTo(ch, align), features.SlicesY},
	} {
		if dim.slices == 0 || dim.size%dim.slices != 0 {
			return false
		}
	}
	return true
}

func paddedTo(size, align int) int {
	return (size + align - 1) / align * align
}

// TrivialLevelConstraints returns the constraint table assignment implied
// directly by a codec features record: the coding parameters which are fixed
// for the whole sequence regardless of which sequence header options are
// chosen. The level constraint solver extends this assignment with the
// per-header choices.
func TrivialLevelConstraints(features CodecFeatures) constraint.Assignment {
	assignment := constraint.Assignment{
		"level":                       int(features.Level),
		"profile":                     int(features.Profile),
		"major_version":               features.MajorVersion,
		"minor_version":               features.MinorVersion,
		"picture_coding_mode":         int(features.PictureCodingMode),
		"wavelet_index":               int(features.WaveletIndex),
		"dwt_depth":                   features.DwtDepth,
		"slices_x":                    features.SlicesX,
		"slices_y":                    features.SlicesY,
		"slices_have_same_dimensions": SlicesHaveSameDimensions(features),
		"custom_quant_matrix":         features.QuantizationMatrix != nil,
	}
	if features.Profile == ProfileHighQuality {
		assignment["slice_prefix_bytes"] = 0
		assignment["slice_size_scaler"] = 1
	}
	return assignment
}
