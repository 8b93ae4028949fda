// Package encoder turns codec feature descriptions and raw pictures into
// coded sequences: it solves for sequence headers satisfying the declared
// level's constraints, lays out data units to satisfy the level's ordering
// restrictions, and codes pictures losslessly.
package encoder

import (
	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/constraint"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// MakeSequenceHeaderOptions enumerates the sequence headers which express
// the codec features' video parameters within the restrictions of their
// level, most preferable first: similar base video formats beat dissimilar
// ones, and within one base format fewer overrides beat more.
//
// Codec features no header can express fail with an
// *IncompatibleLevelError.
func MakeSequenceHeaderOptions(constraints *vc2.Constraints, features vc2.CodecFeatures) ([]bitstream.SequenceHeader, error) {
	assignment := vc2.TrivialLevelConstraints(features)
	filtered := constraint.FilterTable(constraints.Table, assignment)
	if len(filtered) == 0 {
		return nil, &IncompatibleLevelError{
			FeatureName: features.Name,
			Reason:      "coding options not permitted by any constraint table entry",
		}
	}

	allowed := func(key string) *constraint.ValueSet {
		return constraint.AllowedValuesFor(filtered, key, nil, constraints.AnyValues[key])
	}

	if !allowed("picture_coding_mode").Contains(int(features.PictureCodingMode)) {
		return nil, &IncompatibleLevelError{
			FeatureName: features.Name,
			Reason:      "picture coding mode not permitted",
		}
	}

	parseParameters := bitstream.ParseParameters{
		MajorVersion: features.MajorVersion,
		MinorVersion: features.MinorVersion,
		Profile:      features.Profile,
		Level:        features.Level,
	}

	var headers []bitstream.SequenceHeader
	allowedFormats := allowed("base_video_format")
	for _, base := range vc2.RankBaseVideoFormatSimilarity(features.VideoParameters) {
		if !allowedFormats.Contains(int(base)) {
			continue
		}
		for _, sourceParameters := range sourceParameterOptions(allowed, features.VideoParameters, base) {
			header := bitstream.SequenceHeader{
				ParseParameters:   parseParameters,
				BaseVideoFormat:   base,
				SourceParameters:  sourceParameters,
				PictureCodingMode: features.PictureCodingMode,
			}
			// Per-sub-field enumeration unions the surviving table
			// columns, so a candidate can mix choices no single
			// column permits together. Check the whole header
			// against the table before accepting it.
			candidate := header.ConstraintAssignment()
			for key, value := range assignment {
				candidate[key] = value
			}
			if !constraint.IsAllowedCombination(constraints.Table, candidate) {
				continue
			}
			headers = append(headers, header)
		}
	}
	if len(headers) == 0 {
		return nil, &IncompatibleLevelError{
			FeatureName: features.Name,
			Reason:      "no base video format can express the video parameters",
		}
	}
	return headers, nil
}

// MakeSequenceHeader returns the most preferable sequence header for the
// codec features.
func MakeSequenceHeader(constraints *vc2.Constraints, features vc2.CodecFeatures) (*bitstream.SequenceHeader, error) {
	headers, err := MakeSequenceHeaderOptions(constraints, features)
	if err != nil {
		return nil, err
	}
	return &headers[0], nil
}
