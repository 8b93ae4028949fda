package vc2

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadCodecFeatures reports a malformed codec features CSV.
var ErrBadCodecFeatures = errors.New("bad codec features")

// ReadCodecFeaturesCSV reads codec feature records from CSV data.
//
// The first non-comment row is a header naming the columns; every following
// row is one record. The base_video_format column seeds the video parameters
// with that format's defaults, which the remaining video parameter columns
// override individually. Empty cells leave the default in place.
func ReadCodecFeaturesCSV(r io.Reader) ([]CodecFeatures, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var header []string
	var out []CodecFeatures
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadCodecFeatures, err)
		}
		rowNum++
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		if header == nil {
			header = row
			for _, column := range header {
				if _, ok := codecFeatureColumns[strings.TrimSpace(column)]; !ok {
					return nil, fmt.Errorf("%w: unknown column %q", ErrBadCodecFeatures, column)
				}
			}
			continue
		}

		features, err := codecFeaturesFromRow(header, row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadCodecFeatures, rowNum, err)
		}
		out = append(out, features)
	}
	return out, nil
}

func codecFeaturesFromRow(header, row []string) (CodecFeatures, error) {
	cell := func(column string) string {
		for i, name := range header {
			if strings.TrimSpace(name) == column && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	// The base format defaults come first so later columns can override
	// individual parameters.
	features := CodecFeatures{Profile: ProfileHighQuality, MajorVersion: 2}
	base := BaseVideoFormatCustom
	if s := cell("base_video_format"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return CodecFeatures{}, fmt.Errorf("base_video_format: bad value %q", s)
		}
		base = BaseVideoFormat(v)
	}
	params, ok := SetSourceDefaults(base)
	if !ok {
		return CodecFeatures{}, fmt.Errorf("base_video_format: unknown format %d", base)
	}
	features.VideoParameters = params

	for _, column := range header {
		column = strings.TrimSpace(column)
		value := cell(column)
		if value == "" || column == "base_video_format" {
			continue
		}
		if err := codecFeatureColumns[column](&features, value); err != nil {
			return CodecFeatures{}, fmt.Errorf("%s: %v", column, err)
		}
	}
	if features.Name == "" {
		return CodecFeatures{}, errors.New("missing name")
	}
	return features, nil
}

func intColumn(set func(*CodecFeatures, int)) func(*CodecFeatures, string) error {
	return func(f *CodecFeatures, s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("bad value %q", s)
		}
		set(f, v)
		return nil
	}
}

func boolColumn(set func(*CodecFeatures, bool)) func(*CodecFeatures, string) error {
	return func(f *CodecFeatures, s string) error {
		switch strings.ToLower(s) {
		case "true":
			set(f, true)
		case "false":
			set(f, false)
		default:
			return fmt.Errorf("bad value %q", s)
		}
		return nil
	}
}

var codecFeatureColumns = map[string]func(*CodecFeatures, string) error{
	"name": func(f *CodecFeatures, s string) error {
		f.Name = s
		return nil
	},
	"base_video_format": func(f *CodecFeatures, s string) error {
		// Handled up front in codecFeaturesFromRow.
		return nil
	},

	"level":               intColumn(func(f *CodecFeatures, v int) { f.Level = Level(v) }),
	"profile":             intColumn(func(f *CodecFeatures, v int) { f.Profile = Profile(v) }),
	"major_version":       intColumn(func(f *CodecFeatures, v int) { f.MajorVersion = v }),
	"minor_version":       intColumn(func(f *CodecFeatures, v int) { f.MinorVersion = v }),
	"picture_coding_mode": intColumn(func(f *CodecFeatures, v int) { f.PictureCodingMode = PictureCodingMode(v) }),

	"frame_width":  intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.FrameWidth = v }),
	"frame_height": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.FrameHeight = v }),
	"color_diff_format_index": intColumn(func(f *CodecFeatures, v int) {
		f.VideoParameters.ColorDiffFormat = ColorDiffFormat(v)
	}),
	"source_sampling": intColumn(func(f *CodecFeatures, v int) {
		f.VideoParameters.SourceSampling = SourceSampling(v)
	}),
	"top_field_first": boolColumn(func(f *CodecFeatures, v bool) { f.VideoParameters.TopFieldFirst = v }),

	"frame_rate_numer":         intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.FrameRateNumer = v }),
	"frame_rate_denom":         intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.FrameRateDenom = v }),
	"pixel_aspect_ratio_numer": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.PixelAspectRatioNumer = v }),
	"pixel_aspect_ratio_denom": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.PixelAspectRatioDenom = v }),

	"clean_width":  intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.CleanWidth = v }),
	"clean_height": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.CleanHeight = v }),
	"left_offset":  intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.LeftOffset = v }),
	"top_offset":   intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.TopOffset = v }),

	"luma_offset":          intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.LumaOffset = v }),
	"luma_excursion":       intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.LumaExcursion = v }),
	"color_diff_offset":    intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.ColorDiffOffset = v }),
	"color_diff_excursion": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.ColorDiffExcursion = v }),

	"color_primaries_index": intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.ColorPrimariesIndex = v }),
	"color_matrix_index":    intColumn(func(f *CodecFeatures, v int) { f.VideoParameters.ColorMatrixIndex = v }),
	"transfer_function_index": intColumn(func(f *CodecFeatures, v int) {
		f.VideoParameters.TransferFunctionIndex = v
	}),

	"wavelet_index": intColumn(func(f *CodecFeatures, v int) { f.WaveletIndex = WaveletFilter(v) }),
	"dwt_depth":     intColumn(func(f *CodecFeatures, v int) { f.DwtDepth = v }),
	"slices_x":      intColumn(func(f *CodecFeatures, v int) { f.SlicesX = v }),
	"slices_y":      intColumn(func(f *CodecFeatures, v int) { f.SlicesY = v }),

	"lossless":      boolColumn(func(f *CodecFeatures, v bool) { f.Lossless = v }),
	"picture_bytes": intColumn(func(f *CodecFeatures, v int) { f.PictureBytes = v }),
}
