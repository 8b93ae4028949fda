package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

func TestExpandVideoParametersDefaults(t *testing.T) {
	h := &bitstream.SequenceHeader{BaseVideoFormat: vc2.BaseVideoFormatHD1080P50}
	params, err := expandVideoParameters(h)
	require.NoError(t, err)

	want, ok := vc2.SetSourceDefaults(vc2.BaseVideoFormatHD1080P50)
	require.True(t, ok)
	assert.Equal(t, want, params)
}

func TestExpandVideoParametersOverrides(t *testing.T) {
	h := &bitstream.SequenceHeader{BaseVideoFormat: vc2.BaseVideoFormatHD1080P50}
	h.SourceParameters.FrameSize = bitstream.FrameSize{
		CustomDimensionsFlag: true,
		FrameWidth:           1280,
		FrameHeight:          720,
	}
	h.SourceParameters.FrameRate = bitstream.FrameRate{
		CustomFrameRateFlag: true,
		Index:               0,
		FrameRateNumer:      24000,
		FrameRateDenom:      1001,
	}
	h.SourceParameters.SignalRange = bitstream.SignalRange{
		CustomSignalRangeFlag: true,
		Index:                 2,
	}
	h.SourceParameters.ColorSpec = bitstream.ColorSpec{
		CustomColorSpecFlag: true,
		Index:               0,
		ColorMatrix: bitstream.ColorMatrix{
			CustomColorMatrixFlag: true,
			Index:                 2,
		},
	}

	params, err := expandVideoParameters(h)
	require.NoError(t, err)
	assert.Equal(t, 1280, params.FrameWidth)
	assert.Equal(t, 720, params.FrameHeight)
	assert.Equal(t, 24000, params.FrameRateNumer)
	assert.Equal(t, 1001, params.FrameRateDenom)
	// Preset 2 is the 8 bit video range.
	assert.Equal(t, 16, params.LumaOffset)
	assert.Equal(t, 219, params.LumaExcursion)
	// Custom color specs start from all-zero sub-indices before their own
	// overrides apply.
	assert.Equal(t, 0, params.ColorPrimariesIndex)
	assert.Equal(t, 2, params.ColorMatrixIndex)
	assert.Equal(t, 0, params.TransferFunctionIndex)
}

func TestExpandVideoParametersBadPresets(t *testing.T) {
	h := &bitstream.SequenceHeader{BaseVideoFormat: vc2.BaseVideoFormat(99)}
	_, err := expandVideoParameters(h)
	assert.Error(t, err)

	h = &bitstream.SequenceHeader{BaseVideoFormat: vc2.BaseVideoFormatHD1080P50}
	h.SourceParameters.FrameRate = bitstream.FrameRate{CustomFrameRateFlag: true, Index: 99}
	_, err = expandVideoParameters(h)
	assert.Error(t, err)
}
