package vc2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSourceDefaults(t *testing.T) {
	params, ok := SetSourceDefaults(BaseVideoFormatHD1080P50)
	require.True(t, ok)

	assert.Equal(t, 1920, params.FrameWidth)
	assert.Equal(t, 1080, params.FrameHeight)
	assert.Equal(t, ColorDiff422, params.ColorDiffFormat)
	assert.Equal(t, ProgressiveSampling, params.SourceSampling)
	assert.True(t, params.TopFieldFirst)
	// Preset indices resolved to concrete values: 50 fps, square pixels,
	// 10 bit video range, HDTV color spec.
	assert.Equal(t, 50, params.FrameRateNumer)
	assert.Equal(t, 1, params.FrameRateDenom)
	assert.Equal(t, 1, params.PixelAspectRatioNumer)
	assert.Equal(t, 1, params.PixelAspectRatioDenom)
	assert.Equal(t, 64, params.LumaOffset)
	assert.Equal(t, 876, params.LumaExcursion)
	assert.Equal(t, 0, params.ColorPrimariesIndex)

	_, ok = SetSourceDefaults(BaseVideoFormat(99))
	assert.False(t, ok)
}

func TestCountDifferences(t *testing.T) {
	a, _ := SetSourceDefaults(BaseVideoFormatHD1080P50)
	assert.Zero(t, CountDifferences(a, a))

	b := a
	b.FrameWidth = 1280
	b.FrameHeight = 720
	assert.Equal(t, 2, CountDifferences(a, b))
}

func TestRankBaseVideoFormatSimilarity(t *testing.T) {
	target, _ := SetSourceDefaults(BaseVideoFormatHD1080P50)
	ranked := RankBaseVideoFormatSimilarity(target)
	require.NotEmpty(t, ranked)

	// The format itself is a perfect match and ranks first.
	assert.Equal(t, BaseVideoFormatHD1080P50, ranked[0])

	// Formats disagreeing on top_field_first are excluded outright: that
	// flag has no sequence header override.
	for _, format := range ranked {
		defaults, _ := SetSourceDefaults(format)
		assert.Equal(t, target.TopFieldFirst, defaults.TopFieldFirst)
	}
}

func TestRankBaseVideoFormatSimilarityCustomTarget(t *testing.T) {
	// A target matching no format exactly still gets a full ranking of
	// the compatible formats, nearest first.
	target, _ := SetSourceDefaults(BaseVideoFormatHD1080P60)
	target.FrameRateNumer = 48
	target.FrameRateDenom = 1

	ranked := RankBaseVideoFormatSimilarity(target)
	require.NotEmpty(t, ranked)
	best, _ := SetSourceDefaults(ranked[0])
	for _, format := range ranked[1:] {
		other, _ := SetSourceDefaults(format)
		assert.LessOrEqual(t,
			CountDifferences(best, target), CountDifferences(other, target))
	}
}
