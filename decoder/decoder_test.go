package decoder

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/constraint"
	"github.com/vc2tools/go-vc2-conformance/encoder"
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

func tinyFeatures() vc2.CodecFeatures {
	params, _ := vc2.SetSourceDefaults(vc2.BaseVideoFormatCustom)
	params.FrameWidth = 16
	params.FrameHeight = 8
	return vc2.CodecFeatures{
		Name:            "tiny",
		Level:           vc2.LevelUnconstrained,
		Profile:         vc2.ProfileHighQuality,
		MajorVersion:    2,
		VideoParameters: params,
		WaveletIndex:    vc2.WaveletHaar1,
		DwtDepth:        1,
		SlicesX:         2,
		SlicesY:         2,
		Lossless:        true,
	}
}

func tinyPicture(features vc2.CodecFeatures, number uint32) *vc2.RawPicture {
	lw, lh, cw, ch := vc2.PictureDimensions(features)
	plane := func(w, h int, seed int32) []int32 {
		out := make([]int32, w*h)
		for i := range out {
			out[i] = (seed*31 + int32(i)*7) % 256
		}
		return out
	}
	return &vc2.RawPicture{
		PictureNumber: number,
		Y:             plane(lw, lh, int32(number)),
		C1:            plane(cw, ch, int32(number)+100),
		C2:            plane(cw, ch, int32(number)+200),
	}
}

func encodeStream(t *testing.T, features vc2.CodecFeatures, pictures []*vc2.RawPicture) []byte {
	t.Helper()
	seq, err := encoder.MakeSequence(vc2.StandardConstraints(), features, pictures, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))
	return buf.Bytes()
}

func TestDecodeSequenceRoundTrip(t *testing.T) {
	features := tinyFeatures()
	pictures := []*vc2.RawPicture{tinyPicture(features, 0), tinyPicture(features, 1)}
	stream := encodeStream(t, features, pictures)

	result, err := New(nil).DecodeSequence(bytes.NewReader(stream))
	require.NoError(t, err)

	require.NotNil(t, result.Header)
	assert.Equal(t, 4, result.UnitCount)
	require.Len(t, result.Pictures, 2)
	for i, want := range pictures {
		// Lossless coding at quantization index zero reconstructs the
		// pictures sample for sample.
		assert.Empty(t, cmp.Diff(want, result.Pictures[i]), "picture %d", i)
	}
}

func TestDecodeSequenceLevelRestrictionSatisfied(t *testing.T) {
	params, _ := vc2.SetSourceDefaults(vc2.BaseVideoFormatHD1080P50)
	features := vc2.CodecFeatures{
		Name:            "hd",
		Level:           vc2.LevelHDOverSDI,
		Profile:         vc2.ProfileHighQuality,
		MajorVersion:    2,
		VideoParameters: params,
		WaveletIndex:    vc2.WaveletLeGall53,
		DwtDepth:        2,
		SlicesX:         120,
		SlicesY:         108,
		Lossless:        true,
	}
	lw, lh, cw, ch := vc2.PictureDimensions(features)
	picture := &vc2.RawPicture{
		Y:  make([]int32, lw*lh),
		C1: make([]int32, cw*ch),
		C2: make([]int32, cw*ch),
	}
	stream := encodeStream(t, features, []*vc2.RawPicture{picture})

	result, err := New(nil).DecodeSequence(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Equal(t, vc2.LevelHDOverSDI, result.Header.ParseParameters.Level)
	require.Len(t, result.Pictures, 1)
	assert.Empty(t, cmp.Diff(picture, result.Pictures[0]))
}

func TestDecodeSequenceLevelRestrictionViolated(t *testing.T) {
	// Under hd_over_sd_sdi, padding after a sequence header must be
	// followed by a picture, so ending the sequence there is not allowed.
	constraints := vc2.StandardConstraints()
	params, _ := vc2.SetSourceDefaults(vc2.BaseVideoFormatHD1080P50)
	features := vc2.CodecFeatures{
		Name:            "hd",
		Level:           vc2.LevelHDOverSDI,
		Profile:         vc2.ProfileHighQuality,
		MajorVersion:    2,
		VideoParameters: params,
		WaveletIndex:    vc2.WaveletLeGall53,
		DwtDepth:        2,
		SlicesX:         120,
		SlicesY:         108,
		Lossless:        true,
	}
	header, err := encoder.MakeSequenceHeader(constraints, features)
	require.NoError(t, err)

	seq := &bitstream.Sequence{DataUnits: []bitstream.DataUnit{
		{ParseCode: vc2.ParseCodeSequenceHeader, SequenceHeader: header},
		{ParseCode: vc2.ParseCodePaddingData},
		{ParseCode: vc2.ParseCodeEndOfSequence},
	}}
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))

	_, err = New(nil).DecodeSequence(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrNotConformant)
	var conformance *ConformanceError
	require.ErrorAs(t, err, &conformance)
	assert.Contains(t, conformance.Explanation, "not permitted here")
}

func TestDecodeSequenceHeaderViolatesLevel(t *testing.T) {
	constraints := vc2.StandardConstraints()
	params, _ := vc2.SetSourceDefaults(vc2.BaseVideoFormatHD1080P50)
	features := vc2.CodecFeatures{
		Name:            "hd",
		Level:           vc2.LevelHDOverSDI,
		Profile:         vc2.ProfileHighQuality,
		MajorVersion:    2,
		VideoParameters: params,
		WaveletIndex:    vc2.WaveletLeGall53,
		DwtDepth:        2,
		SlicesX:         120,
		SlicesY:         108,
		Lossless:        true,
	}
	header, err := encoder.MakeSequenceHeader(constraints, features)
	require.NoError(t, err)
	// hd_over_sd_sdi only permits the high quality profile.
	header.ParseParameters.Profile = vc2.ProfileLowDelay

	seq := &bitstream.Sequence{DataUnits: []bitstream.DataUnit{
		{ParseCode: vc2.ParseCodeSequenceHeader, SequenceHeader: header},
		{ParseCode: vc2.ParseCodeEndOfSequence},
	}}
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))

	_, err = New(nil).DecodeSequence(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrNotConformant)
	var conformance *ConformanceError
	require.ErrorAs(t, err, &conformance)
	assert.Contains(t, conformance.Explanation, "not permitted by level")
}

func TestDecodeSequenceHeadersMustBeIdentical(t *testing.T) {
	features := tinyFeatures()
	header, err := encoder.MakeSequenceHeader(vc2.StandardConstraints(), features)
	require.NoError(t, err)
	altered := *header
	altered.ParseParameters.MinorVersion = 1

	seq := &bitstream.Sequence{DataUnits: []bitstream.DataUnit{
		{ParseCode: vc2.ParseCodeSequenceHeader, SequenceHeader: header},
		{ParseCode: vc2.ParseCodeSequenceHeader, SequenceHeader: &altered},
		{ParseCode: vc2.ParseCodeEndOfSequence},
	}}
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))

	_, err = New(nil).DecodeSequence(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrNotConformant)
	var conformance *ConformanceError
	require.ErrorAs(t, err, &conformance)
	assert.Contains(t, conformance.Explanation, "identical")
}

func TestDecodeSequencePictureNumbersMustIncrement(t *testing.T) {
	features := tinyFeatures()
	pictures := []*vc2.RawPicture{tinyPicture(features, 0), tinyPicture(features, 5)}
	stream := encodeStream(t, features, pictures)

	_, err := New(nil).DecodeSequence(bytes.NewReader(stream))
	require.ErrorIs(t, err, ErrNotConformant)
	var conformance *ConformanceError
	require.ErrorAs(t, err, &conformance)
	assert.Contains(t, conformance.Explanation, "picture number")
}

func TestDecodeSequenceQindexAgainstConstraints(t *testing.T) {
	// Narrow the unconstrained level's quantization index range and check
	// an out-of-range slice qindex is caught.
	constraints := vc2.StandardConstraints()
	constraints.Table[0]["qindex"] = constraint.NewValueSet(constraint.ValueRange{Low: 0, High: 63})

	features := tinyFeatures()
	seq, err := encoder.MakeSequence(vc2.StandardConstraints(), features, []*vc2.RawPicture{tinyPicture(features, 0)}, nil)
	require.NoError(t, err)
	seq.DataUnits[1].Picture.Slices[0].Qindex = 70
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))

	_, err = New(constraints).DecodeSequence(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, ErrNotConformant)
	var conformance *ConformanceError
	require.ErrorAs(t, err, &conformance)
	assert.Contains(t, conformance.Explanation, "quantization index 70")
}

func TestDecodeSequenceFramingFailures(t *testing.T) {
	features := tinyFeatures()
	stream := encodeStream(t, features, nil)

	t.Run("bad prefix", func(t *testing.T) {
		corrupt := append([]byte(nil), stream...)
		corrupt[0] = 0xFF
		_, err := New(nil).DecodeSequence(bytes.NewReader(corrupt))
		assert.ErrorIs(t, err, ErrNotConformant)
	})

	t.Run("bad previous offset", func(t *testing.T) {
		corrupt := append([]byte(nil), stream...)
		// The last four bytes are the end of sequence block's previous
		// parse offset.
		corrupt[len(corrupt)-1] ^= 0xFF
		_, err := New(nil).DecodeSequence(bytes.NewReader(corrupt))
		require.ErrorIs(t, err, ErrNotConformant)
		var conformance *ConformanceError
		require.ErrorAs(t, err, &conformance)
		assert.Contains(t, conformance.Explanation, "previous parse offset")
	})

	t.Run("truncated mid unit", func(t *testing.T) {
		_, err := New(nil).DecodeSequence(bytes.NewReader(stream[:len(stream)-5]))
		assert.ErrorIs(t, err, ErrNotConformant)
	})

	t.Run("missing end of sequence", func(t *testing.T) {
		_, err := New(nil).DecodeSequence(bytes.NewReader(stream[:len(stream)-bitstream.ParseInfoSize]))
		require.ErrorIs(t, err, ErrNotConformant)
		var conformance *ConformanceError
		require.ErrorAs(t, err, &conformance)
		assert.Contains(t, conformance.Explanation, "without an end of sequence")
	})

	t.Run("trailing data", func(t *testing.T) {
		extended := append(append([]byte(nil), stream...), 0xDE, 0xAD)
		_, err := New(nil).DecodeSequence(bytes.NewReader(extended))
		require.ErrorIs(t, err, ErrNotConformant)
		var conformance *ConformanceError
		require.ErrorAs(t, err, &conformance)
		assert.Contains(t, conformance.Explanation, "after the end of sequence")
	})
}

func TestDecodeSequenceUnsupportedWavelet(t *testing.T) {
	features := tinyFeatures()
	seq, err := encoder.MakeSequence(vc2.StandardConstraints(), features, []*vc2.RawPicture{tinyPicture(features, 0)}, nil)
	require.NoError(t, err)
	seq.DataUnits[1].Picture.TransformParameters.WaveletIndex = vc2.WaveletFidelity
	var buf bytes.Buffer
	require.NoError(t, bitstream.WriteSequence(&buf, seq))

	_, err = New(nil).DecodeSequence(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnsupportedStream)
}

func TestDecodeSequenceLowDelayUnsupported(t *testing.T) {
	features := tinyFeatures()
	stream := encodeStream(t, features, nil)

	// Splice an empty low delay picture unit in front of the end of
	// sequence block, fixing up the offset chain by hand.
	headPart := stream[:len(stream)-bitstream.ParseInfoSize]
	var buf bytes.Buffer
	buf.Write(headPart)

	var ld [bitstream.ParseInfoSize]byte
	copy(ld[:4], "BBCD")
	ld[4] = byte(vc2.ParseCodeLowDelayPicture)
	binary.BigEndian.PutUint32(ld[5:9], bitstream.ParseInfoSize)
	binary.BigEndian.PutUint32(ld[9:13], uint32(len(headPart)))
	buf.Write(ld[:])

	var eos [bitstream.ParseInfoSize]byte
	copy(eos[:4], "BBCD")
	eos[4] = byte(vc2.ParseCodeEndOfSequence)
	binary.BigEndian.PutUint32(eos[9:13], bitstream.ParseInfoSize)
	buf.Write(eos[:])

	_, err := New(nil).DecodeSequence(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrUnsupportedStream)
}
