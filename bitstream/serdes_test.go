package bitstream

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vc2tools/go-vc2-conformance/vc2"
)

func TestSequenceHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		header SequenceHeader
	}{
		{
			name: "all defaults",
			header: SequenceHeader{
				ParseParameters: ParseParameters{
					MajorVersion: 2,
					Profile:      vc2.ProfileHighQuality,
					Level:        vc2.LevelHDOverSDI,
				},
				BaseVideoFormat: vc2.BaseVideoFormatHD1080P50,
			},
		},
		{
			name: "custom dimensions and preset overrides",
			header: SequenceHeader{
				ParseParameters: ParseParameters{MajorVersion: 2, Profile: vc2.ProfileHighQuality},
				BaseVideoFormat: vc2.BaseVideoFormatCustom,
				SourceParameters: SourceParameters{
					FrameSize: FrameSize{
						CustomDimensionsFlag: true,
						FrameWidth:           1000,
						FrameHeight:          600,
					},
					FrameRate: FrameRate{CustomFrameRateFlag: true, Index: 3},
					SignalRange: SignalRange{
						CustomSignalRangeFlag: true,
						Index:                 0,
						LumaOffset:            16,
						LumaExcursion:         219,
						ColorDiffOffset:       128,
						ColorDiffExcursion:    224,
					},
				},
				PictureCodingMode: vc2.PicturesAreFields,
			},
		},
		{
			name: "fully custom color spec",
			header: SequenceHeader{
				ParseParameters: ParseParameters{MajorVersion: 2, Profile: vc2.ProfileHighQuality},
				BaseVideoFormat: vc2.BaseVideoFormatHD720P50,
				SourceParameters: SourceParameters{
					FrameRate: FrameRate{
						CustomFrameRateFlag: true,
						Index:               0,
						FrameRateNumer:      12345,
						FrameRateDenom:      1000,
					},
					PixelAspectRatio: PixelAspectRatio{
						CustomPixelAspectRatioFlag: true,
						Index:                      0,
						PixelAspectRatioNumer:      2,
						PixelAspectRatioDenom:      3,
					},
					CleanArea: CleanArea{
						CustomCleanAreaFlag: true,
						CleanWidth:          1260,
						CleanHeight:         700,
						LeftOffset:          10,
						TopOffset:           10,
					},
					ColorSpec: ColorSpec{
						CustomColorSpecFlag: true,
						Index:               0,
						ColorPrimaries:      ColorPrimaries{CustomColorPrimariesFlag: true, Index: 3},
						TransferFunction:    TransferFunction{CustomTransferFunctionFlag: true, Index: 2},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			bw := NewBitWriter(&buf)
			WriteSequenceHeader(bw, &tt.header)
			require.NoError(t, bw.Err())

			br := NewBitReader(&buf)
			got := ReadSequenceHeader(br)
			require.NoError(t, br.Err())
			if diff := cmp.Diff(&tt.header, got); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPictureParseRoundTrip(t *testing.T) {
	// A tiny 8x4 4:2:2 picture split into 2x1 slices with a depth 1
	// transform.
	geometry := PictureGeometry{
		LumaWidth: 8, LumaHeight: 4,
		ColorDiffWidth: 4, ColorDiffHeight: 4,
	}
	transform := TransformParameters{
		WaveletIndex:    vc2.WaveletHaar0,
		DwtDepth:        1,
		SlicesX:         2,
		SlicesY:         1,
		SliceSizeScaler: 1,
	}

	coeffs := func(n int, seed int32) []int32 {
		out := make([]int32, n)
		for i := range out {
			out[i] = seed*7 - int32(i)*3
		}
		return out
	}

	picture := PictureParse{
		PictureNumber:       42,
		TransformParameters: transform,
		Slices:              make([]HQSlice, 2),
	}
	for sx := 0; sx < 2; sx++ {
		for c := 0; c < 3; c++ {
			dims := geometry.componentDimensions(transform.DwtDepth)
			n := SliceCoefficientCount(dims[c][0], dims[c][1], 1, 2, 1, sx, 0)
			picture.Slices[sx].Components[c] = coeffs(n, int32(sx*3+c))
		}
	}

	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	require.NoError(t, WritePictureParse(bw, &picture))

	br := NewBitReader(&buf)
	got := ReadPictureParse(br, geometry)
	require.NoError(t, br.Err())
	if diff := cmp.Diff(&picture, got); diff != "" {
		t.Errorf("picture mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceCoefficientCountCoversComponent(t *testing.T) {
	// The per-slice counts must sum to the padded component size.
	width, height, depth := 12, 8, 2
	slicesX, slicesY := 3, 2

	total := 0
	for sy := 0; sy < slicesY; sy++ {
		for sx := 0; sx < slicesX; sx++ {
			total += SliceCoefficientCount(width, height, depth, slicesX, slicesY, sx, sy)
		}
	}
	assert.Equal(t, width*height, total)
}

func TestReadHQSliceShortBoundedBlocks(t *testing.T) {
	// A component block too short for its coefficient count is not an
	// error: reads past the end of the bounded block see one bits, so the
	// missing coefficients decode to zero.
	transform := TransformParameters{SliceSizeScaler: 1}
	data := []byte{
		12,      // qindex
		0,       // luma block: empty
		1, 0x23, // first color difference block: one byte, codes 1 then -1
		0, // second color difference block: empty
	}

	br := NewBitReader(bytes.NewReader(data))
	slice := readHQSlice(br, &transform, [3]int{3, 4, 2})
	require.NoError(t, br.Err())

	assert.Equal(t, 12, slice.Qindex)
	assert.Equal(t, []int32{0, 0, 0}, slice.Components[0])
	assert.Equal(t, []int32{1, -1, 0, 0}, slice.Components[1])
	assert.Equal(t, []int32{0, 0}, slice.Components[2])
}

func TestWriteHQSliceOverflow(t *testing.T) {
	transform := TransformParameters{SliceSizeScaler: 1}
	slice := HQSlice{}
	// Large magnitudes take many bits each; 2000 of them cannot fit in a
	// 255 byte component.
	slice.Components[0] = make([]int32, 2000)
	for i := range slice.Components[0] {
		slice.Components[0][i] = 1 << 20
	}

	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	err := writeHQSlice(bw, &transform, &slice)
	assert.ErrorIs(t, err, ErrSliceOverflow)
}
