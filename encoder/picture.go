package encoder

import (
	"errors"
	"fmt"

	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/vc2"
	"github.com/vc2tools/go-vc2-conformance/wavelet"
)

// ErrBadPictureGeometry reports a raw picture whose planes do not match the
// dimensions implied by the codec features.
var ErrBadPictureGeometry = errors.New("picture planes do not match codec features")

// EncodePicture codes a raw picture as a lossless high quality picture data
// unit: the wavelet transform is applied at quantization index zero and each
// slice's length field grows to whatever the coefficients need.
func EncodePicture(features vc2.CodecFeatures, picture *vc2.RawPicture) (*bitstream.PictureParse, error) {
	filter, err := wavelet.ForFilter(features.WaveletIndex)
	if err != nil {
		return nil, err
	}

	lw, lh, cw, ch := vc2.PictureDimensions(features)
	planes := [3][]int32{picture.Y, picture.C1, picture.C2}
	dims := [3][2]int{{lw, lh}, {cw, ch}, {cw, ch}}
	for c, plane := range planes {
		if len(plane) != dims[c][0]*dims[c][1] {
			return nil, fmt.Errorf("%w: component %d has %d samples, want %dx%d",
				ErrBadPictureGeometry, c, len(plane), dims[c][0], dims[c][1])
		}
	}

	out := &bitstream.PictureParse{
		PictureNumber: picture.PictureNumber,
		TransformParameters: bitstream.TransformParameters{
			WaveletIndex:    features.WaveletIndex,
			DwtDepth:        features.DwtDepth,
			SlicesX:         features.SlicesX,
			SlicesY:         features.SlicesY,
			SliceSizeScaler: 1,
		},
		Slices: make([]bitstream.HQSlice, features.SlicesX*features.SlicesY),
	}

	align := 1 << features.DwtDepth
	for c, plane := range planes {
		padded, pw, ph := padPlane(plane, dims[c][0], dims[c][1], align)
		filter.Analyze(padded, pw, ph, features.DwtDepth)
		scatterSlices(out, c, padded, pw, ph, features.DwtDepth)
	}
	return out, nil
}

// padPlane grows a plane to dimensions divisible by align, replicating edge
// samples. Replication keeps the padding smooth, so it costs little to code.
func padPlane(plane []int32, width, height, align int) ([]int32, int, int) {
	pw := (width + align - 1) / align * align
	ph := (height + align - 1) / align * align
	if pw == width && ph == height {
		out := make([]int32, len(plane))
		copy(out, plane)
		return out, pw, ph
	}

	out := make([]int32, pw*ph)
	for y := 0; y < ph; y++ {
		sy := y
		if sy >= height {
			sy = height - 1
		}
		for x := 0; x < pw; x++ {
			sx := x
			if sx >= width {
				sx = width - 1
			}
			out[y*pw+x] = plane[sy*width+sx]
		}
	}
	return out, pw, ph
}

// scatterSlices distributes one component's transform coefficients into the
// picture's slices: for every slice, for every subband, that slice's share
// of the subband in raster order.
func scatterSlices(p *bitstream.PictureParse, component int, coeffs []int32, width, height, depth int) {
	t := &p.TransformParameters
	bands := wavelet.Bands(depth)
	for sy := 0; sy < t.SlicesY; sy++ {
		for sx := 0; sx < t.SlicesX; sx++ {
			slice := &p.Slices[sy*t.SlicesX+sx]
			for _, band := range bands {
				g := wavelet.BandGeometry(band, width, height, depth)
				ulo, uhi := wavelet.SliceExtent(g.Width, t.SlicesX, sx)
				vlo, vhi := wavelet.SliceExtent(g.Height, t.SlicesY, sy)
				for v := vlo; v < vhi; v++ {
					for u := ulo; u < uhi; u++ {
						slice.Components[component] = append(
							slice.Components[component], coeffs[g.At(width, u, v)])
					}
				}
			}
		}
	}
}
