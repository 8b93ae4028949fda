package decoder

import (
	"github.com/vc2tools/go-vc2-conformance/bitstream"
	"github.com/vc2tools/go-vc2-conformance/vc2"
	"github.com/vc2tools/go-vc2-conformance/wavelet"
)

// reconstructPicture inverts the slice coding and the wavelet transform:
// slices are gathered back into whole-component coefficient planes, inverse
// quantized, synthesized and cropped to the picture dimensions.
func reconstructPicture(features vc2.CodecFeatures, p *bitstream.PictureParse) (*vc2.RawPicture, error) {
	filter, err := wavelet.ForFilter(p.TransformParameters.WaveletIndex)
	if err != nil {
		return nil, err
	}

	lw, lh, cw, ch := vc2.PictureDimensions(features)
	dims := [3][2]int{{lw, lh}, {cw, ch}, {cw, ch}}
	depth := p.TransformParameters.DwtDepth
	align := 1 << depth

	out := &vc2.RawPicture{PictureNumber: p.PictureNumber}
	planes := [3]*[]int32{&out.Y, &out.C1, &out.C2}
	for c := range planes {
		pw := (dims[c][0] + align - 1) / align * align
		ph := (dims[c][1] + align - 1) / align * align
		coeffs := make([]int32, pw*ph)
		gatherSlices(p, c, coeffs, pw, ph, depth)
		filter.Synthesize(coeffs, pw, ph, depth)
		*planes[c] = cropPlane(coeffs, pw, dims[c][0], dims[c][1])
	}
	return out, nil
}

// gatherSlices collects one component's coefficients out of the picture's
// slices, inverse quantizing as it goes. The slice layout mirrors the
// encoder: for every slice, for every subband in coding order, that slice's
// share of the subband in raster order.
func gatherSlices(p *bitstream.PictureParse, component int, coeffs []int32, width, height, depth int) {
	t := &p.TransformParameters
	bands := wavelet.Bands(depth)
	for sy := 0; sy < t.SlicesY; sy++ {
		for sx := 0; sx < t.SlicesX; sx++ {
			slice := &p.Slices[sy*t.SlicesX+sx]
			src := slice.Components[component]
			i := 0
			for b, band := range bands {
				qindex := bandQindex(t, slice.Qindex, b)
				g := wavelet.BandGeometry(band, width, height, depth)
				ulo, uhi := wavelet.SliceExtent(g.Width, t.SlicesX, sx)
				vlo, vhi := wavelet.SliceExtent(g.Height, t.SlicesY, sy)
				for v := vlo; v < vhi; v++ {
					for u := ulo; u < uhi; u++ {
						coeffs[g.At(width, u, v)] = vc2.InverseQuantizeCoeff(src[i], qindex)
						i++
					}
				}
			}
		}
	}
}

// bandQindex applies the custom quantization matrix, when present, to a
// slice's quantization index for the subband at coding-order position b.
func bandQindex(t *bitstream.TransformParameters, qindex, b int) int {
	if !t.CustomQuantMatrixFlag || b >= len(t.QuantMatrix) {
		return qindex
	}
	q := qindex - t.QuantMatrix[b]
	if q < 0 {
		q = 0
	}
	return q
}

// cropPlane discards the transform padding on the right and bottom edges.
func cropPlane(coeffs []int32, stride, width, height int) []int32 {
	out := make([]int32, width*height)
	for y := 0; y < height; y++ {
		copy(out[y*width:(y+1)*width], coeffs[y*stride:y*stride+width])
	}
	return out
}
