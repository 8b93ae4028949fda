package bitstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vc2tools/go-vc2-conformance/vc2"
	"github.com/vc2tools/go-vc2-conformance/wavelet"
)

// ErrSliceOverflow reports a slice whose coded coefficients exceed the 8 bit
// per-component length field.
var ErrSliceOverflow = errors.New("bitstream: slice component too large")

// WriteSequenceHeader serializes a sequence header body (11.1), excluding
// the parse_info framing.
func WriteSequenceHeader(bw *BitWriter, h *SequenceHeader) {
	bw.WriteUint(uint64(h.ParseParameters.MajorVersion))
	bw.WriteUint(uint64(h.ParseParameters.MinorVersion))
	bw.WriteUint(uint64(h.ParseParameters.Profile))
	bw.WriteUint(uint64(h.ParseParameters.Level))

	bw.WriteUint(uint64(h.BaseVideoFormat))
	writeSourceParameters(bw, &h.SourceParameters)
	bw.WriteUint(uint64(h.PictureCodingMode))
	bw.ByteAlign()
}

// ReadSequenceHeader parses a sequence header body.
func ReadSequenceHeader(br *BitReader) *SequenceHeader {
	h := &SequenceHeader{}
	h.ParseParameters.MajorVersion = int(br.ReadUint())
	h.ParseParameters.MinorVersion = int(br.ReadUint())
	h.ParseParameters.Profile = vc2.Profile(br.ReadUint())
	h.ParseParameters.Level = vc2.Level(br.ReadUint())

	h.BaseVideoFormat = vc2.BaseVideoFormat(br.ReadUint())
	readSourceParameters(br, &h.SourceParameters)
	h.PictureCodingMode = vc2.PictureCodingMode(br.ReadUint())
	br.ByteAlign()
	return h
}

func writeSourceParameters(bw *BitWriter, p *SourceParameters) {
	bw.WriteBool(p.FrameSize.CustomDimensionsFlag)
	if p.FrameSize.CustomDimensionsFlag {
		bw.WriteUint(uint64(p.FrameSize.FrameWidth))
		bw.WriteUint(uint64(p.FrameSize.FrameHeight))
	}

	bw.WriteBool(p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag)
	if p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag {
		bw.WriteUint(uint64(p.ColorDiffSamplingFormat.ColorDiffFormatIndex))
	}

	bw.WriteBool(p.ScanFormat.CustomScanFormatFlag)
	if p.ScanFormat.CustomScanFormatFlag {
		bw.WriteUint(uint64(p.ScanFormat.SourceSampling))
	}

	bw.WriteBool(p.FrameRate.CustomFrameRateFlag)
	if p.FrameRate.CustomFrameRateFlag {
		bw.WriteUint(uint64(p.FrameRate.Index))
		if p.FrameRate.Index == 0 {
			bw.WriteUint(uint64(p.FrameRate.FrameRateNumer))
			bw.WriteUint(uint64(p.FrameRate.FrameRateDenom))
		}
	}

	bw.WriteBool(p.PixelAspectRatio.CustomPixelAspectRatioFlag)
	if p.PixelAspectRatio.CustomPixelAspectRatioFlag {
		bw.WriteUint(uint64(p.PixelAspectRatio.Index))
		if p.PixelAspectRatio.Index == 0 {
			bw.WriteUint(uint64(p.PixelAspectRatio.PixelAspectRatioNumer))
			bw.WriteUint(uint64(p.PixelAspectRatio.PixelAspectRatioDenom))
		}
	}

	bw.WriteBool(p.CleanArea.CustomCleanAreaFlag)
	if p.CleanArea.CustomCleanAreaFlag {
		bw.WriteUint(uint64(p.CleanArea.CleanWidth))
		bw.WriteUint(uint64(p.CleanArea.CleanHeight))
		bw.WriteUint(uint64(p.CleanArea.LeftOffset))
		bw.WriteUint(uint64(p.CleanArea.TopOffset))
	}

	bw.WriteBool(p.SignalRange.CustomSignalRangeFlag)
	if p.SignalRange.CustomSignalRangeFlag {
		bw.WriteUint(uint64(p.SignalRange.Index))
		if p.SignalRange.Index == 0 {
			bw.WriteUint(uint64(p.SignalRange.LumaOffset))
			bw.WriteUint(uint64(p.SignalRange.LumaExcursion))
			bw.WriteUint(uint64(p.SignalRange.ColorDiffOffset))
			bw.WriteUint(uint64(p.SignalRange.ColorDiffExcursion))
		}
	}

	bw.WriteBool(p.ColorSpec.CustomColorSpecFlag)
	if p.ColorSpec.CustomColorSpecFlag {
		bw.WriteUint(uint64(p.ColorSpec.Index))
		if p.ColorSpec.Index == 0 {
			bw.WriteBool(p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag)
			if p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag {
				bw.WriteUint(uint64(p.ColorSpec.ColorPrimaries.Index))
			}
			bw.WriteBool(p.ColorSpec.ColorMatrix.CustomColorMatrixFlag)
			if p.ColorSpec.ColorMatrix.CustomColorMatrixFlag {
				bw.WriteUint(uint64(p.ColorSpec.ColorMatrix.Index))
			}
			bw.WriteBool(p.ColorSpec.TransferFunction.CustomTransferFunctionFlag)
			if p.ColorSpec.TransferFunction.CustomTransferFunctionFlag {
				bw.WriteUint(uint64(p.ColorSpec.TransferFunction.Index))
			}
		}
	}
}

func readSourceParameters(br *BitReader, p *SourceParameters) {
	p.FrameSize.CustomDimensionsFlag = br.ReadBool()
	if p.FrameSize.CustomDimensionsFlag {
		p.FrameSize.FrameWidth = int(br.ReadUint())
		p.FrameSize.FrameHeight = int(br.ReadUint())
	}

	p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag = br.ReadBool()
	if p.ColorDiffSamplingFormat.CustomColorDiffFormatFlag {
		p.ColorDiffSamplingFormat.ColorDiffFormatIndex = vc2.ColorDiffFormat(br.ReadUint())
	}

	p.ScanFormat.CustomScanFormatFlag = br.ReadBool()
	if p.ScanFormat.CustomScanFormatFlag {
		p.ScanFormat.SourceSampling = vc2.SourceSampling(br.ReadUint())
	}

	p.FrameRate.CustomFrameRateFlag = br.ReadBool()
	if p.FrameRate.CustomFrameRateFlag {
		p.FrameRate.Index = int(br.ReadUint())
		if p.FrameRate.Index == 0 {
			p.FrameRate.FrameRateNumer = int(br.ReadUint())
			p.FrameRate.FrameRateDenom = int(br.ReadUint())
		}
	}

	p.PixelAspectRatio.CustomPixelAspectRatioFlag = br.ReadBool()
	if p.PixelAspectRatio.CustomPixelAspectRatioFlag {
		p.PixelAspectRatio.Index = int(br.ReadUint())
		if p.PixelAspectRatio.Index == 0 {
			p.PixelAspectRatio.PixelAspectRatioNumer = int(br.ReadUint())
			p.PixelAspectRatio.PixelAspectRatioDenom = int(br.ReadUint())
		}
	}

	p.CleanArea.CustomCleanAreaFlag = br.ReadBool()
	if p.CleanArea.CustomCleanAreaFlag {
		p.CleanArea.CleanWidth = int(br.ReadUint())
		p.CleanArea.CleanHeight = int(br.ReadUint())
		p.CleanArea.LeftOffset = int(br.ReadUint())
		p.CleanArea.TopOffset = int(br.ReadUint())
	}

	p.SignalRange.CustomSignalRangeFlag = br.ReadBool()
	if p.SignalRange.CustomSignalRangeFlag {
		p.SignalRange.Index = int(br.ReadUint())
		if p.SignalRange.Index == 0 {
			p.SignalRange.LumaOffset = int(br.ReadUint())
			p.SignalRange.LumaExcursion = int(br.ReadUint())
			p.SignalRange.ColorDiffOffset = int(br.ReadUint())
			p.SignalRange.ColorDiffExcursion = int(br.ReadUint())
		}
	}

	p.ColorSpec.CustomColorSpecFlag = br.ReadBool()
	if p.ColorSpec.CustomColorSpecFlag {
		p.ColorSpec.Index = int(br.ReadUint())
		if p.ColorSpec.Index == 0 {
			p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag = br.ReadBool()
			if p.ColorSpec.ColorPrimaries.CustomColorPrimariesFlag {
				p.ColorSpec.ColorPrimaries.Index = int(br.ReadUint())
			}
			p.ColorSpec.ColorMatrix.CustomColorMatrixFlag = br.ReadBool()
			if p.ColorSpec.ColorMatrix.CustomColorMatrixFlag {
				p.ColorSpec.ColorMatrix.Index = int(br.ReadUint())
			}
			p.ColorSpec.TransferFunction.CustomTransferFunctionFlag = br.ReadBool()
			if p.ColorSpec.TransferFunction.CustomTransferFunctionFlag {
				p.ColorSpec.TransferFunction.Index = int(br.ReadUint())
			}
		}
	}
}

func writeTransformParameters(bw *BitWriter, p *TransformParameters) {
	bw.WriteUint(uint64(p.WaveletIndex))
	bw.WriteUint(uint64(p.DwtDepth))

	bw.WriteUint(uint64(p.SlicesX))
	bw.WriteUint(uint64(p.SlicesY))
	bw.WriteUint(uint64(p.SlicePrefixBytes))
	bw.WriteUint(uint64(p.SliceSizeScaler))

	bw.WriteBool(p.CustomQuantMatrixFlag)
	if p.CustomQuantMatrixFlag {
		for _, q := range p.QuantMatrix {
			bw.WriteUint(uint64(q))
		}
	}
}

func readTransformParameters(br *BitReader) TransformParameters {
	p := TransformParameters{}
	p.WaveletIndex = vc2.WaveletFilter(br.ReadUint())
	p.DwtDepth = int(br.ReadUint())

	p.SlicesX = int(br.ReadUint())
	p.SlicesY = int(br.ReadUint())
	p.SlicePrefixBytes = int(br.ReadUint())
	p.SliceSizeScaler = int(br.ReadUint())

	p.CustomQuantMatrixFlag = br.ReadBool()
	if p.CustomQuantMatrixFlag {
		bands := len(wavelet.Bands(p.DwtDepth))
		p.QuantMatrix = make([]int, bands)
		for i := range p.QuantMatrix {
			p.QuantMatrix[i] = int(br.ReadUint())
		}
	}
	return p
}

// PictureGeometry gives the component dimensions a picture's slices cover,
// before transform padding.
type PictureGeometry struct {
	LumaWidth       int
	LumaHeight      int
	ColorDiffWidth  int
	ColorDiffHeight int
}

// componentDimensions returns the transform-padded dimensions of each of
// the three components.
func (g PictureGeometry) componentDimensions(depth int) [3][2]int {
	align := 1 << depth
	pad := func(v int) int { return (v + align - 1) / align * align }
	return [3][2]int{
		{pad(g.LumaWidth), pad(g.LumaHeight)},
		{pad(g.ColorDiffWidth), pad(g.ColorDiffHeight)},
		{pad(g.ColorDiffWidth), pad(g.ColorDiffHeight)},
	}
}

// SliceCoefficientCount returns how many transform coefficients of one
// component belong to slice (sx, sy): the sum over all subbands of that
// slice's share of the subband.
func SliceCoefficientCount(width, height, depth, slicesX, slicesY, sx, sy int) int {
	count := 0
	for _, band := range wavelet.Bands(depth) {
		g := wavelet.BandGeometry(band, width, height, depth)
		ulo, uhi := wavelet.SliceExtent(g.Width, slicesX, sx)
		vlo, vhi := wavelet.SliceExtent(g.Height, slicesY, sy)
		count += (uhi - ulo) * (vhi - vlo)
	}
	return count
}

// WritePictureParse serializes a high quality picture body (12.1): the
// picture number, the transform parameters and every coded slice.
func WritePictureParse(bw *BitWriter, p *PictureParse) error {
	bw.WriteNBits(32, uint64(p.PictureNumber))
	bw.ByteAlign()
	writeTransformParameters(bw, &p.TransformParameters)
	bw.ByteAlign()

	for i := range p.Slices {
		if err := writeHQSlice(bw, &p.TransformParameters, &p.Slices[i]); err != nil {
			return err
		}
	}
	return bw.Err()
}

// ReadPictureParse parses a high quality picture body. The geometry of the
// current video format is needed to determine how many coefficients each
// slice carries.
func ReadPictureParse(br *BitReader, geometry PictureGeometry) *PictureParse {
	p := &PictureParse{}
	p.PictureNumber = uint32(br.ReadNBits(32))
	br.ByteAlign()
	p.TransformParameters = readTransformParameters(br)
	br.ByteAlign()

	t := &p.TransformParameters
	if t.SlicesX <= 0 || t.SlicesY <= 0 || br.Err() != nil {
		return p
	}
	dims := geometry.componentDimensions(t.DwtDepth)
	p.Slices = make([]HQSlice, 0, t.SlicesX*t.SlicesY)
	for sy := 0; sy < t.SlicesY; sy++ {
		for sx := 0; sx < t.SlicesX; sx++ {
			var counts [3]int
			for c := 0; c < 3; c++ {
				counts[c] = SliceCoefficientCount(
					dims[c][0], dims[c][1], t.DwtDepth,
					t.SlicesX, t.SlicesY, sx, sy,
				)
			}
			p.Slices = append(p.Slices, readHQSlice(br, t, counts))
			if br.Err() != nil {
				return p
			}
		}
	}
	return p
}

func writeHQSlice(bw *BitWriter, t *TransformParameters, s *HQSlice) error {
	for i := 0; i < t.SlicePrefixBytes; i++ {
		bw.WriteNBits(8, 0)
	}
	bw.WriteNBits(8, uint64(s.Qindex))

	scaler := t.SliceSizeScaler
	if scaler < 1 {
		scaler = 1
	}
	for _, coeffs := range s.Components {
		var body bytes.Buffer
		cw := NewBitWriter(&body)
		for _, coeff := range coeffs {
			cw.WriteSint(int64(coeff))
		}
		cw.ByteAlign()
		if err := cw.Err(); err != nil {
			return err
		}

		length := (body.Len() + scaler - 1) / scaler
		if length > 255 {
			return fmt.Errorf("%w: %d bytes", ErrSliceOverflow, body.Len())
		}
		bw.WriteNBits(8, uint64(length))
		padded := make([]byte, length*scaler)
		copy(padded, body.Bytes())
		bw.WriteBytes(padded)
	}
	return bw.Err()
}

// onesSource supplies an endless run of one bits, modelling reads beyond the
// end of a bounded block.
type onesSource struct{}

func (onesSource) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0xFF
	}
	return len(p), nil
}

func readHQSlice(br *BitReader, t *TransformParameters, counts [3]int) HQSlice {
	s := HQSlice{}
	for i := 0; i < t.SlicePrefixBytes; i++ {
		br.ReadNBits(8)
	}
	s.Qindex = int(br.ReadNBits(8))

	scaler := t.SliceSizeScaler
	if scaler < 1 {
		scaler = 1
	}
	for c := 0; c < 3; c++ {
		length := int(br.ReadNBits(8))
		body := br.ReadBytes(length * scaler)
		if br.Err() != nil {
			return s
		}
		// Component data is a bounded block (13.4.2): bits past its end
		// read as ones, so coefficients the block has no room for decode
		// to zero rather than failing.
		cr := NewBitReader(io.MultiReader(bytes.NewReader(body), onesSource{}))
		coeffs := make([]int32, counts[c])
		for i := range coeffs {
			coeffs[i] = int32(cr.ReadSint())
		}
		s.Components[c] = coeffs
	}
	return s
}
