package vc2

// QuantFactor returns the quantization factor for a quantization index,
// scaled by four (13.3.2). Index zero gives a factor of four, meaning no
// quantization; each step of four doubles the factor, with intermediate
// steps approximating fourth roots of two in fixed point.
func QuantFactor(index int) int {
	base := 1 << uint(index/4)
	switch index % 4 {
	case 0:
		return 4 * base
	case 1:
		return (503829*base + 52958) / 105917
	case 2:
		return (665857*base + 58854) / 117708
	default:
		return (440253*base + 32722) / 65444
	}
}

// QuantizeCoeff quantizes a transform coefficient with the given
// quantization index (13.3.1). At index zero the coefficient passes through
// unchanged.
func QuantizeCoeff(coeff int32, index int) int32 {
	factor := int32(QuantFactor(index))
	magnitude := coeff
	if magnitude < 0 {
		magnitude = -magnitude
	}
	quantized := (magnitude * 4) / factor
	if coeff < 0 {
		return -quantized
	}
	return quantized
}

// InverseQuantizeCoeff reconstructs a coefficient from its quantized value
// (13.3.1), rounding to the middle of the quantization bin.
func InverseQuantizeCoeff(quantized int32, index int) int32 {
	factor := int32(QuantFactor(index))
	magnitude := quantized
	if magnitude < 0 {
		magnitude = -magnitude
	}
	coeff := (magnitude*factor + 2) / 4
	if quantized < 0 {
		return -coeff
	}
	return coeff
}
