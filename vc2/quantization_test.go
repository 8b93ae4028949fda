package vc2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantFactor(t *testing.T) {
	// Index zero means no quantization; every fourth index doubles the
	// factor.
	assert.Equal(t, 4, QuantFactor(0))
	assert.Equal(t, 8, QuantFactor(4))
	assert.Equal(t, 16, QuantFactor(8))

	// Factors increase monotonically.
	for i := 1; i < 64; i++ {
		assert.GreaterOrEqual(t, QuantFactor(i), QuantFactor(i-1), "index %d", i)
	}
}

func TestQuantizeIndexZeroIsLossless(t *testing.T) {
	for _, coeff := range []int32{0, 1, -1, 17, -123, 32767, -32768} {
		q := QuantizeCoeff(coeff, 0)
		assert.Equal(t, coeff, q)
		assert.Equal(t, coeff, InverseQuantizeCoeff(q, 0))
	}
}

func TestQuantizeReducesMagnitude(t *testing.T) {
	coeff := int32(1000)
	for index := 4; index <= 32; index += 4 {
		q := QuantizeCoeff(coeff, index)
		assert.Less(t, q, coeff)
		// Reconstruction lands within one quantization step.
		got := InverseQuantizeCoeff(q, index)
		step := int32(QuantFactor(index) / 4)
		assert.InDelta(t, float64(coeff), float64(got), float64(step))
	}
}
