package wavelet

import "fmt"

// Orientation identifies a subband within one transform level.
type Orientation int

const (
	// OrientLL is the low-pass residual, present only at level 0.
	OrientLL Orientation = iota
	OrientHL
	OrientLH
	OrientHH
)

func (o Orientation) String() string {
	switch o {
	case OrientLL:
		return "LL"
	case OrientHL:
		return "HL"
	case OrientLH:
		return "LH"
	case OrientHH:
		return "HH"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// Band names one subband of a transformed component: the DC band at level 0
// or a detail orientation at levels 1 through the transform depth.
type Band struct {
	Level       int
	Orientation Orientation
}

func (b Band) String() string {
	return fmt.Sprintf("%d%s", b.Level, b.Orientation)
}

// Bands lists the subbands of a transform of the given depth in coding
// order: the DC band first, then HL, LH, HH for each level from coarsest to
// finest. A depth of zero has a single band covering all samples.
func Bands(depth int) []Band {
	out := []Band{{Level: 0, Orientation: OrientLL}}
	for level := 1; level <= depth; level++ {
		out = append(out,
			Band{level, OrientHL},
			Band{level, OrientLH},
			Band{level, OrientHH},
		)
	}
	return out
}

// Geometry locates a subband inside an interleaved coefficient array.
type Geometry struct {
	OffsetX int
	OffsetY int
	// Stride is the spacing between adjacent subband coefficients, in
	// both dimensions.
	Stride int
	// Width and Height are the subband's dimensions in coefficients.
	Width  int
	Height int
}

// At returns the index of subband coefficient (u, v) within the interleaved
// array, given the array's row width.
func (g Geometry) At(rowWidth, u, v int) int {
	return (g.OffsetY+v*g.Stride)*rowWidth + g.OffsetX + u*g.Stride
}

// SliceExtent returns the half-open coefficient range [lo, hi) belonging to
// slice index of count across a subband dimension of the given size. Ranges
// tile the dimension exactly; when size does not divide evenly some slices
// get one coefficient more than others.
func SliceExtent(size, count, index int) (lo, hi int) {
	return size * index / count, size * (index + 1) / count
}

// BandGeometry computes where a subband's coefficients live within an
// interleaved transform of the given depth and dimensions.
func BandGeometry(band Band, width, height, depth int) Geometry {
	if band.Level == 0 {
		stride := 1 << depth
		return Geometry{Stride: stride, Width: width / stride, Height: height / stride}
	}
	// Detail coefficients of level L appear at odd multiples of the
	// previous level's sampling interval.
	stride := 1 << (depth - band.Level + 1)
	half := stride / 2
	g := Geometry{Stride: stride, Width: width / stride, Height: height / stride}
	switch band.Orientation {
	case OrientHL:
		g.OffsetX = half
	case OrientLH:
		g.OffsetY = half
	case OrientHH:
		g.OffsetX = half
		g.OffsetY = half
	}
	return g
}
