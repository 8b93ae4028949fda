// Package wavelet implements the reversible integer wavelet transforms used
// for picture coding: the LeGall (5,3) filter and both Haar variants. The
// transform operates in place on interleaved coefficient arrays; subband
// layout helpers live in bands.go.
package wavelet

import (
	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// Filter is one supported wavelet filter. The zero value is not usable;
// obtain instances with ForFilter.
type Filter struct {
	index vc2.WaveletFilter
	// shift scales samples up before analysis lifting so that integer
	// rounding inside the lifting steps cannot lose precision.
	shift      int
	analyze    func(v view)
	synthesize func(v view)
}

// ForFilter returns the filter implementation for a wavelet index.
func ForFilter(index vc2.WaveletFilter) (*Filter, error) {
	switch index {
	case vc2.WaveletLeGall53:
		return &Filter{index: index, shift: 1, analyze: analyzeLeGall, synthesize: synthesizeLeGall}, nil
	case vc2.WaveletHaar0:
		return &Filter{index: index, shift: 0, analyze: analyzeHaar, synthesize: synthesizeHaar}, nil
	case vc2.WaveletHaar1:
		return &Filter{index: index, shift: 1, analyze: analyzeHaar, synthesize: synthesizeHaar}, nil
	}
	return nil, &UnsupportedFilterError{Index: index}
}

// Index returns the wavelet index this filter implements.
func (f *Filter) Index() vc2.WaveletFilter { return f.index }

// view addresses every stride-th sample of a row or column within an
// interleaved coefficient array.
type view struct {
	data   []int32
	offset int
	stride int
	count  int
}

func (v view) at(i int) *int32 { return &v.data[v.offset+i*v.stride] }

// Analyze applies depth levels of the two dimensional forward transform in
// place. Coefficients are left interleaved: each successive level transforms
// the low-pass samples of the previous one, which sit at every second
// position. Both dimensions must be multiples of 1<<depth.
func (f *Filter) Analyze(data []int32, width, height, depth int) {
	for level := 0; level < depth; level++ {
		stride := 1 << level
		f.shiftUp(data, width, height, stride)
		for y := 0; y < height; y += stride {
			f.analyze(view{data, y * width, stride, width >> level})
		}
		for x := 0; x < width; x += stride {
			f.analyze(view{data, x, stride * width, height >> level})
		}
	}
}

// Synthesize applies depth levels of the inverse transform in place,
// reconstructing the samples Analyze started from. Both dimensions must be
// multiples of 1<<depth.
func (f *Filter) Synthesize(data []int32, width, height, depth int) {
	for level := depth - 1; level >= 0; level-- {
		stride := 1 << level
		for x := 0; x < width; x += stride {
			f.synthesize(view{data, x, stride * width, height >> level})
		}
		for y := 0; y < height; y += stride {
			f.synthesize(view{data, y * width, stride, width >> level})
		}
		f.shiftDown(data, width, height, stride)
	}
}

func (f *Filter) shiftUp(data []int32, width, height, stride int) {
	if f.shift == 0 {
		return
	}
	for y := 0; y < height; y += stride {
		for x := 0; x < width; x += stride {
			data[y*width+x] <<= f.shift
		}
	}
}

func (f *Filter) shiftDown(data []int32, width, height, stride int) {
	if f.shift == 0 {
		return
	}
	round := int32(1) << (f.shift - 1)
	for y := 0; y < height; y += stride {
		for x := 0; x < width; x += stride {
			data[y*width+x] = (data[y*width+x] + round) >> f.shift
		}
	}
}

// analyzeLeGall performs one (5,3) lifting pass over an even-length signal:
// a predict step on the odd samples followed by an update step on the even
// samples, with symmetric extension at the edges.
func analyzeLeGall(v view) {
	n := v.count
	if n < 2 {
		return
	}
	for i := 1; i < n; i += 2 {
		right := i - 1
		if i+1 < n {
			right = i + 1
		}
		*v.at(i) -= (*v.at(i - 1) + *v.at(right)) >> 1
	}
	for i := 0; i < n; i += 2 {
		left := 1
		if i > 0 {
			left = i - 1
		}
		*v.at(i) += (*v.at(left) + *v.at(i + 1) + 2) >> 2
	}
}

func synthesizeLeGall(v view) {
	n := v.count
	if n < 2 {
		return
	}
	for i := 0; i < n; i += 2 {
		left := 1
		if i > 0 {
			left = i - 1
		}
		*v.at(i) -= (*v.at(left) + *v.at(i + 1) + 2) >> 2
	}
	for i := 1; i < n; i += 2 {
		right := i - 1
		if i+1 < n {
			right = i + 1
		}
		*v.at(i) += (*v.at(i - 1) + *v.at(right)) >> 1
	}
}

// analyzeHaar performs one Haar lifting pass: each odd sample becomes the
// difference with its left neighbour, each even sample the rounded mean of
// the pair.
func analyzeHaar(v view) {
	n := v.count
	for i := 1; i < n; i += 2 {
		*v.at(i) -= *v.at(i - 1)
	}
	for i := 1; i < n; i += 2 {
		*v.at(i - 1) += (*v.at(i) + 1) >> 1
	}
}

func synthesizeHaar(v view) {
	n := v.count
	for i := 1; i < n; i += 2 {
		*v.at(i - 1) -= (*v.at(i) + 1) >> 1
	}
	for i := 1; i < n; i += 2 {
		*v.at(i) += *v.at(i - 1)
	}
}
