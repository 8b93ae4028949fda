package wavelet

import (
	"errors"
	"fmt"

	"github.com/vc2tools/go-vc2-conformance/vc2"
)

// ErrUnsupportedFilter reports a wavelet index this toolkit cannot apply.
var ErrUnsupportedFilter = errors.New("unsupported wavelet filter")

// UnsupportedFilterError records which wavelet index was requested.
type UnsupportedFilterError struct {
	Index vc2.WaveletFilter
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("unsupported wavelet filter %d (%s)", int(e.Index), e.Index)
}

func (e *UnsupportedFilterError) Unwrap() error { return ErrUnsupportedFilter }
