package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConformant is wrapped by every conformance failure, so callers
	// can distinguish "the stream is wrong" from "this toolkit could not
	// decode it".
	ErrNotConformant = errors.New("decoder: stream is not conformant")

	// ErrUnsupportedStream reports a stream which may well be valid VC-2
	// but uses coding tools this toolkit does not implement.
	ErrUnsupportedStream = errors.New("decoder: stream uses unsupported coding tools")
)

// ConformanceError describes why a stream fails conformance and where: the
// byte offset of the parse_info block of the offending data unit.
type ConformanceError struct {
	Offset      int64
	Explanation string
}

func (e *ConformanceError) Error() string {
	return fmt.Sprintf("conformance failure at offset %d: %s", e.Offset, e.Explanation)
}

func (e *ConformanceError) Unwrap() error { return ErrNotConformant }
