package bitstream

import "errors"

var (
	// ErrNotByteAligned reports a whole-byte operation attempted part way
	// through a byte.
	ErrNotByteAligned = errors.New("bitstream: not byte aligned")

	// ErrBadParseInfoPrefix reports a parse_info block without the BBCD
	// magic prefix.
	ErrBadParseInfoPrefix = errors.New("bitstream: bad parse info prefix")

	// ErrUnknownParseCode reports a parse_info block naming a parse code
	// this toolkit cannot handle.
	ErrUnknownParseCode = errors.New("bitstream: unknown parse code")

	// ErrBadNextParseOffset reports a next parse offset too small to span
	// its own parse_info block.
	ErrBadNextParseOffset = errors.New("bitstream: bad next parse offset")
)
