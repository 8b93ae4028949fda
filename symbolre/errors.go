package symbolre

import (
	"errors"
	"fmt"
	"strings"
)

// ErrImpossibleSequence is matched (via errors.Is) by the error returned when
// MakeMatchingSequence cannot find any sequence satisfying all patterns.
var ErrImpossibleSequence = errors.New("no sequence satisfies all patterns")

// SyntaxError reports a malformed pattern string. It is always produced at
// parse time, never during matching. Offset is the character offset of the
// offending token, or -1 where no single position applies (e.g. unmatched
// parentheses).
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("syntax error: %s", e.Msg)
	}
	return fmt.Sprintf("syntax error at position %d: %s", e.Offset, e.Msg)
}

// ImpossibleSequenceError is returned when the breadth-first search in
// MakeMatchingSequence exhausts its frontier without finding a sequence which
// consumes every required symbol and completes every pattern. It carries the
// required subsequence for the caller's diagnostics.
type ImpossibleSequenceError struct {
	Required []string
}

func (e *ImpossibleSequenceError) Error() string {
	return fmt.Sprintf(
		"%v (required subsequence: [%s])",
		ErrImpossibleSequence, strings.Join(e.Required, " "),
	)
}

func (e *ImpossibleSequenceError) Unwrap() error {
	return ErrImpossibleSequence
}
