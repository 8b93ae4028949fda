package constraint

import "errors"

var (
	// ErrAnyValueNotEnumerable is returned when enumeration of the
	// unbounded "any value" set is attempted
	ErrAnyValueNotEnumerable = errors.New("cannot enumerate the values of an any-value set")

	// ErrMalformedCSV is wrapped by all CSV parse failures
	ErrMalformedCSV = errors.New("malformed constraint table CSV")
)
