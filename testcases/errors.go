package testcases

import "errors"

// ErrUnknownGenerator is returned when a generator name is not registered.
var ErrUnknownGenerator = errors.New("testcases: unknown generator")
