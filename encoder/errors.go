package encoder

import (
	"errors"
	"fmt"
)

// ErrIncompatibleLevel reports codec features which cannot be expressed
// within the restrictions of their declared level.
var ErrIncompatibleLevel = errors.New("codec features incompatible with level")

// IncompatibleLevelError explains why a set of codec features was rejected.
type IncompatibleLevelError struct {
	FeatureName string
	Reason      string
}

func (e *IncompatibleLevelError) Error() string {
	return fmt.Sprintf("codec features %q incompatible with level: %s", e.FeatureName, e.Reason)
}

func (e *IncompatibleLevelError) Unwrap() error { return ErrIncompatibleLevel }
