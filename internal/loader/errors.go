package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeValue marks an observation below zero.
	ErrNegativeValue = errors.New("loader: negative observation value")

	// ErrNonFiniteValue marks an observation that is NaN or infinite.
	ErrNonFiniteValue = errors.New("loader: non-finite observation value")

	// ErrNoGeometry indicates a boundary file without a single usable feature.
	ErrNoGeometry = errors.New("loader: no polygon features with a name")
)

// RowError wraps an error with the CSV line it came from.
type RowError struct {
	Line    int
	Wrapped error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("loader: observation line %d: %v", e.Line, e.Wrapped)
}

func (e *RowError) Unwrap() error {
	return e.Wrapped
}
