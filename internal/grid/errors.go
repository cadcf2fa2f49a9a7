package grid

import "errors"

var (
	// ErrStep indicates a non-positive or non-finite step size.
	ErrStep = errors.New("grid: step must be a positive finite number")
	// ErrEmptyRange indicates an empty coordinate column.
	ErrEmptyRange = errors.New("grid: coordinate column must not be empty")
	// ErrNonFinite indicates a NaN or infinite coordinate.
	ErrNonFinite = errors.New("grid: coordinates must be finite")
	// ErrLabelCount indicates a label vector that does not match the grid size.
	ErrLabelCount = errors.New("grid: label count must equal rows*cols")
)
