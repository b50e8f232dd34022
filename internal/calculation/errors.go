package calculation

import "errors"

var (
	// ErrInvalidParameter is returned when simulation parameters are out of range.
	ErrInvalidParameter = errors.New("invalid simulation parameter")

	// ErrNonFiniteValue reports a NaN or infinite net-worth sample. It always
	// indicates a defect in the inputs or the model, never valid output.
	ErrNonFiniteValue = errors.New("non-finite value in simulated path")

	// ErrDayOutOfRange is returned when a day index falls outside the ensemble.
	ErrDayOutOfRange = errors.New("day out of range")

	// ErrEmptyEnsemble is returned when aggregating an ensemble without paths.
	ErrEmptyEnsemble = errors.New("ensemble has no paths")
)
