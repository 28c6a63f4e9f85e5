package radar

import "errors"

var (
	// ErrInvalidSeriesLength is returned when a series does not carry
	// exactly one value per axis.
	ErrInvalidSeriesLength = errors.New("series length does not match axis count")

	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("value must be a finite number")

	ErrSeriesIndex = errors.New("series index out of range")
	ErrAxisIndex   = errors.New("axis index out of range")
)
