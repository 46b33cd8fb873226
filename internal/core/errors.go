package core

import "errors"

var (
	// ErrEmptyDistribution is returned when a quantile is requested over a
	// distribution whose mask excludes every cell.
	ErrEmptyDistribution = errors.New("empty distribution")
	// ErrInvalidDimensions is returned when grids passed together disagree on
	// width or height.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidFraction is returned for fractions outside [0, 1].
	ErrInvalidFraction = errors.New("invalid fraction")
)
