package analytics

import "errors"

var (
	// ErrNoData is returned when the series is empty. It is the only data
	// condition that fails a whole analysis.
	ErrNoData = errors.New("no price data available")

	// ErrInvalidWindow is returned for a decision window outside [MinWindowDays, MaxWindowDays].
	ErrInvalidWindow = errors.New("window days out of range")

	// ErrInsufficientData marks a stage that needs more bars than it was given.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNonFinite marks a stage whose output contained NaN or Inf.
	ErrNonFinite = errors.New("non-finite value")
)
