package analytics

import (
	"fmt"
	"time"
)

const (
	MinWindowDays = 1
	MaxWindowDays = 365

	// lookbackBufferDays pads the start of the fetch range for weekends and holidays
	lookbackBufferDays = 30
)

// ValidateWindow checks a requested decision window
func ValidateWindow(window int) error {
	if window < MinWindowDays || window > MaxWindowDays {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidWindow, window, MinWindowDays, MaxWindowDays)
	}
	return nil
}

// LookbackMultiplier returns how many decision windows of history a window needs.
// Short windows look back proportionally further.
func LookbackMultiplier(window int) int {
	switch {
	case window <= 7:
		return 15
	case window <= 30:
		return 12
	case window <= 90:
		return 8
	default:
		return 5
	}
}

// LookbackDays returns the calendar days of history a loader must supply for a
// decision window: window × multiplier plus a fixed buffer.
func LookbackDays(window int) int {
	return window*LookbackMultiplier(window) + lookbackBufferDays
}

// LookbackStart returns the first calendar day to fetch for a window ending at end.
func LookbackStart(end time.Time, window int) time.Time {
	return end.AddDate(0, 0, -LookbackDays(window))
}

// coverage compares a series' calendar span against the lookback for window.
// The series is complete when it spans at least the unbuffered lookback.
func coverage(start, end time.Time, window int) (requested, span int, complete bool) {
	requested = LookbackDays(window)
	span = int(end.Sub(start).Hours()/24) + 1
	complete = span >= requested-lookbackBufferDays
	return requested, span, complete
}
