package common

import "time"

// FreshnessSeries is how long a fetched daily series is served from cache.
// Daily bars only change once the session closes.
const FreshnessSeries = 6 * time.Hour

// IsFresh returns true if updated is within ttl of now
func IsFresh(updated, now time.Time, ttl time.Duration) bool {
	if updated.IsZero() || ttl <= 0 {
		return false
	}
	return now.Sub(updated) < ttl
}
