package common

import "time"

// Freshness TTLs for cached portal lookups
const (
	FreshnessTicker    = 12 * time.Hour // ticker to ISIN and name; listings change at most daily
	FreshnessIndexList = 24 * time.Hour
)

// IsFresh returns true if updated is within ttl of now
func IsFresh(updated, now time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return now.Sub(updated) < ttl
}
