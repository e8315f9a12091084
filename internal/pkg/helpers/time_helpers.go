package helpers

import (
	"time"
)

// ParseDuration parses a duration string, falling back to a default on error
func ParseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// DaysUntil returns the whole number of days from now until t, rounded down
func DaysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}
