// Package duration resolves relative creation-date floors such as "90d" or
// "6mo" into calendar dates.
package duration

import (
	"fmt"
	"time"
)

// DateLayout is the layout of the resolved date.
const DateLayout = "2006-01-02"

// Parse parses human-readable durations like "2w", "30d", "6mo", "1y".
// Only day-granular units are accepted since search dates have no time part.
func Parse(s string) (time.Duration, error) {
	var n int
	var unit string

	if _, err := fmt.Sscanf(s, "%d%s", &n, &unit); err != nil {
		return 0, fmt.Errorf("invalid duration format: %s (use e.g., 2w, 30d, 6mo)", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", s)
	}

	const day = 24 * time.Hour
	switch unit {
	case "d", "day", "days":
		return time.Duration(n) * day, nil
	case "w", "wk", "wks", "week", "weeks":
		return time.Duration(n) * 7 * day, nil
	case "mo", "month", "months":
		return time.Duration(n) * 30 * day, nil
	case "y", "yr", "yrs", "year", "years":
		return time.Duration(n) * 365 * day, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}

// ResolveDate returns the date that lies the relative duration s before now.
// Values that are not relative durations, including ISO dates, are returned
// unchanged so the query layer can validate them.
func ResolveDate(s string, now time.Time) string {
	d, err := Parse(s)
	if err != nil {
		return s
	}
	return now.Add(-d).Format(DateLayout)
}
