package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeBeforeRe = regexp.MustCompile(`^(\d+)\s+(week|day|hour|minute)s?\s+ago$`)

// ParseBefore reads an upper time bound as RFC3339 or as "N units ago" relative to now.
// Supported units are weeks, days, hours and minutes.
func ParseBefore(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t, nil
	}

	matches := relativeBeforeRe.FindStringSubmatch(strings.ToLower(s))
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid before value '%s'. Expected RFC3339 or 'N days ago'", s)
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid before value '%s': %w", s, err)
	}

	var unit time.Duration
	switch matches[2] {
	case "week":
		unit = 7 * 24 * time.Hour
	case "day":
		unit = 24 * time.Hour
	case "hour":
		unit = time.Hour
	case "minute":
		unit = time.Minute
	}
	// Caps the offset so that the multiplication cannot overflow.
	if n > int(time.Duration(1<<62)/unit) {
		return time.Time{}, fmt.Errorf("before offset too large: %s", s)
	}
	return now.Add(-time.Duration(n) * unit), nil
}
