package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	dayWeekDurationRe = regexp.MustCompile(`^(\d+)([dw])$`)
	dayWeekUnits      = map[string]time.Duration{"d": day, "w": week}
)

// ParseDuration extends time.ParseDuration with whole days ("3d") and
// weeks ("2w"). Day and week counts cannot be combined with other units.
func ParseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	m := dayWeekDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration: %s (expected 2h, 30m, 1d, 2w, etc.)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in duration: %s", m[1])
	}
	return time.Duration(n) * dayWeekUnits[m[2]], nil
}

// ParseReference reads an operator supplied reference time. Supports:
//   - ISO 8601: "2026-02-18T10:15", "2026-02-18" (midnight), offsets dropped
//   - Duration: "1d", "2w", "12h" (back from now)
func ParseReference(s string, now time.Time) (DateTime, error) {
	if ref, err := ParseISO(s); err == nil {
		return ref, nil
	}

	d, err := ParseDuration(s)
	if err != nil {
		return DateTime{}, fmt.Errorf("invalid reference time: %s (expected YYYY-MM-DDTHH:MM, YYYY-MM-DD, or duration like 1d, 2w, 12h)", s)
	}
	return FromTime(now.Add(-d)), nil
}

// FormatRelative describes where value sits relative to now, e.g.
// "in 3 days" or "2 hours ago".
func FormatRelative(value, now DateTime) string {
	d := value.Sub(now)
	switch {
	case d > -time.Minute && d < time.Minute:
		return "now"
	case d > 0:
		return "in " + FormatRelativeTime(d)
	default:
		return FormatRelativeTime(-d) + " ago"
	}
}

// relativeSteps are tried in order; a count at or above limit moves on to
// the next, coarser unit. The last step has no limit.
var relativeSteps = []struct {
	unit  string
	size  time.Duration
	limit int
}{
	{unit: "minute", size: time.Minute, limit: 60},
	{unit: "hour", size: time.Hour, limit: 24},
	{unit: "day", size: day, limit: 14},
	{unit: "week", size: week, limit: 5},
	{unit: "month", size: 30 * day, limit: 12},
	{unit: "year", size: 365 * day},
}

// FormatRelativeTime formats a duration into a human-readable span.
func FormatRelativeTime(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}

	for _, step := range relativeSteps {
		n := int(d / step.size)
		if step.limit > 0 && n >= step.limit {
			continue
		}
		if n < 1 {
			n = 1
		}
		if n == 1 {
			return "1 " + step.unit
		}
		return fmt.Sprintf("%d %ss", n, step.unit)
	}
	return "" // unreachable, the last step has no limit
}
