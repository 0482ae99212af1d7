package timeparse

import (
	"fmt"
	"time"
)

// isoLocalLayout is the canonical text form of a DateTime.
const isoLocalLayout = "2006-01-02T15:04:05"

// DateTime is a calendar date and time-of-day with no zone attached.
// The wall-clock fields are held in a time.Time pinned to UTC so that day
// arithmetic is plain calendar arithmetic.
type DateTime struct {
	t time.Time
}

// Date returns the DateTime for the given wall-clock fields. Out of range
// values are normalized the same way time.Date normalizes them.
func Date(year int, month time.Month, day, hour, minute, sec int) DateTime {
	return DateTime{t: time.Date(year, month, day, hour, minute, sec, 0, time.UTC)}
}

// FromTime drops the zone of t and keeps its wall-clock fields.
func FromTime(t time.Time) DateTime {
	return DateTime{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

func (d DateTime) Year() int { return d.t.Year() }
func (d DateTime) Month() time.Month { return d.t.Month() }
func (d DateTime) Day() int { return d.t.Day() }
func (d DateTime) Hour() int { return d.t.Hour() }
func (d DateTime) Minute() int { return d.t.Minute() }
func (d DateTime) Second() int { return d.t.Second() }
func (d DateTime) Nanosecond() int { return d.t.Nanosecond() }
func (d DateTime) Weekday() time.Weekday { return d.t.Weekday() }

func (d DateTime) IsZero() bool { return d.t.IsZero() }
func (d DateTime) Before(other DateTime) bool { return d.t.Before(other.t) }
func (d DateTime) After(other DateTime) bool { return d.t.After(other.t) }
func (d DateTime) Equal(other DateTime) bool { return d.t.Equal(other.t) }

// Sub returns the wall-clock distance d-other.
func (d DateTime) Sub(other DateTime) time.Duration { return d.t.Sub(other.t) }

// AddDays moves the date by n calendar days, keeping the time-of-day.
func (d DateTime) AddDays(n int) DateTime {
	return DateTime{t: d.t.AddDate(0, 0, n)}
}

// Midnight returns the start of d's calendar day.
func (d DateTime) Midnight() DateTime {
	return Date(d.Year(), d.Month(), d.Day(), 0, 0, 0)
}

// HasTime reports whether the time-of-day is anything other than exactly midnight.
func (d DateTime) HasTime() bool {
	return d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0
}

// Time returns the wall-clock fields as a UTC time.Time.
func (d DateTime) Time() time.Time { return d.t }

// In interprets the wall-clock fields in loc.
func (d DateTime) In(loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), loc)
}

// String returns the ISO local form, e.g. 2026-02-18T10:15:00.
func (d DateTime) String() string {
	if d.Nanosecond() != 0 {
		return d.t.Format("2006-01-02T15:04:05.999999999")
	}
	return d.t.Format(isoLocalLayout)
}

func (d DateTime) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DateTime) UnmarshalText(text []byte) error {
	parsed, err := ParseISO(string(text))
	if err != nil {
		return fmt.Errorf("failed to decode date/time: %w", err)
	}
	*d = parsed
	return nil
}
