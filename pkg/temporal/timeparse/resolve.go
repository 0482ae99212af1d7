package timeparse

import (
	"strings"
	"time"
	"unicode/utf8"
)

var weekdayTokens = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"weds":      time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// LookupWeekday maps an English weekday name or one of its common
// abbreviations, in any ASCII case, to its time.Weekday.
func LookupWeekday(token string) (time.Weekday, bool) {
	token = strings.TrimSpace(token)
	if !isASCII(token) {
		return 0, false
	}
	wd, ok := weekdayTokens[strings.ToLower(token)]
	return wd, ok
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// NextWeekday returns midnight of the first day strictly after now's date
// that falls on target. When now is already a target day the result is a
// week later.
func NextWeekday(target time.Weekday, now DateTime) DateTime {
	daysUntil := (int(target) - int(now.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return now.Midnight().AddDays(daysUntil)
}

// NextClockTime returns the next moment after now at which the wall clock
// reads hour:minute. A clock time equal to now counts as already passed.
func NextClockTime(hour, minute int, now DateTime) DateTime {
	candidate := Date(now.Year(), now.Month(), now.Day(), hour, minute, 0)
	if !candidate.After(now) {
		candidate = candidate.AddDays(1)
	}
	return candidate
}
