package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Rule names, in cascade order.
const (
	RuleISOOffsetDateTime = "IsoOffsetDateTime"
	RuleISOLocalDateTime  = "IsoLocalDateTime"
	RuleISODate           = "IsoDate"
	RuleWeekday           = "Weekday"
	RuleClockTime         = "ClockTime"
	RuleMeridiemTime      = "MeridiemTime"
	RuleYearMonthDayTime  = "YearMonthDayTime"
	RuleYearMonthDay      = "YearMonthDay"
	RuleMonthDayYear      = "MonthDayYear"
	RuleDayMonthYear      = "DayMonthYear"
	RuleNumericSlashDate  = "NumericSlashDate"
	RuleNumericDashDate   = "NumericDashDate"
	RuleMonthDayTime      = "MonthDayTime"
	RuleMonthDayMeridiem  = "MonthDayMeridiem"
	RuleMonthDay          = "MonthDay"
)

// rule is one accepted textual shape. match sees the trimmed input and must
// consume all of it; ok is false both when the shape does not fit and when
// a numeral in it is out of range.
type rule struct {
	name  string
	match func(text string, now DateTime) (DateTime, bool)
}

// isoRules are the absolute forms, the only ones that may carry an offset.
var isoRules = []rule{
	{name: RuleISOOffsetDateTime, match: isoRule(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}(:\d{2}(\.\d{1,9})?)?([Zz]|[+-]\d{2}:\d{2})$`,
		"2006-01-02T15:04Z07:00", "2006-01-02T15:04:05Z07:00")},
	{name: RuleISOLocalDateTime, match: isoRule(`^\d{4}-\d{2}-\d{2}[Tt]\d{2}:\d{2}(:\d{2}(\.\d{1,9})?)?$`,
		"2006-01-02T15:04", "2006-01-02T15:04:05")},
	{name: RuleISODate, match: isoRule(`^\d{4}-\d{2}-\d{2}$`, "2006-01-02")},
}

// cascade is tried top to bottom and the first match wins. The order is part
// of the accepted grammar: absolute ISO forms before anything relative.
var cascade = append(append([]rule{}, isoRules...), relativeRules...)

// relativeRules resolve against now: keywords and clock times first, then
// calendar forms with a year, then without one.
var relativeRules = []rule{
	{name: RuleWeekday, match: matchWeekday},

	{name: RuleClockTime, match: matchClockTime},
	{name: RuleMeridiemTime, match: matchMeridiemTime},

	{name: RuleYearMonthDayTime, match: calendarRule(`(?P<year>\d{4})-? ?(?P<mon>[a-z]{3})-? ?(?P<day>\d{1,2}) (?P<hour>\d{2}):(?P<minute>\d{2})`)},
	{name: RuleYearMonthDay, match: calendarRule(`(?P<year>\d{4})-? ?(?P<mon>[a-z]{3})-? ?(?P<day>\d{1,2})`)},
	{name: RuleMonthDayYear, match: calendarRule(`(?P<mon>[a-z]{3}) ?(?P<day>\d{1,2}),? (?P<year>\d{4})`)},
	{name: RuleDayMonthYear, match: calendarRule(`(?P<day>\d{1,2})-? ?(?P<mon>[a-z]{3})-? ?(?P<year>\d{4})`)},
	{name: RuleNumericSlashDate, match: calendarRule(`(?P<day>\d{1,2})/(?P<month>\d{1,2})/(?P<year>\d{4})`)},
	{name: RuleNumericDashDate, match: calendarRule(`(?P<day>\d{1,2})-(?P<month>\d{1,2})-(?P<year>\d{4})`)},

	{name: RuleMonthDayTime, match: calendarRule(`(?P<mon>[a-z]{3})-? ?(?P<day>\d{1,2}) (?P<hour>\d{2}):(?P<minute>\d{2})`)},
	{name: RuleMonthDayMeridiem, match: calendarRule(`(?P<mon>[a-z]{3})-? ?(?P<day>\d{1,2}) (?P<hour12>\d{1,2})(?::(?P<minute>\d{2}))? ?(?P<meridiem>am|pm)`)},
	{name: RuleMonthDay, match: calendarRule(`(?P<mon>[a-z]{3})-? ?(?P<day>\d{1,2})`)},
}

var monthAbbrevs = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var (
	clockTimeRe    = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
	meridiemTimeRe = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))? ?(am|pm)$`)
)

// maxOffset bounds the zone offsets an ISO value may carry.
const maxOffset = 18 * 60 * 60

// isoRule gates the stdlib layouts behind an exact shape so that loose
// numerals time.Parse would tolerate (single digit hours) are rejected.
// Any offset is dropped and the wall-clock fields kept.
func isoRule(shape string, layouts ...string) func(string, DateTime) (DateTime, bool) {
	shapeRe := regexp.MustCompile(shape)
	return func(text string, _ DateTime) (DateTime, bool) {
		if !shapeRe.MatchString(text) {
			return DateTime{}, false
		}
		// The shape admits only digits, punctuation and the T/Z designators.
		text = strings.ToUpper(text)
		for _, layout := range layouts {
			t, err := time.Parse(layout, text)
			if err != nil {
				continue
			}
			if _, offset := t.Zone(); offset > maxOffset || offset < -maxOffset {
				return DateTime{}, false
			}
			return FromTime(t), true
		}
		return DateTime{}, false
	}
}

func matchWeekday(text string, now DateTime) (DateTime, bool) {
	wd, ok := LookupWeekday(text)
	if !ok {
		return DateTime{}, false
	}
	return NextWeekday(wd, now), true
}

func matchClockTime(text string, now DateTime) (DateTime, bool) {
	m := clockTimeRe.FindStringSubmatch(text)
	if m == nil {
		return DateTime{}, false
	}
	hour, minute := atoi(m[1]), atoi(m[2])
	if !validClock(hour, minute) {
		return DateTime{}, false
	}
	return NextClockTime(hour, minute, now), true
}

func matchMeridiemTime(text string, now DateTime) (DateTime, bool) {
	m := meridiemTimeRe.FindStringSubmatch(text)
	if m == nil {
		return DateTime{}, false
	}
	minute := 0
	if m[2] != "" {
		minute = atoi(m[2])
	}
	hour, ok := from12Hour(atoi(m[1]), m[3])
	if !ok || !validClock(hour, minute) {
		return DateTime{}, false
	}
	return NextClockTime(hour, minute, now), true
}

// calendarRule builds a matcher from a pattern with named groups. Groups the
// pattern leaves out take their defaults: the year of now, and midnight.
func calendarRule(pattern string) func(string, DateTime) (DateTime, bool) {
	re := regexp.MustCompile(`(?i)^` + pattern + `$`)
	names := re.SubexpNames()
	return func(text string, now DateTime) (DateTime, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return DateTime{}, false
		}

		year, month, day, hour, minute := now.Year(), time.Month(0), 0, 0, 0
		hour12, meridiem := 0, ""
		for i, name := range names {
			v := m[i]
			if name == "" || v == "" {
				continue
			}
			switch name {
			case "year":
				year = atoi(v)
			case "mon":
				mon, ok := monthAbbrevs[strings.ToLower(v)]
				if !ok {
					return DateTime{}, false
				}
				month = mon
			case "month":
				month = time.Month(atoi(v))
			case "day":
				day = atoi(v)
			case "hour":
				hour = atoi(v)
			case "hour12":
				hour12 = atoi(v)
			case "minute":
				minute = atoi(v)
			case "meridiem":
				meridiem = v
			}
		}
		if meridiem != "" {
			h, ok := from12Hour(hour12, meridiem)
			if !ok {
				return DateTime{}, false
			}
			hour = h
		}

		if !validDate(year, month, day) || !validClock(hour, minute) {
			return DateTime{}, false
		}
		return Date(year, month, day, hour, minute, 0), true
	}
}

// from12Hour converts a 1..12 clock hour to 0..23.
func from12Hour(h int, meridiem string) (int, bool) {
	if h < 1 || h > 12 {
		return 0, false
	}
	h %= 12
	if strings.EqualFold(meridiem, "pm") {
		h += 12
	}
	return h, true
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

func validDate(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	return day <= daysIn(year, month)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// atoi is only called on text already matched as digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
