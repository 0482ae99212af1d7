package timeparse

// displayRow is one row of the display table: the first row whose guard
// holds for (value, now) picks the layout.
type displayRow struct {
	name    string
	guard   func(value, now DateTime) bool
	untimed string
	timed   string
}

var displayTable = []displayRow{
	{name: "same-date", guard: sameDate, untimed: "15:04", timed: "15:04"},
	{name: "same-month", guard: sameMonth, untimed: "Jan 2", timed: "Jan 2 at 15:04"},
	{name: "same-year", guard: sameYear, untimed: "Jan 2", timed: "Jan 2 at 15:04"},
	{name: "other-year", guard: always, untimed: "Jan 2, 2006", timed: "Jan 2, 2006 at 15:04"},
}

func sameDate(value, now DateTime) bool {
	return sameMonth(value, now) && value.Day() == now.Day()
}

func sameMonth(value, now DateTime) bool {
	return sameYear(value, now) && value.Month() == now.Month()
}

func sameYear(value, now DateTime) bool {
	return value.Year() == now.Year()
}

func always(_, _ DateTime) bool { return true }

// Format renders value against the wall clock.
func Format(value DateTime) string {
	return New().Format(value)
}

// FormatAt renders value for display, dropping whatever proximity to now
// already implies: a time on now's date shows only "15:04", a date in now's
// year drops the year, and the " at 15:04" suffix appears only when the
// value is not exactly midnight.
func FormatAt(value, now DateTime) string {
	return value.Time().Format(displayLayout(value, now))
}

func displayLayout(value, now DateTime) string {
	for _, row := range displayTable {
		if !row.guard(value, now) {
			continue
		}
		if value.HasTime() {
			return row.timed
		}
		return row.untimed
	}
	// The last row always applies.
	return displayTable[len(displayTable)-1].timed
}
