package timeparse

import (
	"testing"
	"time"
)

func TestLookupWeekday(t *testing.T) {
	tests := map[string]time.Weekday{
		"mon": time.Monday, "Monday": time.Monday,
		"tue": time.Tuesday, "TUES": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "weds": time.Wednesday, "Wednesday": time.Wednesday,
		"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "SATURDAY": time.Saturday,
		"sun": time.Sunday, "Sunday": time.Sunday,
	}
	for token, want := range tests {
		got, ok := LookupWeekday(token)
		if !ok || got != want {
			t.Errorf("LookupWeekday(%q) = %v, %v; want %v", token, got, ok, want)
		}
	}

	for _, token := range []string{"", "mo", "mond", "thr", "weekend", "tomorrow", "FRİ", "ſat", "ＭＯＮ"} {
		if _, ok := LookupWeekday(token); ok {
			t.Errorf("LookupWeekday(%q) unexpectedly matched", token)
		}
	}
}

func TestNextWeekday_NeverToday(t *testing.T) {
	// Every pairing of (today, target) across one week, with a late time on
	// today so the midnight reset is visible.
	start := Date(2026, time.February, 8, 23, 59, 59) // Sunday
	for offset := 0; offset < 7; offset++ {
		now := start.AddDays(offset)
		for target := time.Sunday; target <= time.Saturday; target++ {
			got := NextWeekday(target, now)

			if got.Weekday() != target {
				t.Errorf("NextWeekday(%v, %s) = %s which is a %v", target, now, got, got.Weekday())
			}
			if got.HasTime() {
				t.Errorf("NextWeekday(%v, %s) = %s, want midnight", target, now, got)
			}
			days := int(got.Sub(now.Midnight()).Hours() / 24)
			if days < 1 || days > 7 {
				t.Errorf("NextWeekday(%v, %s) is %d days ahead, want 1..7", target, now, days)
			}
			if target == now.Weekday() && days != 7 {
				t.Errorf("NextWeekday(%v, %s) on the same weekday is %d days ahead, want 7", target, now, days)
			}
		}
	}
}

func TestNextClockTime(t *testing.T) {
	tests := []struct {
		name         string
		hour, minute int
		now          DateTime
		want         DateTime
	}{
		{
			name: "later today",
			hour: 18, minute: 0,
			now:  Date(2026, time.February, 11, 9, 0, 0),
			want: Date(2026, time.February, 11, 18, 0, 0),
		},
		{
			name: "earlier today rolls over",
			hour: 8, minute: 0,
			now:  Date(2026, time.February, 11, 9, 0, 0),
			want: Date(2026, time.February, 12, 8, 0, 0),
		},
		{
			name: "exactly now rolls over",
			hour: 9, minute: 0,
			now:  Date(2026, time.February, 11, 9, 0, 0),
			want: Date(2026, time.February, 12, 9, 0, 0),
		},
		{
			name: "seconds past the minute roll over",
			hour: 9, minute: 0,
			now:  Date(2026, time.February, 11, 9, 0, 1),
			want: Date(2026, time.February, 12, 9, 0, 0),
		},
		{
			name: "leap day rollover",
			hour: 7, minute: 30,
			now:  Date(2028, time.February, 28, 22, 0, 0),
			want: Date(2028, time.February, 29, 7, 30, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextClockTime(tt.hour, tt.minute, tt.now); !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
