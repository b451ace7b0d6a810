// Package dates holds the calendar-day arithmetic the progress tracker is
// built on: the canonical day key joining UI days to server entries, and the
// Monday-start week window.
package dates

import (
	"strings"
	"time"
)

const keyLayout = "2006-01-02"

// Key returns the canonical "YYYY-MM-DD" key for the calendar day t
// represents in its own location. The local year/month/day are re-anchored
// at UTC midnight before formatting, so a locally constructed day and a
// server UTC-midnight timestamp for the same intended day produce the same
// key regardless of the client's zone offset.
func Key(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(keyLayout)
}

// KeyFromString extracts the day key from an ISO date or datetime string
// without reparsing it into a time.Time. Reparsing would shift the day in
// zones west of UTC; the server already encodes the intended day in the
// first ten characters.
func KeyFromString(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// WeekStart returns the Monday on or before ref. Sunday belongs to the week
// whose Monday is six days earlier. Time-of-day is preserved.
func WeekStart(ref time.Time) time.Time {
	wd := int(ref.Weekday())
	diff := 1 - wd
	if wd == 0 {
		diff = -6
	}
	return ref.AddDate(0, 0, diff)
}

// WeekDays returns the seven days of the window starting at start.
func WeekDays(start time.Time) [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekRange returns the instants spanning local midnight of the window's
// Monday to local midnight after its Sunday, for the server's
// startDate/endDate query parameters.
func WeekRange(start time.Time) (time.Time, time.Time) {
	from := DayStart(start)
	return from, from.AddDate(0, 0, 7)
}

// DayStart strips the time-of-day in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
