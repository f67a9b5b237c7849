package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SchoolDays are the weekdays on which lunch is served, in display order.
var SchoolDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// ParseDate parses a YYYY-MM-DD date and returns midnight of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DateOf truncates t to midnight of its calendar day, keeping its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate reports whether a and b fall on the same calendar day as written,
// each in its own location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays moves date by n calendar days. Clock time is dropped.
func AddDays(date time.Time, n int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, date.Location())
}

// At places the clock time on date's calendar day in date's location.
func At(date time.Time, t Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, date.Location())
}

// MondayOf returns the Monday that starts the calendar week containing date.
// Weeks run Monday through Sunday.
func MondayOf(date time.Time) time.Time {
	back := (int(date.Weekday()) + 6) % 7
	return AddDays(date, -back)
}

// ParseWeekday accepts full names ("MONDAY", "monday"), three letter
// abbreviations ("mon") and time.Weekday numbers ("1").
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid weekday %q", s)
		}
		return time.Weekday(n), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || (len(v) == 3 && strings.HasPrefix(name, v)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// WeekdayName renders a weekday in upper case, e.g. "MONDAY".
func WeekdayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}
