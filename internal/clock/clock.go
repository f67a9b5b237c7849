package clock

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// TimeLayout is the wall-clock format used for lunch times and rule times (HH:MM)
	TimeLayout = "15:04"

	// DateLayout is the calendar date format used for service dates (YYYY-MM-DD)
	DateLayout = "2006-01-02"
)

// Time is a time of day without a date or location.
type Time struct {
	Hour   int
	Minute int
}

// New builds a Time, rejecting values outside 00:00-23:59.
func New(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("clock time out of range: %d:%d", hour, minute)
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// Parse parses an HH:MM string.
func Parse(s string) (Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return Time{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return Time{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustParse is Parse for constants and tests. It panics on malformed input.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the number of minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after u.
func (t Time) Compare(u Time) int {
	switch {
	case t.Minutes() < u.Minutes():
		return -1
	case t.Minutes() > u.Minutes():
		return 1
	}
	return 0
}

func (t Time) Before(u Time) bool {
	return t.Compare(u) < 0
}

// MarshalText renders HH:MM. Used by encoding/json and yaml.v3.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements sql.Scanner for TEXT columns holding HH:MM (or HH:MM:SS).
func (t *Time) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into clock.Time", src)
	}
	if len(s) > 5 {
		s = s[:5]
	}
	return t.UnmarshalText([]byte(s))
}

// Value implements driver.Valuer.
func (t Time) Value() (driver.Value, error) {
	return t.String(), nil
}

// Set is an ordered collection of distinct clock times.
type Set []Time

// NewSet sorts the given times ascending and drops duplicates.
func NewSet(times ...Time) Set {
	if len(times) == 0 {
		return nil
	}
	sorted := make([]Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	out := sorted[:1]
	for _, t := range sorted[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return Set(out)
}

// ParseSet parses a list of HH:MM strings into a Set.
func ParseSet(values ...string) (Set, error) {
	times := make([]Time, 0, len(values))
	for _, v := range values {
		t, err := Parse(v)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return NewSet(times...), nil
}

// Earliest returns the earliest time in the set. It does not rely on the
// set being sorted, so hand-built sets resolve the same way.
func (s Set) Earliest() (Time, bool) {
	if len(s) == 0 {
		return Time{}, false
	}
	earliest := s[0]
	for _, t := range s[1:] {
		if t.Before(earliest) {
			earliest = t
		}
	}
	return earliest, true
}

func (s Set) Contains(t Time) bool {
	for _, v := range s {
		if v == t {
			return true
		}
	}
	return false
}

// Strings renders every time as HH:MM.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.String()
	}
	return out
}

/*
This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
