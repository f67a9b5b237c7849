package lunchtime

import (
	"LunchAPI/internal/clock"
	"sort"
	"time"
)

// CandidateTimes is the pool of school-wide times an administrator may
// publish for a grade or a teacher on the given day.
func CandidateTimes(cfg *Config, day time.Weekday) clock.Set {
	return clock.NewSet(cfg.SchoolWideTimes[day]...)
}

// Violation is a published grade or teacher time that is not part of the
// school-wide pool for its day.
type Violation struct {
	Grade     string       `json:"grade,omitempty"`
	TeacherID string       `json:"teacherId,omitempty"`
	Day       time.Weekday `json:"day"`
	Time      clock.Time   `json:"time"`
}

// CheckPublished lists published times outside the school-wide pool. The
// result is advisory; resolution still uses whatever was published.
func CheckPublished(cfg *Config) []Violation {
	var out []Violation
	for k, times := range cfg.GradeTimes {
		pool := cfg.SchoolWideTimes[k.Day]
		for _, t := range times {
			if !pool.Contains(t) {
				out = append(out, Violation{Grade: k.Grade, Day: k.Day, Time: t})
			}
		}
	}
	for k, times := range cfg.TeacherTimes {
		pool := cfg.SchoolWideTimes[k.Day]
		for _, t := range times {
			if !pool.Contains(t) {
				out = append(out, Violation{TeacherID: k.TeacherID, Day: k.Day, Time: t})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.TeacherID != b.TeacherID {
			return a.TeacherID < b.TeacherID
		}
		return a.Time.Before(b.Time)
	})
	return out
}
