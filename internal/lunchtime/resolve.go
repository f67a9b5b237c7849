package lunchtime

import (
	"LunchAPI/internal/clock"
	"sort"
	"time"
)

// Reason explains why a lunch time could not be determined.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNoAssignment  Reason = "no_assignment"
	ReasonNoTeacher     Reason = "no_teacher"
	ReasonNoTeacherTime Reason = "no_teacher_time"
	ReasonNoGradeTime   Reason = "no_grade_time"
)

// Resolved is the lunch time of one student on one weekday. When Determined
// is false the time is UNDETERMINED and Time must be ignored.
type Resolved struct {
	StudentID  string       `json:"studentId"`
	Day        time.Weekday `json:"day"`
	Time       clock.Time   `json:"time"`
	Determined bool         `json:"determined"`
	Reason     Reason       `json:"reason,omitempty"`
}

// Undetermined reports whether no lunch time could be resolved.
func (r Resolved) Undetermined() bool {
	return !r.Determined
}

// Resolve finds the lunch time of a student on a weekday.
//
// Precedence, first match wins:
//  1. no assignment record for the day: undetermined
//  2. classroom-governed grade: the teacher's earliest published time, or
//     undetermined when the teacher or their time is missing
//  3. any other grade: the grade's earliest published time, or undetermined
//
// School-wide times are never used as a fallback.
func Resolve(cfg *Config, studentID string, day time.Weekday) Resolved {
	a, ok := cfg.Assignment(studentID, day)
	return resolveAssignment(cfg, studentID, day, a, ok)
}

func resolveAssignment(cfg *Config, studentID string, day time.Weekday, a Assignment, found bool) Resolved {
	r := Resolved{StudentID: studentID, Day: day}
	if !found {
		r.Reason = ReasonNoAssignment
		return r
	}

	if cfg.IsClassroomGrade(a.Grade) {
		if !a.HasTeacher() {
			r.Reason = ReasonNoTeacher
			return r
		}
		t, ok := cfg.TeacherTime(a.TeacherID, day)
		if !ok {
			r.Reason = ReasonNoTeacherTime
			return r
		}
		r.Time, r.Determined = t, true
		return r
	}

	t, ok := cfg.GradeTime(a.Grade, day)
	if !ok {
		r.Reason = ReasonNoGradeTime
		return r
	}
	r.Time, r.Determined = t, true
	return r
}

// ResolveWeek resolves Monday through Friday for one student.
func ResolveWeek(cfg *Config, studentID string) []Resolved {
	idx := indexAssignments(cfg.Assignments)
	return resolveWeek(cfg, idx, studentID)
}

func resolveWeek(cfg *Config, idx assignmentIndex, studentID string) []Resolved {
	out := make([]Resolved, 0, len(clock.SchoolDays))
	for _, day := range clock.SchoolDays {
		a, ok := idx[assignmentKey{studentID: studentID, day: day}]
		out = append(out, resolveAssignment(cfg, studentID, day, a, ok))
	}
	return out
}

// FindUndetermined returns the students whose lunch time is undetermined on
// at least one school day.
func FindUndetermined(cfg *Config, studentIDs []string) map[string]bool {
	idx := indexAssignments(cfg.Assignments)
	flagged := make(map[string]bool)
	for _, id := range studentIDs {
		for _, r := range resolveWeek(cfg, idx, id) {
			if r.Undetermined() {
				flagged[id] = true
				break
			}
		}
	}
	return flagged
}

// SortedIDs returns the keys of a flag set in ascending order.
func SortedIDs(flags map[string]bool) []string {
	ids := make([]string, 0, len(flags))
	for id, ok := range flags {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
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
