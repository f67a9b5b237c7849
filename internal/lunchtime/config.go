package lunchtime

import (
	"LunchAPI/internal/clock"
	"fmt"
	"sort"
	"time"
)

// GradeDay keys published grade-level times.
type GradeDay struct {
	Grade string
	Day   time.Weekday
}

// TeacherDay keys published classroom times.
type TeacherDay struct {
	TeacherID string
	Day       time.Weekday
}

// Grade is a grade level as shown to administrators.
type Grade struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Assignment places a student in a grade, and for classroom-governed grades
// with a teacher, for one weekday of the school year.
type Assignment struct {
	StudentID string       `json:"studentId"`
	Day       time.Weekday `json:"day"`
	Grade     string       `json:"grade"`
	TeacherID string       `json:"teacherId,omitempty"`
}

// HasTeacher reports whether a classroom teacher is set.
func (a Assignment) HasTeacher() bool {
	return a.TeacherID != ""
}

// Config is everything that decides lunch times for one school year.
//
// SchoolWideTimes is only the pool administrators pick grade and teacher
// times from. Resolution never falls back to it.
type Config struct {
	SchoolYearID    string
	SchoolWideTimes map[time.Weekday]clock.Set
	GradeTimes      map[GradeDay]clock.Set
	TeacherTimes    map[TeacherDay]clock.Set
	ClassroomGrades map[string]bool
	Assignments     []Assignment
	Grades          []Grade
}

// NewConfig returns an empty configuration with its maps allocated.
func NewConfig(schoolYearID string) *Config {
	return &Config{
		SchoolYearID:    schoolYearID,
		SchoolWideTimes: make(map[time.Weekday]clock.Set),
		GradeTimes:      make(map[GradeDay]clock.Set),
		TeacherTimes:    make(map[TeacherDay]clock.Set),
		ClassroomGrades: make(map[string]bool),
	}
}

// IsClassroomGrade reports whether the grade takes its time from the teacher.
func (c *Config) IsClassroomGrade(grade string) bool {
	return c.ClassroomGrades[grade]
}

// GradeName returns the display name of a grade, falling back to its code.
func (c *Config) GradeName(code string) string {
	for _, g := range c.Grades {
		if g.Code == code && g.Name != "" {
			return g.Name
		}
	}
	return code
}

// GradeRank orders grades the way they are listed in Grades. Unlisted grades
// sort after every listed one.
func (c *Config) GradeRank(code string) int {
	for i, g := range c.Grades {
		if g.Code == code {
			return i
		}
	}
	return len(c.Grades)
}

// TeacherTime returns the earliest published time for a teacher on a day.
func (c *Config) TeacherTime(teacherID string, day time.Weekday) (clock.Time, bool) {
	return c.TeacherTimes[TeacherDay{TeacherID: teacherID, Day: day}].Earliest()
}

// GradeTime returns the earliest published time for a grade on a day.
func (c *Config) GradeTime(grade string, day time.Weekday) (clock.Time, bool) {
	return c.GradeTimes[GradeDay{Grade: grade, Day: day}].Earliest()
}

// Assignment returns the first assignment record for a student on a day.
func (c *Config) Assignment(studentID string, day time.Weekday) (Assignment, bool) {
	for _, a := range c.Assignments {
		if a.StudentID == studentID && a.Day == day {
			return a, true
		}
	}
	return Assignment{}, false
}

// Validate reports student/day pairs with more than one assignment record.
// Nothing is repaired; lookups keep using the first record.
func (c *Config) Validate() error {
	seen := make(map[assignmentKey]int)
	for _, a := range c.Assignments {
		seen[assignmentKey{studentID: a.StudentID, day: a.Day}]++
	}

	var dupes []string
	for k, n := range seen {
		if n > 1 {
			dupes = append(dupes, fmt.Sprintf("%s/%s", k.studentID, clock.WeekdayName(k.day)))
		}
	}
	if len(dupes) == 0 {
		return nil
	}
	sort.Strings(dupes)
	return fmt.Errorf("duplicate lunch assignments: %v", dupes)
}

type assignmentKey struct {
	studentID string
	day       time.Weekday
}

// assignmentIndex is a first-record-wins lookup built once per bulk call.
type assignmentIndex map[assignmentKey]Assignment

func indexAssignments(records []Assignment) assignmentIndex {
	idx := make(assignmentIndex, len(records))
	for _, a := range records {
		k := assignmentKey{studentID: a.StudentID, day: a.Day}
		if _, exists := idx[k]; !exists {
			idx[k] = a
		}
	}
	return idx
}
