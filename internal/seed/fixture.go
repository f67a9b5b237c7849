// Package seed imports a school year (grades, published lunch times, roster
// and assignments) from a YAML file.
package seed

import (
	"LunchAPI/internal/clock"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SchoolYear struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	StartDate string `yaml:"startDate"`
	EndDate   string `yaml:"endDate"`
}

type Grade struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	Classroom bool   `yaml:"classroom"`
}

// DayTimes publishes times for a grade or a teacher on some weekdays.
// An empty Days list means every school day.
type DayTimes struct {
	Grade   string       `yaml:"grade,omitempty"`
	Teacher string       `yaml:"teacher,omitempty"`
	Days    []string     `yaml:"days,omitempty"`
	Times   []clock.Time `yaml:"times"`
}

type StaffMember struct {
	ID          string `yaml:"id"`
	DisplayName string `yaml:"displayName"`
	Teacher     bool   `yaml:"teacher"`
}

// Assignment places a student for some weekdays. An empty Days list means
// every school day.
type Assignment struct {
	Days    []string `yaml:"days,omitempty"`
	Grade   string   `yaml:"grade"`
	Teacher string   `yaml:"teacher,omitempty"`
}

type Student struct {
	ID          string       `yaml:"id"`
	FirstName   string       `yaml:"firstName"`
	LastName    string       `yaml:"lastName"`
	Assignments []Assignment `yaml:"assignments,omitempty"`
}

// Fixture is one school year as written in a seed file
type Fixture struct {
	SchoolYear      SchoolYear              `yaml:"schoolYear"`
	Grades          []Grade                 `yaml:"grades"`
	SchoolWideTimes map[string][]clock.Time `yaml:"schoolWideTimes"`
	GradeTimes      []DayTimes              `yaml:"gradeTimes"`
	TeacherTimes    []DayTimes              `yaml:"teacherTimes"`
	Staff           []StaffMember           `yaml:"staff"`
	Students        []Student               `yaml:"students"`
}

// Load reads and validates a seed file
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates seed YAML
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks references between sections. It collects every problem.
func (f *Fixture) Validate() error {
	var errs []error
	if f.SchoolYear.ID == "" {
		errs = append(errs, errors.New("schoolYear.id is required"))
	}

	grades := make(map[string]bool)
	for _, g := range f.Grades {
		if g.Code == "" {
			errs = append(errs, errors.New("grade code is required"))
			continue
		}
		if grades[g.Code] {
			errs = append(errs, fmt.Errorf("grade %s listed twice", g.Code))
		}
		grades[g.Code] = true
	}

	teachers := make(map[string]bool)
	for _, s := range f.Staff {
		if s.ID == "" {
			errs = append(errs, errors.New("staff id is required"))
		}
		if s.Teacher {
			teachers[s.ID] = true
		}
	}

	for day := range f.SchoolWideTimes {
		if _, err := clock.ParseWeekday(day); err != nil {
			errs = append(errs, fmt.Errorf("schoolWideTimes: %w", err))
		}
	}
	for _, gt := range f.GradeTimes {
		if !grades[gt.Grade] {
			errs = append(errs, fmt.Errorf("gradeTimes: unknown grade %q", gt.Grade))
		}
		if _, err := ParseDays(gt.Days); err != nil {
			errs = append(errs, fmt.Errorf("gradeTimes %s: %w", gt.Grade, err))
		}
	}
	for _, tt := range f.TeacherTimes {
		if !teachers[tt.Teacher] {
			errs = append(errs, fmt.Errorf("teacherTimes: unknown teacher %q", tt.Teacher))
		}
		if _, err := ParseDays(tt.Days); err != nil {
			errs = append(errs, fmt.Errorf("teacherTimes %s: %w", tt.Teacher, err))
		}
	}

	seen := make(map[string]bool)
	for _, s := range f.Students {
		if s.ID == "" {
			errs = append(errs, errors.New("student id is required"))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("student %s listed twice", s.ID))
		}
		seen[s.ID] = true

		days := make(map[time.Weekday]bool)
		for _, a := range s.Assignments {
			if !grades[a.Grade] {
				errs = append(errs, fmt.Errorf("student %s: unknown grade %q", s.ID, a.Grade))
			}
			if a.Teacher != "" && !teachers[a.Teacher] {
				errs = append(errs, fmt.Errorf("student %s: unknown teacher %q", s.ID, a.Teacher))
			}
			parsed, err := ParseDays(a.Days)
			if err != nil {
				errs = append(errs, fmt.Errorf("student %s: %w", s.ID, err))
				continue
			}
			for _, d := range parsed {
				if days[d] {
					errs = append(errs, fmt.Errorf("student %s: more than one assignment on %s", s.ID, clock.WeekdayName(d)))
				}
				days[d] = true
			}
		}
	}
	return errors.Join(errs...)
}

// ParseDays parses weekday names. No names means every school day.
func ParseDays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return clock.SchoolDays, nil
	}
	days := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		d, err := clock.ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
