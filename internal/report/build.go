package report

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/lunchtime"
	"sort"
	"time"

	"golang.org/x/text/cases"
)

// BuildServiceReport groups the meals served on date.
//
// Groups come out in a fixed order: one per classroom teacher, one per
// grade-level grade, then students without a usable assignment, then staff
// who do not own a classroom group. Every served student and staff member
// appears in exactly one group.
func BuildServiceReport(date time.Time, roster Roster, cfg *lunchtime.Config, orders []Order, teachers map[string]Teacher) []Group {
	b := newBuilder(date, roster, cfg, orders)
	if b.empty() {
		return nil
	}

	groups := b.classroomGroups(sortTeachers(teachers))
	groups = append(groups, b.gradeGroups()...)
	if g, ok := b.otherGroup(); ok {
		groups = append(groups, g)
	}
	if g, ok := b.staffGroup(); ok {
		groups = append(groups, g)
	}
	return groups
}

// BuildClassroomReport is the classroom step of BuildServiceReport for a
// single teacher. It returns at most one group.
func BuildClassroomReport(date time.Time, teacherID string, roster Roster, cfg *lunchtime.Config, orders []Order, teachers map[string]Teacher) []Group {
	t, ok := teachers[teacherID]
	if !ok {
		return nil
	}
	t.ID = teacherID
	b := newBuilder(date, roster, cfg, orders)
	if b.empty() {
		return nil
	}
	return b.classroomGroups([]Teacher{t})
}

type builder struct {
	cfg     *lunchtime.Config
	day     time.Weekday
	folder  cases.Caser
	names   map[Eater]string
	meals   map[Eater][]Meal
	served  []Eater
	claimed map[string]bool
	owners  map[string]bool

	// Assignment records for the report weekday, built once.
	byStudent map[string]lunchtime.Assignment
	byTeacher map[string][]lunchtime.Assignment
}

func newBuilder(date time.Time, roster Roster, cfg *lunchtime.Config, orders []Order) *builder {
	if cfg == nil {
		cfg = lunchtime.NewConfig("")
	}
	b := &builder{
		cfg:     cfg,
		day:     date.Weekday(),
		folder:  cases.Fold(),
		names:   make(map[Eater]string),
		meals:   make(map[Eater][]Meal),
		claimed: make(map[string]bool),
		owners:  make(map[string]bool),

		byStudent: make(map[string]lunchtime.Assignment),
		byTeacher: make(map[string][]lunchtime.Assignment),
	}

	for _, a := range cfg.Assignments {
		if a.Day != b.day {
			continue
		}
		if _, exists := b.byStudent[a.StudentID]; !exists {
			b.byStudent[a.StudentID] = a
		}
		if a.HasTeacher() {
			b.byTeacher[a.TeacherID] = append(b.byTeacher[a.TeacherID], a)
		}
	}

	for _, s := range roster.Students {
		b.names[Eater{Kind: EaterStudent, ID: s.ID}] = s.DisplayName()
	}
	for _, s := range roster.Staff {
		b.names[Eater{Kind: EaterStaff, ID: s.ID}] = s.DisplayName
	}

	for _, o := range orders {
		for _, m := range o.Items {
			if !clock.SameDate(m.ServiceDate, date) {
				continue
			}
			if _, seen := b.meals[m.Eater]; !seen {
				b.served = append(b.served, m.Eater)
			}
			b.meals[m.Eater] = append(b.meals[m.Eater], m)
		}
	}
	return b
}

func (b *builder) empty() bool {
	return len(b.served) == 0
}

func (b *builder) participant(e Eater, fallbackName string) Participant {
	name, ok := b.names[e]
	if !ok || name == "" {
		name = fallbackName
	}
	if name == "" {
		name = e.ID
	}
	return Participant{ID: e.ID, Kind: e.Kind, DisplayName: name, Meals: b.meals[e]}
}

func (b *builder) isServed(e Eater) bool {
	_, ok := b.meals[e]
	return ok
}

func (b *builder) classroomGroups(teachers []Teacher) []Group {
	var groups []Group
	for _, t := range teachers {
		var students []Participant
		for _, a := range b.byTeacher[t.ID] {
			if !b.cfg.IsClassroomGrade(a.Grade) || b.claimed[a.StudentID] {
				continue
			}
			e := Eater{Kind: EaterStudent, ID: a.StudentID}
			if !b.isServed(e) {
				continue
			}
			b.claimed[a.StudentID] = true
			students = append(students, b.participant(e, ""))
		}

		own := Eater{Kind: EaterStaff, ID: t.ID}
		ownMeal := b.isServed(own)
		if len(students) == 0 && !ownMeal {
			continue
		}

		var participants []Participant
		if ownMeal {
			b.owners[t.ID] = true
			participants = append(participants, b.participant(own, t.DisplayName))
		}
		b.sortParticipants(students)
		participants = append(participants, students...)

		g := Group{Kind: GroupClassroom, Key: t.ID, Title: t.DisplayName, Participants: participants}
		if tm, ok := b.cfg.TeacherTime(t.ID, b.day); ok {
			g.Time = &tm
		}
		groups = append(groups, g)
	}
	return groups
}

func (b *builder) gradeGroups() []Group {
	byGrade := make(map[string][]Participant)
	for _, e := range b.served {
		if e.Kind != EaterStudent || b.claimed[e.ID] {
			continue
		}
		a, ok := b.byStudent[e.ID]
		if !ok || a.Grade == "" || b.cfg.IsClassroomGrade(a.Grade) {
			continue
		}
		b.claimed[e.ID] = true
		byGrade[a.Grade] = append(byGrade[a.Grade], b.participant(e, ""))
	}

	codes := make([]string, 0, len(byGrade))
	for code := range byGrade {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ri, rj := b.cfg.GradeRank(codes[i]), b.cfg.GradeRank(codes[j])
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})

	groups := make([]Group, 0, len(codes))
	for _, code := range codes {
		participants := byGrade[code]
		b.sortParticipants(participants)
		g := Group{Kind: GroupGrade, Key: code, Title: b.cfg.GradeName(code), Participants: participants}
		if tm, ok := b.cfg.GradeTime(code, b.day); ok {
			g.Time = &tm
		}
		groups = append(groups, g)
	}
	return groups
}

func (b *builder) otherGroup() (Group, bool) {
	var participants []Participant
	for _, e := range b.served {
		if e.Kind != EaterStudent || b.claimed[e.ID] {
			continue
		}
		b.claimed[e.ID] = true
		participants = append(participants, b.participant(e, ""))
	}
	if len(participants) == 0 {
		return Group{}, false
	}
	b.sortParticipants(participants)
	return Group{Kind: GroupOther, Title: OtherStudentsTitle, Participants: participants}, true
}

func (b *builder) staffGroup() (Group, bool) {
	var participants []Participant
	for _, e := range b.served {
		if e.Kind != EaterStaff || b.owners[e.ID] {
			continue
		}
		participants = append(participants, b.participant(e, ""))
	}
	if len(participants) == 0 {
		return Group{}, false
	}
	b.sortParticipants(participants)
	return Group{Kind: GroupStaff, Title: StaffTitle, Participants: participants}, true
}

func (b *builder) sortParticipants(ps []Participant) {
	sort.SliceStable(ps, func(i, j int) bool {
		ki, kj := b.folder.String(ps[i].DisplayName), b.folder.String(ps[j].DisplayName)
		if ki != kj {
			return ki < kj
		}
		return ps[i].ID < ps[j].ID
	})
}

// sortTeachers orders the directory by name, case-insensitively, then id.
// This order decides which classroom keeps a student assigned twice.
func sortTeachers(teachers map[string]Teacher) []Teacher {
	folder := cases.Fold()
	out := make([]Teacher, 0, len(teachers))
	for id, t := range teachers {
		if t.ID == "" {
			t.ID = id
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := folder.String(out[i].DisplayName), folder.String(out[j].DisplayName)
		if ki != kj {
			return ki < kj
		}
		return out[i].ID < out[j].ID
	})
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
