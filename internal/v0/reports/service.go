package reports

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/lunchtime"
	"LunchAPI/internal/report"
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrTeacherNotFound is returned when a classroom report names an unknown teacher
var ErrTeacherNotFound = errors.New("teacher not found")

// SchoolData is the school year side of a report snapshot
type SchoolData interface {
	LoadConfig(ctx context.Context, schoolYearID string) (*lunchtime.Config, error)
	LoadRoster(ctx context.Context) (report.Roster, error)
	LoadTeachers(ctx context.Context) (map[string]report.Teacher, error)
}

// OrderData is the order side of a report snapshot
type OrderData interface {
	OrdersForDate(ctx context.Context, date time.Time) ([]report.Order, error)
}

// Report is a built service report with its footer totals
type Report struct {
	Date       string         `json:"date"`
	SchoolYear string         `json:"schoolYear"`
	TeacherID  string         `json:"teacherId,omitempty"`
	Groups     []report.Group `json:"groups"`
	Totals     report.Totals  `json:"totals"`
}

type Service struct {
	school SchoolData
	orders OrderData
}

func NewService(school SchoolData, orders OrderData) *Service {
	return &Service{school: school, orders: orders}
}

type snapshot struct {
	cfg      *lunchtime.Config
	roster   report.Roster
	teachers map[string]report.Teacher
	orders   []report.Order
}

// load reads the four report inputs concurrently. The first failure cancels
// the others.
func (s *Service) load(ctx context.Context, date time.Time, year string) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cfg, err := s.school.LoadConfig(gctx, year)
		snap.cfg = cfg
		return err
	})
	g.Go(func() error {
		roster, err := s.school.LoadRoster(gctx)
		snap.roster = roster
		return err
	})
	g.Go(func() error {
		teachers, err := s.school.LoadTeachers(gctx)
		snap.teachers = teachers
		return err
	})
	g.Go(func() error {
		orders, err := s.orders.OrdersForDate(gctx, date)
		snap.orders = orders
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Build returns the service report for date. A non-empty teacherID narrows it
// to that teacher's classroom group.
func (s *Service) Build(ctx context.Context, date time.Time, year, teacherID string) (*Report, error) {
	snap, err := s.load(ctx, date, year)
	if err != nil {
		return nil, err
	}

	var groups []report.Group
	if teacherID != "" {
		if _, ok := snap.teachers[teacherID]; !ok {
			return nil, ErrTeacherNotFound
		}
		groups = report.BuildClassroomReport(date, teacherID, snap.roster, snap.cfg, snap.orders, snap.teachers)
	} else {
		groups = report.BuildServiceReport(date, snap.roster, snap.cfg, snap.orders, snap.teachers)
	}
	if groups == nil {
		groups = []report.Group{}
	}

	return &Report{
		Date:       date.Format(clock.DateLayout),
		SchoolYear: year,
		TeacherID:  teacherID,
		Groups:     groups,
		Totals:     report.Summarise(groups),
	}, nil
}

//This project is the lunch ordering backend API for the OpenSourceDUTH team. Meal-service scheduling, lunch time resolution and service reports for the school cafeteria portal.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
