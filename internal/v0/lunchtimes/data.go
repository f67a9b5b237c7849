package lunchtimes

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/lunchtime"
	"LunchAPI/internal/report"
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown school years
var ErrNotFound = errors.New("school year not found")

type Repository struct {
	db *sql.DB
}

// NewRepository creates a new lunch time repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// LoadConfig reads everything that decides lunch times for a school year.
// Assignment records keep their insertion order.
func (r *Repository) LoadConfig(ctx context.Context, schoolYearID string) (*lunchtime.Config, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM school_years WHERE id = ?", schoolYearID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cfg := lunchtime.NewConfig(schoolYearID)
	if err := r.loadGrades(ctx, cfg); err != nil {
		return nil, err
	}
	if err := r.loadSchoolWideTimes(ctx, cfg); err != nil {
		return nil, err
	}
	if err := r.loadGradeTimes(ctx, cfg); err != nil {
		return nil, err
	}
	if err := r.loadTeacherTimes(ctx, cfg); err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *Repository) loadGrades(ctx context.Context, cfg *lunchtime.Config) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT code, name, classroom_governed FROM grades
		WHERE school_year_id = ? ORDER BY position, code`, cfg.SchoolYearID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g lunchtime.Grade
		var classroom bool
		if err := rows.Scan(&g.Code, &g.Name, &classroom); err != nil {
			return err
		}
		cfg.Grades = append(cfg.Grades, g)
		if classroom {
			cfg.ClassroomGrades[g.Code] = true
		}
	}
	return rows.Err()
}

func (r *Repository) loadSchoolWideTimes(ctx context.Context, cfg *lunchtime.Config) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT day_of_week, lunch_time FROM school_wide_times
		WHERE school_year_id = ?`, cfg.SchoolYearID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day int
		var t clock.Time
		if err := rows.Scan(&day, &t); err != nil {
			return err
		}
		d := time.Weekday(day)
		cfg.SchoolWideTimes[d] = clock.NewSet(append(cfg.SchoolWideTimes[d], t)...)
	}
	return rows.Err()
}

func (r *Repository) loadGradeTimes(ctx context.Context, cfg *lunchtime.Config) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT grade_code, day_of_week, lunch_time FROM grade_times
		WHERE school_year_id = ?`, cfg.SchoolYearID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k lunchtime.GradeDay
		var day int
		var t clock.Time
		if err := rows.Scan(&k.Grade, &day, &t); err != nil {
			return err
		}
		k.Day = time.Weekday(day)
		cfg.GradeTimes[k] = clock.NewSet(append(cfg.GradeTimes[k], t)...)
	}
	return rows.Err()
}

func (r *Repository) loadTeacherTimes(ctx context.Context, cfg *lunchtime.Config) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT teacher_id, day_of_week, lunch_time FROM teacher_times
		WHERE school_year_id = ?`, cfg.SchoolYearID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var k lunchtime.TeacherDay
		var day int
		var t clock.Time
		if err := rows.Scan(&k.TeacherID, &day, &t); err != nil {
			return err
		}
		k.Day = time.Weekday(day)
		cfg.TeacherTimes[k] = clock.NewSet(append(cfg.TeacherTimes[k], t)...)
	}
	return rows.Err()
}

func (r *Repository) loadAssignments(ctx context.Context, cfg *lunchtime.Config) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT student_id, day_of_week, grade_code, teacher_id FROM student_assignments
		WHERE school_year_id = ? ORDER BY id`, cfg.SchoolYearID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a lunchtime.Assignment
		var day int
		var teacher sql.NullString
		if err := rows.Scan(&a.StudentID, &day, &a.Grade, &teacher); err != nil {
			return err
		}
		a.Day = time.Weekday(day)
		a.TeacherID = teacher.String
		cfg.Assignments = append(cfg.Assignments, a)
	}
	return rows.Err()
}

// LoadRoster returns every student and staff member ever imported. Reports
// use it as a name directory.
func (r *Repository) LoadRoster(ctx context.Context) (report.Roster, error) {
	return r.loadRoster(ctx, "SELECT id, first_name, last_name FROM students ORDER BY id")
}

// LoadYearRoster returns the students enrolled in a school year, including
// those without any assignment, and every staff member.
func (r *Repository) LoadYearRoster(ctx context.Context, schoolYearID string) (report.Roster, error) {
	return r.loadRoster(ctx, `
		SELECT s.id, s.first_name, s.last_name FROM students s
		JOIN school_year_students e ON e.student_id = s.id
		WHERE e.school_year_id = ?
		ORDER BY s.id`, schoolYearID)
}

func (r *Repository) loadRoster(ctx context.Context, studentQuery string, args ...interface{}) (report.Roster, error) {
	var roster report.Roster

	rows, err := r.db.QueryContext(ctx, studentQuery, args...)
	if err != nil {
		return roster, err
	}
	defer rows.Close()
	for rows.Next() {
		var s report.Student
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return roster, err
		}
		roster.Students = append(roster.Students, s)
	}
	if err := rows.Err(); err != nil {
		return roster, err
	}

	staffRows, err := r.db.QueryContext(ctx, "SELECT id, display_name FROM staff ORDER BY id")
	if err != nil {
		return roster, err
	}
	defer staffRows.Close()
	for staffRows.Next() {
		var s report.StaffMember
		if err := staffRows.Scan(&s.ID, &s.DisplayName); err != nil {
			return roster, err
		}
		roster.Staff = append(roster.Staff, s)
	}
	return roster, staffRows.Err()
}

// LoadTeachers returns the teacher directory keyed by staff id
func (r *Repository) LoadTeachers(ctx context.Context) (map[string]report.Teacher, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, display_name FROM staff WHERE is_teacher = 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make(map[string]report.Teacher)
	for rows.Next() {
		var t report.Teacher
		if err := rows.Scan(&t.ID, &t.DisplayName); err != nil {
			return nil, err
		}
		teachers[t.ID] = t
	}
	return teachers, rows.Err()
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
