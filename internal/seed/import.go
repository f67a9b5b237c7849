package seed

import (
	"LunchAPI/internal/clock"
	"context"
	"database/sql"
)

// Counts reports what an import wrote
type Counts struct {
	Grades      int
	Times       int
	Staff       int
	Students    int
	Assignments int
}

// Import writes the fixture in one transaction. The school year's grades,
// times, enrolment and assignments are replaced; staff and students are
// upserted.
func Import(ctx context.Context, db *sql.DB, f *Fixture) (Counts, error) {
	var n Counts
	if err := f.Validate(); err != nil {
		return n, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return n, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	year := f.SchoolYear
	name := year.Name
	if name == "" {
		name = year.ID
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO school_years (id, name, start_date, end_date) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, start_date = excluded.start_date, end_date = excluded.end_date`,
		year.ID, name, year.StartDate, year.EndDate); err != nil {
		return n, err
	}

	for _, table := range []string{"grades", "school_wide_times", "grade_times", "teacher_times", "student_assignments", "school_year_students"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE school_year_id = ?", year.ID); err != nil {
			return n, err
		}
	}

	for i, g := range f.Grades {
		gradeName := g.Name
		if gradeName == "" {
			gradeName = g.Code
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO grades (school_year_id, code, name, position, classroom_governed) VALUES (?, ?, ?, ?, ?)`,
			year.ID, g.Code, gradeName, i, g.Classroom); err != nil {
			return n, err
		}
		n.Grades++
	}

	for dayName, times := range f.SchoolWideTimes {
		day, err := clock.ParseWeekday(dayName)
		if err != nil {
			return n, err
		}
		for _, t := range clock.NewSet(times...) {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO school_wide_times (school_year_id, day_of_week, lunch_time) VALUES (?, ?, ?)`,
				year.ID, int(day), t); err != nil {
				return n, err
			}
			n.Times++
		}
	}

	for _, gt := range f.GradeTimes {
		written, err := insertDayTimes(ctx, tx, `
			INSERT OR IGNORE INTO grade_times (school_year_id, grade_code, day_of_week, lunch_time) VALUES (?, ?, ?, ?)`,
			year.ID, gt.Grade, gt)
		if err != nil {
			return n, err
		}
		n.Times += written
	}
	for _, tt := range f.TeacherTimes {
		written, err := insertDayTimes(ctx, tx, `
			INSERT OR IGNORE INTO teacher_times (school_year_id, teacher_id, day_of_week, lunch_time) VALUES (?, ?, ?, ?)`,
			year.ID, tt.Teacher, tt)
		if err != nil {
			return n, err
		}
		n.Times += written
	}

	for _, s := range f.Staff {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO staff (id, display_name, is_teacher) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name, is_teacher = excluded.is_teacher`,
			s.ID, s.DisplayName, s.Teacher); err != nil {
			return n, err
		}
		n.Staff++
	}

	for _, s := range f.Students {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO students (id, first_name, last_name) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET first_name = excluded.first_name, last_name = excluded.last_name`,
			s.ID, s.FirstName, s.LastName); err != nil {
			return n, err
		}
		n.Students++

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO school_year_students (school_year_id, student_id) VALUES (?, ?)`,
			year.ID, s.ID); err != nil {
			return n, err
		}

		for _, a := range s.Assignments {
			days, err := ParseDays(a.Days)
			if err != nil {
				return n, err
			}
			for _, d := range days {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO student_assignments (school_year_id, student_id, day_of_week, grade_code, teacher_id)
					VALUES (?, ?, ?, ?, ?)`,
					year.ID, s.ID, int(d), a.Grade, sql.NullString{String: a.Teacher, Valid: a.Teacher != ""}); err != nil {
					return n, err
				}
				n.Assignments++
			}
		}
	}

	return n, tx.Commit()
}

func insertDayTimes(ctx context.Context, tx *sql.Tx, query, yearID, key string, dt DayTimes) (int, error) {
	days, err := ParseDays(dt.Days)
	if err != nil {
		return 0, err
	}
	written := 0
	for _, d := range days {
		for _, t := range clock.NewSet(dt.Times...) {
			if _, err := tx.ExecContext(ctx, query, yearID, key, int(d), t); err != nil {
				return written, err
			}
			written++
		}
	}
	return written, nil
}
