package seed

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/databases"
	"LunchAPI/internal/databases/dbtest"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/year.yaml")
	require.NoError(t, err)

	assert.Equal(t, "2026-2027", f.SchoolYear.ID)
	require.Len(t, f.Grades, 3)
	assert.True(t, f.Grades[0].Classroom)
	assert.Equal(t, []clock.Time{clock.MustParse("11:00"), clock.MustParse("11:30")}, f.SchoolWideTimes["FRIDAY"])
	require.Len(t, f.Students, 4)
	assert.Equal(t, "t-adams", f.Students[1].Assignments[0].Teacher)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "missing year", yaml: `grades: []`},
		{name: "unknown grade in times", yaml: `
schoolYear: {id: y}
gradeTimes:
  - grade: "9"
    times: ["11:00"]`},
		{name: "unknown teacher", yaml: `
schoolYear: {id: y}
grades: [{code: K, classroom: true}]
students:
  - id: s1
    assignments: [{grade: K, teacher: t-nobody}]`},
		{name: "two assignments on one day", yaml: `
schoolYear: {id: y}
grades: [{code: "1"}, {code: "2"}]
students:
  - id: s1
    assignments:
      - grade: "1"
      - grade: "2"
        days: [WED]`},
		{name: "bad weekday", yaml: `
schoolYear: {id: y}
schoolWideTimes:
  FUNDAY: ["11:00"]`},
		{name: "bad time", yaml: `
schoolYear: {id: y}
schoolWideTimes:
  MONDAY: ["lunch"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays(nil)
	require.NoError(t, err)
	assert.Equal(t, clock.SchoolDays, days)

	days, err = ParseDays([]string{"mon", "FRIDAY", "3"})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday, time.Wednesday}, days)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t, databases.Lunch)

	f, err := Load("testdata/year.yaml")
	require.NoError(t, err)

	n, err := Import(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, Counts{Grades: 3, Times: 14 + 5 + 8 + 5 + 1, Staff: 3, Students: 4, Assignments: 17}, n)

	var classroom int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM grades WHERE classroom_governed = 1`).Scan(&classroom))
	assert.Equal(t, 1, classroom)

	var teacher string
	require.NoError(t, db.QueryRow(`
		SELECT teacher_id FROM student_assignments
		WHERE student_id = 's-lee' AND day_of_week = ?`, int(time.Tuesday)).Scan(&teacher))
	assert.Equal(t, "t-baker", teacher)

	// Importing again replaces the year instead of duplicating it.
	again, err := Import(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, n, again)

	var assignments int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM student_assignments`).Scan(&assignments))
	assert.Equal(t, 17, assignments)

	var enrolled int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM school_year_students WHERE school_year_id = '2026-2027'`).Scan(&enrolled))
	assert.Equal(t, 4, enrolled)
}
