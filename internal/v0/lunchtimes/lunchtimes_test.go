package lunchtimes

import (
	"LunchAPI/internal/clock"
	"LunchAPI/internal/databases"
	"LunchAPI/internal/databases/dbtest"
	"LunchAPI/internal/lunchtime"
	"LunchAPI/internal/report"
	"LunchAPI/internal/seed"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yearYAML = `
schoolYear: {id: "2026-2027"}
grades:
  - {code: K, name: Kindergarten, classroom: true}
  - {code: "5", name: Grade 5}
schoolWideTimes:
  MONDAY: ["11:00", "11:30", "12:00"]
  TUESDAY: ["11:00", "11:30"]
gradeTimes:
  - grade: "5"
    days: [MON, TUE, WED, THU, FRI]
    times: ["12:00", "11:30"]
  - grade: "5"
    days: [TUE]
    times: ["12:45"]
teacherTimes:
  - teacher: t-adams
    times: ["11:00"]
staff:
  - {id: t-adams, displayName: Ms. Adams, teacher: true}
  - {id: st-cook, displayName: Chef Cook}
students:
  - id: s-ada
    firstName: Ada
    lastName: Lovelace
    assignments: [{grade: "5"}]
  - id: s-kim
    firstName: Kim
    lastName: Park
    assignments: [{grade: K, teacher: t-adams}]
  - id: s-new
    firstName: New
    lastName: Kid
    assignments: [{grade: K, days: [MON, TUE]}]
  - id: s-zoe
    firstName: Zoe
    lastName: Quinn
`

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db := dbtest.Open(t, databases.Lunch)
	f, err := seed.Parse([]byte(yearYAML))
	require.NoError(t, err)
	_, err = seed.Import(context.Background(), db, f)
	require.NoError(t, err)
	return NewRepository(db)
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cfg, err := repo.LoadConfig(ctx, "2026-2027")
	require.NoError(t, err)

	assert.True(t, cfg.IsClassroomGrade("K"))
	assert.False(t, cfg.IsClassroomGrade("5"))
	assert.Equal(t, []lunchtime.Grade{{Code: "K", Name: "Kindergarten"}, {Code: "5", Name: "Grade 5"}}, cfg.Grades)
	assert.Equal(t, []string{"11:00", "11:30", "12:00"}, cfg.SchoolWideTimes[time.Monday].Strings())
	assert.Equal(t, []string{"11:30", "12:00", "12:45"}, cfg.GradeTimes[lunchtime.GradeDay{Grade: "5", Day: time.Tuesday}].Strings())
	assert.Len(t, cfg.Assignments, 12)

	got := lunchtime.Resolve(cfg, "s-kim", time.Friday)
	assert.True(t, got.Determined)
	assert.Equal(t, clock.MustParse("11:00"), got.Time)

	_, err = repo.LoadConfig(ctx, "1999-2000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadRosterAndTeachers(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	roster, err := repo.LoadRoster(ctx)
	require.NoError(t, err)
	assert.Len(t, roster.Students, 4)
	assert.Len(t, roster.Staff, 2)

	teachers, err := repo.LoadTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "Ms. Adams", teachers["t-adams"].DisplayName)
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"errors"`
}

func get(t *testing.T, path string) (int, envelope) {
	t.Helper()
	return serve(t, newTestRepo(t), path)
}

func serve(t *testing.T, repo *Repository, path string) (int, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(repo)
	router := gin.New()
	g := router.Group("/lunchtimes/:year")
	g.GET("/students/:id", h.GetStudentWeek)
	g.GET("/undetermined", h.GetUndetermined)
	g.GET("/candidates", h.GetCandidates)
	g.GET("/violations", h.GetViolations)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestGetStudentWeek(t *testing.T) {
	code, env := get(t, "/lunchtimes/2026-2027/students/s-new")
	require.Equal(t, http.StatusOK, code, env.Errors)

	var week StudentWeek
	require.NoError(t, json.Unmarshal(env.Data, &week))
	assert.Equal(t, "New Kid", week.DisplayName)
	require.Len(t, week.Days, 5)
	assert.Equal(t, "MONDAY", week.Days[0].Day)
	assert.False(t, week.Days[0].Determined)
	assert.Nil(t, week.Days[0].Time)
	assert.Equal(t, lunchtime.ReasonNoTeacher, week.Days[0].Reason)
	assert.Equal(t, lunchtime.ReasonNoAssignment, week.Days[4].Reason)

	code, env = get(t, "/lunchtimes/2026-2027/students/s-ada")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &week))
	require.NotNil(t, week.Days[0].Time)
	assert.Equal(t, "11:30", week.Days[0].Time.String())

	code, _ = get(t, "/lunchtimes/2026-2027/students/s-ghost")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, "/lunchtimes/1999-2000/students/s-ada")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetUndetermined(t *testing.T) {
	code, env := get(t, "/lunchtimes/2026-2027/undetermined")
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Students []FlaggedStudent `json:"students"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, []FlaggedStudent{
		{StudentID: "s-new", DisplayName: "New Kid"},
		{StudentID: "s-zoe", DisplayName: "Zoe Quinn"},
	}, body.Students)
}

func TestGetCandidates(t *testing.T) {
	code, env := get(t, "/lunchtimes/2026-2027/candidates?day=tue")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"day":"TUESDAY","times":["11:00","11:30"]}`, string(env.Data))

	code, env = get(t, "/lunchtimes/2026-2027/candidates?day=friday")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"day":"FRIDAY","times":[]}`, string(env.Data))

	code, _ = get(t, "/lunchtimes/2026-2027/candidates?day=someday")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetViolations(t *testing.T) {
	code, env := get(t, "/lunchtimes/2026-2027/violations")
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Violations []ViolationResponse `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))

	// The Tuesday pool only has 11:00 and 11:30.
	var tuesday []ViolationResponse
	for _, v := range body.Violations {
		if v.Day == "TUESDAY" {
			tuesday = append(tuesday, v)
		}
	}
	assert.Equal(t, []ViolationResponse{
		{Grade: "5", Day: "TUESDAY", Time: "12:00"},
		{Grade: "5", Day: "TUESDAY", Time: "12:45"},
	}, tuesday)
}

const previousYearYAML = `
schoolYear: {id: "2025-2026"}
grades:
  - {code: "5", name: Grade 5}
gradeTimes:
  - grade: "5"
    times: ["11:30"]
students:
  - id: s-graduated
    firstName: Grace
    lastName: Hopper
    assignments: [{grade: "5"}]
  - id: s-ada
    firstName: Ada
    lastName: Lovelace
    assignments: [{grade: "5"}]
`

// newTwoYearRepo imports 2025-2026 and then 2026-2027. s-graduated is only
// enrolled in the first year; s-ada is enrolled in both.
func newTwoYearRepo(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	db := dbtest.Open(t, databases.Lunch)
	for _, doc := range []string{previousYearYAML, yearYAML} {
		f, err := seed.Parse([]byte(doc))
		require.NoError(t, err)
		_, err = seed.Import(ctx, db, f)
		require.NoError(t, err)
	}
	return NewRepository(db)
}

func studentIDs(roster report.Roster) []string {
	var ids []string
	for _, s := range roster.Students {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestLoadYearRoster(t *testing.T) {
	ctx := context.Background()
	repo := newTwoYearRepo(t)

	current, err := repo.LoadYearRoster(ctx, "2026-2027")
	require.NoError(t, err)
	assert.Equal(t, []string{"s-ada", "s-kim", "s-new", "s-zoe"}, studentIDs(current))
	assert.Len(t, current.Staff, 2)

	previous, err := repo.LoadYearRoster(ctx, "2025-2026")
	require.NoError(t, err)
	assert.Equal(t, []string{"s-ada", "s-graduated"}, studentIDs(previous))

	all, err := repo.LoadRoster(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Students, 5)
}

func TestUndeterminedIsScopedToTheYear(t *testing.T) {
	repo := newTwoYearRepo(t)

	code, env := serve(t, repo, "/lunchtimes/2026-2027/undetermined")
	require.Equal(t, http.StatusOK, code)
	var body struct {
		Students []FlaggedStudent `json:"students"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, []FlaggedStudent{
		{StudentID: "s-new", DisplayName: "New Kid"},
		{StudentID: "s-zoe", DisplayName: "Zoe Quinn"},
	}, body.Students)

	code, env = serve(t, repo, "/lunchtimes/2025-2026/undetermined")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Empty(t, body.Students)

	code, _ = serve(t, repo, "/lunchtimes/2026-2027/students/s-graduated")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = serve(t, repo, "/lunchtimes/2025-2026/students/s-graduated")
	assert.Equal(t, http.StatusOK, code)
}
