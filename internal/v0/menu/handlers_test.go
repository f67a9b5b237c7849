package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"errors"`
}

func newTestRouter(t *testing.T, now time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(newTestRepo(t), time.UTC)
	h.now = func() time.Time { return now }

	router := gin.New()
	menus := router.Group("/api/v0/menus")
	menus.POST("", h.PostMenu)
	menus.GET("", h.GetMenu)
	menus.GET("/window-rules", h.GetWindowRules)
	menus.PUT("/window-rules", h.PutWindowRules)
	return router
}

func call(t *testing.T, router *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

const rulesBody = `{
	"start": {"count": 2, "unit": "WEEKS", "anchor": "WEEK_OF_SERVICE", "clockTime": "08:00"},
	"end": {"count": 1, "unit": "DAYS", "anchor": "DAY_OF_SERVICE", "clockTime": "10:00"}
}`

func TestPostMenuWithDefaultRules(t *testing.T) {
	now := time.Date(2026, 10, 5, 12, 0, 0, 0, time.UTC)
	router := newTestRouter(t, now)

	code, _ := call(t, router, http.MethodPost, "/api/v0/menus", `{"serviceDate":"2026-10-14","items":[{"name":"Pasta"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, router, http.MethodPut, "/api/v0/menus/window-rules", rulesBody)
	require.Equal(t, http.StatusOK, code)

	code, env := call(t, router, http.MethodPost, "/api/v0/menus", `{"serviceDate":"2026-10-14","items":[{"name":"Pasta"},{"name":"Soup"}]}`)
	require.Equal(t, http.StatusCreated, code, env.Errors)

	var got MenuResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "2026-10-14", got.ServiceDate)
	assert.Equal(t, time.Date(2026, 9, 28, 8, 0, 0, 0, time.UTC), got.Window.OrderStart.UTC())
	assert.Equal(t, time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC), got.Window.OrderEnd.UTC())
	assert.True(t, got.Accepting)
	assert.True(t, got.Open)
	assert.Len(t, got.Items, 2)

	code, env = call(t, router, http.MethodGet, "/api/v0/menus?date=2026-10-14", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.True(t, got.Open)
}

func TestPostMenuWithExplicitRules(t *testing.T) {
	router := newTestRouter(t, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	// The end rule falls before the start rule: stored, but never open.
	body := `{
		"serviceDate": "2026-10-14",
		"items": [{"name": "Pasta"}],
		"startRule": {"count": 0, "unit": "DAYS", "anchor": "DAY_OF_SERVICE", "clockTime": "10:00"},
		"endRule": {"count": 1, "unit": "WEEKS", "anchor": "WEEK_OF_SERVICE", "clockTime": "10:00"}
	}`
	code, env := call(t, router, http.MethodPost, "/api/v0/menus", body)
	require.Equal(t, http.StatusCreated, code, env.Errors)

	var got MenuResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.Accepting)
	assert.False(t, got.Open)
}

func TestPostMenuValidation(t *testing.T) {
	router := newTestRouter(t, time.Now())

	tests := []struct {
		name string
		body string
	}{
		{name: "bad json", body: `{`},
		{name: "no items", body: `{"serviceDate":"2026-10-14","items":[]}`},
		{name: "bad date", body: `{"serviceDate":"14/10/2026","items":[{"name":"Pasta"}]}`},
		{name: "bad rule", body: `{"serviceDate":"2026-10-14","items":[{"name":"Pasta"}],
			"startRule":{"count":-1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"},
			"endRule":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"}}`},
		{name: "bad clock time", body: `{"serviceDate":"2026-10-14","items":[{"name":"Pasta"}],
			"startRule":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"8am"},
			"endRule":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"}}`},
		{name: "missing clock time", body: `{"serviceDate":"2026-10-14","items":[{"name":"Pasta"}],
			"startRule":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE"},
			"endRule":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, router, http.MethodPost, "/api/v0/menus", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, env.Errors)
		})
	}
}

func TestGetMenuErrors(t *testing.T) {
	router := newTestRouter(t, time.Now())

	code, _ := call(t, router, http.MethodGet, "/api/v0/menus?date=2026-10-14", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, router, http.MethodGet, "/api/v0/menus", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, router, http.MethodGet, "/api/v0/menus/window-rules", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = call(t, router, http.MethodPut, "/api/v0/menus/window-rules",
		`{"start":{"count":1,"unit":"MONTHS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"},"end":{"count":1,"unit":"DAYS","anchor":"DAY_OF_SERVICE","clockTime":"08:00"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPutWindowRules(t *testing.T) {
	router := newTestRouter(t, time.Now())

	code, env := call(t, router, http.MethodPut, "/api/v0/menus/window-rules", `{
		"start": {"count": 2, "unit": "weeks", "anchor": "week_of_service", "clockTime": "08:00"},
		"end": {"count": 1, "unit": "Days", "anchor": "day_of_service", "clockTime": "10:00"}
	}`)
	require.Equal(t, http.StatusOK, code, env.Errors)

	var got WindowRules
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "WEEKS", string(got.Start.Unit))
	assert.Equal(t, "DAY_OF_SERVICE", string(got.End.Anchor))

	tests := []struct {
		name string
		body string
	}{
		{name: "missing clock time", body: `{
			"start": {"count": 2, "unit": "WEEKS", "anchor": "WEEK_OF_SERVICE"},
			"end": {"count": 1, "unit": "DAYS", "anchor": "DAY_OF_SERVICE", "clockTime": "10:00"}}`},
		{name: "missing end rule", body: `{
			"start": {"count": 2, "unit": "WEEKS", "anchor": "WEEK_OF_SERVICE", "clockTime": "08:00"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := call(t, router, http.MethodPut, "/api/v0/menus/window-rules", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, env.Errors)
		})
	}
}
