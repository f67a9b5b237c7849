package logger

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "lunch.log")

	require.NoError(t, Init(Config{Level: "debug", File: file}))
	require.NotNil(t, Logger)

	Debug("debug message")
	Info("info message", "key", "value")
	Warn("warning message")
	Error("error message")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "info message")
	assert.Contains(t, string(data), "key=value")
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: ""},
		{level: "info"},
		{level: "WARN"},
		{level: "error"},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := Init(Config{Level: tt.level})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLevelFiltersFileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lunch.log")
	require.NoError(t, Init(Config{Level: "warn", File: file}))

	Info("quiet")
	Warn("loud")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "quiet"))
	assert.Contains(t, string(data), "loud")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug message")
	Info("info message")
	Warn("warning message")
	Error("error message")
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	file := filepath.Join(t.TempDir(), "lunch.log")
	require.NoError(t, Init(Config{File: file}))

	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Body.String())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path=/ping")
	assert.Contains(t, string(data), "requestId=fixed-id")
}
