package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"errors"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *TokenStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newTestStore(t)
	mw := NewMiddleware(store, nil)

	router := gin.New()
	api := router.Group("/api")
	RegisterRoutes(api, NewHandler(store), mw)
	api.GET("/menus", mw.RequireToken(ScopeMenus), func(c *gin.Context) {
		c.String(http.StatusOK, GetTokenFromContext(c).Label)
	})
	return router, store
}

func do(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireToken(t *testing.T) {
	router, store := newTestRouter(t)
	ctx := context.Background()

	menus, err := store.CreateToken(ctx, "menus only", []string{"menus"}, nil)
	require.NoError(t, err)
	orders, err := store.CreateToken(ctx, "orders only", []string{"orders"}, nil)
	require.NoError(t, err)
	admin, err := store.CreateToken(ctx, "admin", []string{"admin"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer " + TokenPrefix + "nope", want: http.StatusUnauthorized},
		{name: "wrong scope", header: "Bearer " + orders.RawToken, want: http.StatusForbidden},
		{name: "matching scope", header: "Bearer " + menus.RawToken, want: http.StatusOK},
		{name: "admin scope", header: "bearer " + admin.RawToken, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/menus", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)

			if tt.want != http.StatusOK {
				var env envelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
				assert.NotEmpty(t, env.Errors)
			}
		})
	}
}

func TestAdminTokenRoutes(t *testing.T) {
	router, store := newTestRouter(t)
	admin, err := store.CreateToken(context.Background(), "admin", []string{"admin"}, nil)
	require.NoError(t, err)

	w := do(router, http.MethodPost, "/api/admin/tokens", admin.RawToken, `{"label":"printer","scopes":["reports"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var created struct {
		Token   string `json:"token"`
		Details Token  `json:"details"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, strings.HasPrefix(created.Token, TokenPrefix))

	w = do(router, http.MethodGet, "/api/admin/tokens", admin.RawToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "printer")

	w = do(router, http.MethodPost, "/api/admin/tokens", admin.RawToken, `{"label":"bad","scopes":["payments"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/admin/tokens", created.Token, `{"label":"escalate","scopes":["admin"]}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	path := "/api/admin/tokens/" + strconv.FormatInt(created.Details.ID, 10)
	w = do(router, http.MethodGet, path, admin.RawToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodDelete, path, admin.RawToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(router, http.MethodDelete, path, admin.RawToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/admin/tokens/abc", admin.RawToken, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(router, http.MethodGet, "/api/admin/tokens/777", admin.RawToken, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
