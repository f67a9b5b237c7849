package auth

import (
	"LunchAPI/internal/databases"
	"LunchAPI/internal/databases/dbtest"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *TokenStore {
	t.Helper()
	return NewTokenStore(NewRepository(dbtest.Open(t, databases.Auth)))
}

func TestGenerateToken(t *testing.T) {
	s := newTestStore(t)

	raw, hash, err := s.GenerateToken()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, TokenPrefix))
	assert.Equal(t, hashToken(raw), hash)
	assert.NotContains(t, hash, raw)

	other, _, err := s.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, other)
}

func TestCreateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateToken(ctx, "  kitchen tablet ", []string{"orders", "MENUS", "orders"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "kitchen tablet", created.Label)
	assert.Equal(t, []Scope{ScopeMenus, ScopeOrders}, created.Scopes)

	got, err := s.ValidateToken(ctx, created.RawToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []Scope{ScopeMenus, ScopeOrders}, got.Scopes)

	_, err = s.ValidateToken(ctx, TokenPrefix+"doesnotexist")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.ValidateToken(ctx, "Bearer nonsense")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateTokenRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		label     string
		scopes    []string
		expiresAt *time.Time
	}{
		{name: "empty label", label: " ", scopes: []string{"menus"}},
		{name: "no scopes", label: "x"},
		{name: "unknown scope", label: "x", scopes: []string{"payments"}},
		{name: "expiry in the past", label: "x", scopes: []string{"menus"}, expiresAt: &past},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateToken(ctx, tt.label, tt.scopes, tt.expiresAt)
			assert.Error(t, err)
		})
	}
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateToken(ctx, "report printer", []string{"reports"}, nil)
	require.NoError(t, err)

	require.NoError(t, s.RevokeToken(ctx, created.ID))
	assert.ErrorIs(t, s.RevokeToken(ctx, created.ID), ErrNotFound)
	assert.ErrorIs(t, s.RevokeToken(ctx, 9999), ErrNotFound)

	_, err = s.ValidateToken(ctx, created.RawToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	got, err := s.GetToken(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)
}

func TestExpiredToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	soon := time.Now().Add(time.Minute)
	created, err := s.CreateToken(ctx, "temp", []string{"menus"}, &soon)
	require.NoError(t, err)

	s.now = func() time.Time { return soon.Add(time.Second) }
	_, err = s.ValidateToken(ctx, created.RawToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestListTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tokens, err := s.ListTokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = s.CreateToken(ctx, "first", []string{"menus"}, nil)
	require.NoError(t, err)
	_, err = s.CreateToken(ctx, "second", []string{"admin"}, nil)
	require.NoError(t, err)

	tokens, err = s.ListTokens(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "second", tokens[0].Label)
	assert.Equal(t, []Scope{ScopeAdmin}, tokens[0].Scopes)

	_, err = s.GetToken(ctx, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsageTrackerRecordsLastUse(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateToken(ctx, "kiosk", []string{"orders"}, nil)
	require.NoError(t, err)

	tracker := NewUsageTracker(s.repo)
	tracker.Start(ctx)
	tracker.RecordRequest(created.ID)
	tracker.Stop()
	tracker.Stop()

	got, err := s.GetToken(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastUsedAt)
}

func TestScopes(t *testing.T) {
	scopes, err := ParseScopes([]string{"reports", "menus"})
	require.NoError(t, err)
	assert.Equal(t, []Scope{ScopeMenus, ScopeReports}, scopes)

	assert.True(t, HasScope(scopes, ScopeReports))
	assert.False(t, HasScope(scopes, ScopeOrders))
	assert.True(t, HasScope([]Scope{ScopeAdmin}, ScopeOrders))
	assert.False(t, HasScope(nil, ScopeMenus))

	_, err = ParseScope("everything")
	assert.Error(t, err)
}
