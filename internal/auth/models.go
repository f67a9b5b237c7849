package auth

import (
	"database/sql"
	"time"
)

// Scope names the part of the API a token may call
type Scope string

const (
	ScopeMenus      Scope = "menus"
	ScopeOrders     Scope = "orders"
	ScopeLunchtimes Scope = "lunchtimes"
	ScopeReports    Scope = "reports"
	// ScopeAdmin grants every other scope as well
	ScopeAdmin Scope = "admin"
)

// Token represents an API token (never includes the raw value)
type Token struct {
	ID         int64      `json:"id"`
	Label      string     `json:"label"`
	Scopes     []Scope    `json:"scopes"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	RevokedAt  *time.Time `json:"revokedAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// TokenWithRaw is returned only once, when the token is created
type TokenWithRaw struct {
	Token
	RawToken string `json:"token"`
}

// TokenCreateRequest is the body of POST /admin/tokens
type TokenCreateRequest struct {
	Label     string     `json:"label" binding:"required"`
	Scopes    []string   `json:"scopes" binding:"required,min=1"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Helper functions for nullable fields

func ScanNullableTime(n sql.NullTime) *time.Time {
	if n.Valid {
		return &n.Time
	}
	return nil
}
