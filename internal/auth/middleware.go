package auth

import (
	"LunchAPI/internal/logger"
	"LunchAPI/internal/v0/common"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextKeyToken = "auth_token"

	// Headers
	HeaderAuthorization = "Authorization"
)

// Middleware provides bearer token authentication
type Middleware struct {
	tokenStore *TokenStore
	usage      *UsageTracker
}

// NewMiddleware creates a new middleware instance. usage may be nil.
func NewMiddleware(tokenStore *TokenStore, usage *UsageTracker) *Middleware {
	return &Middleware{
		tokenStore: tokenStore,
		usage:      usage,
	}
}

// RequireToken returns a middleware that validates bearer tokens and checks
// that the token carries the scope (or the admin scope)
func (m *Middleware) RequireToken(scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader(HeaderAuthorization)
		if authHeader == "" {
			common.Abort(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// 2. Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			common.Abort(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}
		rawToken := strings.TrimSpace(parts[1])

		// 3. Validate token
		token, err := m.tokenStore.ValidateToken(c.Request.Context(), rawToken)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenRevoked) || errors.Is(err, ErrTokenExpired) {
				common.Abort(c, http.StatusUnauthorized, err.Error())
				return
			}
			logger.Error("token validation failed", "err", err)
			common.Abort(c, http.StatusInternalServerError, "failed to validate token")
			return
		}

		// 4. Check scope
		if !HasScope(token.Scopes, scope) {
			common.Abort(c, http.StatusForbidden, fmt.Sprintf("token does not have the '%s' scope", scope))
			return
		}

		// 5. Record usage (non-blocking)
		if m.usage != nil {
			m.usage.RecordRequest(token.ID)
		}

		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// GetTokenFromContext retrieves the validated token from the context
func GetTokenFromContext(c *gin.Context) *Token {
	tokenVal, exists := c.Get(ContextKeyToken)
	if !exists {
		return nil
	}
	token, ok := tokenVal.(*Token)
	if !ok {
		return nil
	}
	return token
}
