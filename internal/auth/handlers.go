package auth

import (
	"LunchAPI/internal/logger"
	"LunchAPI/internal/v0/common"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler handles token administration endpoints
type Handler struct {
	tokenStore *TokenStore
}

// NewHandler creates a new auth handler
func NewHandler(tokenStore *TokenStore) *Handler {
	return &Handler{tokenStore: tokenStore}
}

// ListTokens returns all tokens
// GET /admin/tokens
func (h *Handler) ListTokens(c *gin.Context) {
	tokens, err := h.tokenStore.ListTokens(c.Request.Context())
	if err != nil {
		logger.Error("failed to list tokens", "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to list tokens")
		return
	}
	if tokens == nil {
		tokens = []Token{}
	}

	common.Success(c, http.StatusOK, gin.H{
		"tokens": tokens,
	})
}

// GetToken returns one token
// GET /admin/tokens/:id
func (h *Handler) GetToken(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid token ID")
		return
	}

	token, err := h.tokenStore.GetToken(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		common.Fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Error("failed to load token", "id", id, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to load token")
		return
	}

	common.Success(c, http.StatusOK, token)
}

// CreateToken issues a new token
// POST /admin/tokens
func (h *Handler) CreateToken(c *gin.Context) {
	var req TokenCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.tokenStore.CreateToken(c.Request.Context(), req.Label, req.Scopes, req.ExpiresAt)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	logger.Info("token issued", "id", token.ID, "label", token.Label, "scopes", token.Scopes)

	common.Success(c, http.StatusCreated, gin.H{
		"token":   token.RawToken,
		"details": token.Token,
		"message": "Token created. Save this token now - it will not be shown again.",
	})
}

// RevokeToken revokes a token
// DELETE /admin/tokens/:id
func (h *Handler) RevokeToken(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, "invalid token ID")
		return
	}

	err = h.tokenStore.RevokeToken(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		common.Fail(c, http.StatusNotFound, "token not found or already revoked")
		return
	}
	if err != nil {
		logger.Error("failed to revoke token", "id", id, "err", err)
		common.Fail(c, http.StatusInternalServerError, "failed to revoke token")
		return
	}
	logger.Info("token revoked", "id", id)

	common.Success(c, http.StatusOK, gin.H{
		"message": "token revoked",
	})
}
