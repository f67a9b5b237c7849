package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the token administration routes
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, middleware *Middleware) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireToken(ScopeAdmin))
	{
		admin.GET("/tokens", handler.ListTokens)
		admin.POST("/tokens", handler.CreateToken)
		admin.GET("/tokens/:id", handler.GetToken)
		admin.DELETE("/tokens/:id", handler.RevokeToken)
	}
}
