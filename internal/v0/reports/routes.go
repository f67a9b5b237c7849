package reports

import (
	"LunchAPI/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	reports := rg.Group("/reports")
	reports.Use(authMiddleware.RequireToken(auth.ScopeReports))
	{
		reports.GET("", h.GetReport)
	}
}
