package lunchtimes

import (
	"LunchAPI/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	lunchtimes := rg.Group("/lunchtimes/:year")
	lunchtimes.Use(authMiddleware.RequireToken(auth.ScopeLunchtimes))
	{
		lunchtimes.GET("/students/:id", h.GetStudentWeek)
		lunchtimes.GET("/undetermined", h.GetUndetermined)
		lunchtimes.GET("/candidates", h.GetCandidates)
		lunchtimes.GET("/violations", h.GetViolations)
	}
}
