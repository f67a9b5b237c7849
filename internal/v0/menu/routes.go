package menu

import (
	"LunchAPI/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	menus := rg.Group("/menus")
	menus.Use(authMiddleware.RequireToken(auth.ScopeMenus))
	{
		menus.POST("", h.PostMenu)
		menus.GET("", h.GetMenu)
		menus.GET("/window-rules", h.GetWindowRules)
		menus.PUT("/window-rules", h.PutWindowRules)
	}
}
