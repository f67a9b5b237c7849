package orders

import (
	"LunchAPI/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	orders := rg.Group("/orders")
	orders.Use(authMiddleware.RequireToken(auth.ScopeOrders))
	{
		orders.POST("", h.PostOrder)
		orders.GET("", h.GetOrders)
	}
}
