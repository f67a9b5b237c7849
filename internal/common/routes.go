package common

import "github.com/gin-gonic/gin"

func RegisterRoutes(rg *gin.RouterGroup, h *StatusHandler) {
	rg.GET("/status", h.Status)
}
