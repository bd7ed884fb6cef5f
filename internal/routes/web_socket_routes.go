package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

// WebSocketRoutes authenticate with ?token= inside the handler.
func WebSocketRoutes(r *gin.Engine, h *controllers.Handler) {
	wsRoutes := r.Group("/ws")
	{
		wsRoutes.GET("/notifications", h.NotificationsWebSocket)
	}
}
