package routes

import (
	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/controllers"
)

func NotificationRoutes(api *gin.RouterGroup, h *controllers.Handler, g gates) {
	notifications := api.Group("/notifications")
	notifications.Use(g.authed)
	{
		notifications.GET("", h.ListNotifications)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/read-all", h.MarkAllNotificationsRead)
		notifications.POST("/:id/read", h.MarkNotificationRead)
		notifications.PUT("/read-all", h.MarkAllNotificationsRead)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}
