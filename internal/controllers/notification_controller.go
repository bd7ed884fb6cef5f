package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yultimate_hub/internal/middleware"
)

// ListNotifications returns the caller's notifications, newest first.
// Query: limit (default 50), offset.
func (h *Handler) ListNotifications(c *gin.Context) {
	page, err := h.Notifier.List(c.Request.Context(), middleware.CurrentUserID(c), intQuery(c, "limit"), intQuery(c, "offset"))
	if err != nil {
		respondError(c, err, "could not fetch notifications")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	n, err := h.Notifier.UnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "could not count notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": n})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	n, err := h.Notifier.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err, "could not update notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notification": n})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	updated, err := h.Notifier.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err, "could not update notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updatedCount": updated})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Notifier.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err, "could not delete notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
