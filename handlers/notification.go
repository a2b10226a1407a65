package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/services/notification"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	Notifications notification.NotificationService
}

func NewNotificationHandler(ns notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: ns}
}

type notificationQuery struct {
	Unread bool `form:"unread"`
}

func (h *NotificationHandler) ListHandler(c *gin.Context) {
	var q notificationQuery
	if !bindQuery(c, &q) {
		return
	}
	_, userID := middleware.CurrentUser(c)
	list, err := h.Notifications.List(c.Request.Context(), userID, q.Unread)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) UnreadCountHandler(c *gin.Context) {
	_, userID := middleware.CurrentUser(c)
	n, err := h.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	_, userID := middleware.CurrentUser(c)
	if err := h.Notifications.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	_, userID := middleware.CurrentUser(c)
	n, err := h.Notifications.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
