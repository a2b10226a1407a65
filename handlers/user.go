package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

// UpdatePreferencesHandler replaces the caller's notification preferences.
func (h *AuthHandler) UpdatePreferencesHandler(c *gin.Context) {
	var prefs models.NotificationPreferences
	if !bindJSON(c, &prefs) {
		return
	}
	_, id := middleware.CurrentUser(c)
	u, err := h.Users.UpdatePreferences(c.Request.Context(), id, prefs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req models.FCMTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	_, id := middleware.CurrentUser(c)
	if err := h.Users.UpdateFCMToken(c.Request.Context(), id, req.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
