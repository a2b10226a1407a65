package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidRequest, err.Error())
		c.Abort()
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidRequest, err.Error())
		c.Abort()
		return false
	}
	return true
}

// scopedTenant returns the tenant id a listing must be limited to, or "" for admins.
func scopedTenant(c *gin.Context) string {
	role, id := middleware.CurrentUser(c)
	if role == models.RoleAdmin {
		return ""
	}
	return id
}
