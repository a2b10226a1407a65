package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/services/user"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and the caller's own profile.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LogoutHandler revokes the bearer token used for this request.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), middleware.BearerToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) MeHandler(c *gin.Context) {
	_, id := middleware.CurrentUser(c)
	u, err := h.Users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
