package handlers

import (
	"net/http"

	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/services/room"
	"rentflow/services/user"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

// maxAgreementBytes caps a rental agreement upload.
const maxAgreementBytes = 20 << 20

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Rooms         room.RoomService
	Users         user.UserService
	Notifications notification.NotificationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(rs room.RoomService, us user.UserService, ns notification.NotificationService) *AdminHandler {
	return &AdminHandler{Rooms: rs, Users: us, Notifications: ns}
}

type roomQuery struct {
	Status models.RoomStatus `form:"status" binding:"omitempty,oneof=available occupied maintenance"`
}

func (h *AdminHandler) ListRoomsHandler(c *gin.Context) {
	var q roomQuery
	if !bindQuery(c, &q) {
		return
	}
	rooms, err := h.Rooms.List(c.Request.Context(), q.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *AdminHandler) GetRoomHandler(c *gin.Context) {
	r, err := h.Rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AdminHandler) CreateRoomHandler(c *gin.Context) {
	var req models.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Rooms.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *AdminHandler) UpdateRoomHandler(c *gin.Context) {
	var req models.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Rooms.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AdminHandler) DeleteRoomHandler(c *gin.Context) {
	if err := h.Rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) AssignTenantHandler(c *gin.Context) {
	var req models.AssignTenantRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.Rooms.AssignTenant(c.Request.Context(), c.Param("id"), req.TenantID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AdminHandler) UnassignTenantHandler(c *gin.Context) {
	r, err := h.Rooms.UnassignTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UploadAgreementHandler stores the rental agreement sent as multipart field "file".
func (h *AdminHandler) UploadAgreementHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.NewBadRequest(utils.MsgFileRequired))
		return
	}
	if fileHeader.Size > maxAgreementBytes {
		utils.RespondError(c, utils.NewBadRequest(utils.MsgInvalidRequest))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, utils.NewInternal(err))
		return
	}
	defer f.Close()

	r, err := h.Rooms.UploadAgreement(c.Request.Context(), c.Param("id"), f, fileHeader.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// AgreementURLHandler returns a short-lived signed link to the agreement.
func (h *AdminHandler) AgreementURLHandler(c *gin.Context) {
	url, err := h.Rooms.AgreementURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ListTenantsHandler returns all tenants (with sensitive fields excluded).
func (h *AdminHandler) ListTenantsHandler(c *gin.Context) {
	tenants, err := h.Users.ListTenants(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (h *AdminHandler) GetTemplateHandler(c *gin.Context) {
	tpl, err := h.Notifications.GetTemplate(c.Request.Context(), models.NotificationType(c.Param("type")))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *AdminHandler) SaveTemplateHandler(c *gin.Context) {
	var tpl models.NotificationTemplate
	if !bindJSON(c, &tpl) {
		return
	}
	tpl.Type = models.NotificationType(c.Param("type"))
	if err := h.Notifications.SaveTemplate(c.Request.Context(), &tpl); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}
