package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/services/maintenance"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	Tickets maintenance.MaintenanceService
}

func NewMaintenanceHandler(ms maintenance.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{Tickets: ms}
}

type maintenanceQuery struct {
	Status models.MaintenanceStatus `form:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	RoomID string                   `form:"roomId"`
}

func (h *MaintenanceHandler) CreateHandler(c *gin.Context) {
	var req models.CreateMaintenanceRequest
	if !bindJSON(c, &req) {
		return
	}
	_, tenantID := middleware.CurrentUser(c)
	m, err := h.Tickets.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MaintenanceHandler) ListHandler(c *gin.Context) {
	var q maintenanceQuery
	if !bindQuery(c, &q) {
		return
	}
	list, err := h.Tickets.List(c.Request.Context(), models.MaintenanceFilter{
		TenantID: scopedTenant(c),
		RoomID:   q.RoomID,
		Status:   q.Status,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) GetHandler(c *gin.Context) {
	role, userID := middleware.CurrentUser(c)
	m, err := h.Tickets.Get(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaintenanceHandler) UpdateStatusHandler(c *gin.Context) {
	var req models.UpdateMaintenanceStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Tickets.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
