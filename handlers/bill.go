package handlers

import (
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/services/billing"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
)

type BillHandler struct {
	Bills billing.BillingService
}

func NewBillHandler(bs billing.BillingService) *BillHandler {
	return &BillHandler{Bills: bs}
}

type billQuery struct {
	Status models.BillStatus `form:"status" binding:"omitempty,oneof=pending paid verified overdue"`
	RoomID string            `form:"roomId"`
	Month  int               `form:"month" binding:"omitempty,min=1,max=12"`
	Year   int               `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// ListBillsHandler lists the caller's bills, or every bill for admins.
func (h *BillHandler) ListBillsHandler(c *gin.Context) {
	var q billQuery
	if !bindQuery(c, &q) {
		return
	}
	bills, err := h.Bills.List(c.Request.Context(), models.BillFilter{
		TenantID: scopedTenant(c),
		RoomID:   q.RoomID,
		Status:   q.Status,
		Month:    q.Month,
		Year:     q.Year,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) GetBillHandler(c *gin.Context) {
	role, userID := middleware.CurrentUser(c)
	bill, err := h.Bills.Get(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillHandler) GenerateBillHandler(c *gin.Context) {
	var req models.GenerateBillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := h.Bills.Generate(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillHandler) DeleteBillHandler(c *gin.Context) {
	if err := h.Bills.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
