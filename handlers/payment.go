package handlers

import (
	"encoding/json"
	"net/http"

	"rentflow/middleware"
	"rentflow/models"
	"rentflow/services/payment"
	"rentflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// maxSlipBytes caps a slip image upload.
const maxSlipBytes = 10 << 20

type PaymentHandler struct {
	Payments payment.PaymentService
}

func NewPaymentHandler(ps payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: ps}
}

type paymentQuery struct {
	Status models.PaymentStatus `form:"status" binding:"omitempty,oneof=pending verified rejected"`
	BillID string               `form:"billId"`
}

// SubmitPaymentHandler accepts a multipart upload: "slip" file, "billId", and
// the client-side extraction results as JSON strings in "ocrData" and "qrData".
func (h *PaymentHandler) SubmitPaymentHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSlipBytes+1<<20)

	req := models.SubmitPaymentRequest{BillID: c.PostForm("billId")}
	if raw := c.PostForm("ocrData"); raw != "" {
		req.OCRData = &models.OCRData{}
		if err := json.Unmarshal([]byte(raw), req.OCRData); err != nil {
			utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidRequest, "ocrData: "+err.Error())
			return
		}
	}
	if raw := c.PostForm("qrData"); raw != "" {
		req.QRData = &models.QRData{}
		if err := json.Unmarshal([]byte(raw), req.QRData); err != nil {
			utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidRequest, "qrData: "+err.Error())
			return
		}
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.MsgInvalidRequest, err.Error())
		return
	}

	fileHeader, err := c.FormFile("slip")
	if err != nil {
		utils.RespondError(c, utils.NewBadRequest(utils.MsgSlipRequired))
		return
	}
	if fileHeader.Size > maxSlipBytes {
		utils.RespondError(c, utils.NewBadRequest(utils.MsgInvalidRequest))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, utils.NewInternal(err))
		return
	}
	defer f.Close()

	_, tenantID := middleware.CurrentUser(c)
	p, err := h.Payments.Submit(c.Request.Context(), tenantID, req, payment.Slip{Reader: f, Filename: fileHeader.Filename})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	var q paymentQuery
	if !bindQuery(c, &q) {
		return
	}
	payments, err := h.Payments.List(c.Request.Context(), models.PaymentFilter{
		TenantID: scopedTenant(c),
		BillID:   q.BillID,
		Status:   q.Status,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	role, userID := middleware.CurrentUser(c)
	p, err := h.Payments.Get(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// VerificationHandler returns the advisory amount comparison for a payment.
func (h *PaymentHandler) VerificationHandler(c *gin.Context) {
	role, userID := middleware.CurrentUser(c)
	check, err := h.Payments.Verification(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *PaymentHandler) UpdateOCRHandler(c *gin.Context) {
	var req models.UpdateOCRRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Payments.UpdateOCR(c.Request.Context(), c.Param("id"), *req.OCRData)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) ApproveHandler(c *gin.Context) {
	_, adminID := middleware.CurrentUser(c)
	res, err := h.Payments.Approve(c.Request.Context(), c.Param("id"), adminID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) RejectHandler(c *gin.Context) {
	var req models.RejectPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	_, adminID := middleware.CurrentUser(c)
	p, err := h.Payments.Reject(c.Request.Context(), c.Param("id"), adminID, req.Reason)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
