package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentflow/database"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/services/storage"
	"rentflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var payableStatuses = []models.BillStatus{models.BillPending, models.BillOverdue}

func (s *DefaultPaymentService) Submit(ctx context.Context, tenantID string, req models.SubmitPaymentRequest, slip Slip) (*models.Payment, error) {
	if slip.Reader == nil {
		return nil, utils.NewBadRequest(utils.MsgSlipRequired)
	}
	if err := ValidateOCR(req.OCRData); err != nil {
		return nil, err
	}
	qr, err := resolveQR(req.QRData)
	if err != nil {
		return nil, err
	}

	bill, err := s.bills.GetByID(ctx, req.BillID)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgBillNotFound)
	}
	if bill.TenantID != tenantID {
		return nil, utils.NewNotFound(utils.MsgBillNotFound)
	}
	if bill.Status != models.BillPending && bill.Status != models.BillOverdue {
		return nil, utils.NewConflict(utils.MsgBillNotPayable)
	}
	pending, err := s.payments.HasPending(ctx, bill.ID)
	if err != nil {
		return nil, fmt.Errorf("Submit: %w", err)
	}
	if pending {
		return nil, utils.NewConflict(utils.MsgPaymentPending)
	}

	if s.storage == nil {
		return nil, fmt.Errorf("Submit: storage not configured")
	}
	file, err := s.storage.UploadFile(ctx, slip.Reader, storage.FolderSlips, slip.Filename)
	if err != nil {
		return nil, fmt.Errorf("Submit: upload slip: %w", err)
	}

	now := s.now()
	p := &models.Payment{
		ID:        uuid.New().String(),
		BillID:    bill.ID,
		TenantID:  tenantID,
		SlipImage: file,
		OCRData:   req.OCRData,
		QRData:    qr,
		Status:    models.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, p); err != nil {
			return err
		}
		return s.bills.TransitionStatus(ctx, bill.ID, payableStatuses, models.BillPaid)
	})
	if err != nil {
		if delErr := s.storage.DeleteFile(ctx, file.PublicID); delErr != nil {
			s.logger.Warn("orphaned slip", zap.String("publicId", file.PublicID), zap.Error(delErr))
		}
		if errors.Is(err, database.ErrConflict) {
			return nil, utils.NewConflict(utils.MsgBillNotPayable)
		}
		return nil, fmt.Errorf("Submit: %w", err)
	}

	data := s.billData(ctx, bill)
	data.TenantName = s.userName(ctx, tenantID)
	if check := CheckAmount(bill.TotalAmount, p.OCRData, p.QRData); check.EffectiveAmount != nil {
		data.Amount = *check.EffectiveAmount
	}
	if _, err := s.notifier.NotifyRole(ctx, models.RoleAdmin, models.NotifPaymentSubmitted, bill.ID, data); err != nil {
		s.logger.Error("payment submitted notice failed", zap.String("paymentId", p.ID), zap.Error(err))
	}

	s.logger.Info("payment submitted", zap.String("paymentId", p.ID), zap.String("billId", bill.ID))
	return p, nil
}

// resolveQR fills amount and reference from a raw PromptPay payload.
func resolveQR(qr *models.QRData) (*models.QRData, error) {
	if qr == nil || strings.TrimSpace(qr.Raw) == "" {
		return qr, nil
	}
	parsed, err := ParsePromptPayQR(qr.Raw)
	if err != nil {
		return nil, utils.NewBadRequest(utils.MsgInvalidQR).Wrap(err)
	}
	if qr.Amount != nil {
		parsed.Amount = qr.Amount
	}
	if qr.Reference != "" {
		parsed.Reference = qr.Reference
	}
	if parsed.Amount != nil && !utils.IsSlipAmount(*parsed.Amount) {
		return nil, utils.NewBadRequest(utils.MsgInvalidAmount)
	}
	return parsed, nil
}

func (s *DefaultPaymentService) Get(ctx context.Context, id, userID string, role models.Role) (*models.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgPaymentNotFound)
	}
	if role != models.RoleAdmin && p.TenantID != userID {
		return nil, utils.NewNotFound(utils.MsgPaymentNotFound)
	}
	return p, nil
}

func (s *DefaultPaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	return s.payments.List(ctx, filter)
}

func (s *DefaultPaymentService) Verification(ctx context.Context, id, userID string, role models.Role) (*models.AmountCheck, error) {
	p, err := s.Get(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.GetByID(ctx, p.BillID)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgBillNotFound)
	}
	check := CheckAmount(bill.TotalAmount, p.OCRData, p.QRData)
	return &check, nil
}

func (s *DefaultPaymentService) UpdateOCR(ctx context.Context, id string, ocr models.OCRData) (*models.Payment, error) {
	if err := ValidateOCR(&ocr); err != nil {
		return nil, err
	}
	if err := s.payments.UpdateOCR(ctx, id, ocr); err != nil {
		return nil, s.transitionError(err)
	}
	return s.payments.GetByID(ctx, id)
}

// Approve verifies a pending payment and its bill. A mismatched or unreadable
// amount does not block approval; it is reported as a warning.
func (s *DefaultPaymentService) Approve(ctx context.Context, id, adminID string) (*models.VerificationResult, error) {
	p, err := s.pendingPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.GetByID(ctx, p.BillID)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgBillNotFound)
	}
	check := CheckAmount(bill.TotalAmount, p.OCRData, p.QRData)

	now := s.now()
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Resolve(ctx, p.ID, models.PaymentVerified, "", adminID, now); err != nil {
			return err
		}
		return s.bills.MarkVerified(ctx, bill.ID, now)
	})
	if err != nil {
		return nil, s.transitionError(err)
	}

	p.Status, p.VerifiedBy, p.VerifiedAt, p.UpdatedAt = models.PaymentVerified, adminID, &now, now
	bill.Status, bill.VerifiedAt, bill.UpdatedAt = models.BillVerified, &now, now

	if _, err := s.notifier.Notify(ctx, p.TenantID, models.NotifPaymentVerified, bill.ID, s.billData(ctx, bill)); err != nil {
		s.logger.Error("payment verified notice failed", zap.String("paymentId", p.ID), zap.Error(err))
	}

	result := &models.VerificationResult{Payment: p, Bill: bill, Check: check, Warning: Warning(check)}
	s.logger.Info("payment approved",
		zap.String("paymentId", p.ID),
		zap.String("adminId", adminID),
		zap.Bool("amountMatch", check.IsMatch),
		zap.String("source", string(check.Source)),
	)
	return result, nil
}

// Reject turns a pending payment down and reopens its bill.
func (s *DefaultPaymentService) Reject(ctx context.Context, id, adminID, reason string) (*models.Payment, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, utils.NewBadRequest(utils.MsgReasonRequired)
	}
	p, err := s.pendingPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.GetByID(ctx, p.BillID)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgBillNotFound)
	}

	now := s.now()
	reopened := models.BillPending
	if now.After(bill.DueDate) {
		reopened = models.BillOverdue
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.payments.Resolve(ctx, p.ID, models.PaymentRejected, reason, adminID, now); err != nil {
			return err
		}
		return s.bills.TransitionStatus(ctx, bill.ID, []models.BillStatus{models.BillPaid, models.BillPending, models.BillOverdue}, reopened)
	})
	if err != nil {
		return nil, s.transitionError(err)
	}

	p.Status, p.RejectionReason, p.VerifiedBy, p.VerifiedAt, p.UpdatedAt = models.PaymentRejected, reason, adminID, &now, now
	bill.Status = reopened

	data := s.billData(ctx, bill)
	data.Reason = reason
	if _, err := s.notifier.Notify(ctx, p.TenantID, models.NotifPaymentRejected, bill.ID, data); err != nil {
		s.logger.Error("payment rejected notice failed", zap.String("paymentId", p.ID), zap.Error(err))
	}

	s.logger.Info("payment rejected", zap.String("paymentId", p.ID), zap.String("adminId", adminID))
	return p, nil
}

// pendingPayment loads id and fails with a conflict unless it is still pending.
func (s *DefaultPaymentService) pendingPayment(ctx context.Context, id string) (*models.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, utils.MsgPaymentNotFound)
	}
	if p.Status != models.PaymentPending {
		return nil, utils.NewConflict(utils.MsgPaymentProcessed)
	}
	return p, nil
}

func (s *DefaultPaymentService) transitionError(err error) error {
	switch {
	case errors.Is(err, database.ErrConflict):
		return utils.NewConflict(utils.MsgPaymentProcessed)
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound(utils.MsgPaymentNotFound)
	default:
		return err
	}
}

func (s *DefaultPaymentService) billData(ctx context.Context, bill *models.Bill) models.NotificationData {
	var number string
	if s.rooms != nil {
		if room, err := s.rooms.GetByID(ctx, bill.RoomID); err == nil {
			number = room.Number
		}
	}
	return notification.BillData(bill, number, s.loc)
}

func (s *DefaultPaymentService) userName(ctx context.Context, id string) string {
	if s.users == nil {
		return ""
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return u.Name
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NewNotFound(msg)
	}
	return err
}
