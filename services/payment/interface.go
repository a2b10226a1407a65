package payment

import (
	"context"
	"fmt"
	"io"
	"time"

	"rentflow/database"
	billRepo "rentflow/database/repository/bill"
	paymentRepo "rentflow/database/repository/payment"
	roomRepo "rentflow/database/repository/room"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/services/storage"

	"go.uber.org/zap"
)

// Slip is an uploaded slip image.
type Slip struct {
	Reader   io.Reader
	Filename string
}

// PaymentService covers slip submission and admin verification.
type PaymentService interface {
	Submit(ctx context.Context, tenantID string, req models.SubmitPaymentRequest, slip Slip) (*models.Payment, error)
	Get(ctx context.Context, id, userID string, role models.Role) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	Verification(ctx context.Context, id, userID string, role models.Role) (*models.AmountCheck, error)
	UpdateOCR(ctx context.Context, id string, ocr models.OCRData) (*models.Payment, error)
	Approve(ctx context.Context, id, adminID string) (*models.VerificationResult, error)
	Reject(ctx context.Context, id, adminID, reason string) (*models.Payment, error)
}

type DefaultPaymentService struct {
	payments paymentRepo.PaymentRepository
	bills    billRepo.BillRepository
	users    userRepo.UserRepository
	rooms    roomRepo.RoomRepository
	storage  storage.StorageService
	notifier notification.NotificationService
	tx       database.Transactor
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// Deps groups the collaborators of DefaultPaymentService.
type Deps struct {
	Payments paymentRepo.PaymentRepository
	Bills    billRepo.BillRepository
	Users    userRepo.UserRepository
	Rooms    roomRepo.RoomRepository
	Storage  storage.StorageService
	Notifier notification.NotificationService
	Tx       database.Transactor
	Location *time.Location
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewDefaultPaymentService(d Deps) (*DefaultPaymentService, error) {
	if d.Payments == nil || d.Bills == nil || d.Tx == nil {
		return nil, fmt.Errorf("payment service initialization error: repository is nil")
	}
	if d.Notifier == nil {
		return nil, fmt.Errorf("payment service initialization error: notifier is nil")
	}
	s := &DefaultPaymentService{
		payments: d.Payments,
		bills:    d.Bills,
		users:    d.Users,
		rooms:    d.Rooms,
		storage:  d.Storage,
		notifier: d.Notifier,
		tx:       d.Tx,
		loc:      d.Location,
		logger:   d.Logger,
		now:      d.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}
