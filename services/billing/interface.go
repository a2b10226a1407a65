package billing

import (
	"context"
	"fmt"
	"time"

	billRepo "rentflow/database/repository/bill"
	roomRepo "rentflow/database/repository/room"
	"rentflow/models"
	"rentflow/services/notification"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BillingService generates and serves monthly bills.
type BillingService interface {
	Generate(ctx context.Context, req models.GenerateBillRequest) (*models.Bill, error)
	List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error)
	Get(ctx context.Context, id, userID string, role models.Role) (*models.Bill, error)
	Delete(ctx context.Context, id string) error
}

// Rates are the per-unit utility prices and the due day of the following month.
type Rates struct {
	Water       decimal.Decimal
	Electricity decimal.Decimal
	DueDay      int
}

func NewRates(water, electricity float64, dueDay int) Rates {
	if dueDay < 1 || dueDay > 28 {
		dueDay = 5
	}
	return Rates{
		Water:       decimal.NewFromFloat(water),
		Electricity: decimal.NewFromFloat(electricity),
		DueDay:      dueDay,
	}
}

type DefaultBillingService struct {
	bills    billRepo.BillRepository
	rooms    roomRepo.RoomRepository
	notifier notification.NotificationService
	rates    Rates
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewDefaultBillingService(
	bills billRepo.BillRepository,
	rooms roomRepo.RoomRepository,
	notifier notification.NotificationService,
	rates Rates,
	loc *time.Location,
	logger *zap.Logger,
) (*DefaultBillingService, error) {
	if bills == nil || rooms == nil {
		return nil, fmt.Errorf("billing service initialization error: repository is nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBillingService{
		bills:    bills,
		rooms:    rooms,
		notifier: notifier,
		rates:    rates,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}, nil
}
