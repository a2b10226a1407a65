package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentflow/database"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Charges is the breakdown of one bill.
type Charges struct {
	Rent        decimal.Decimal
	Water       decimal.Decimal
	Electricity decimal.Decimal
	Other       decimal.Decimal
	Total       decimal.Decimal
}

// Compute prices metered units and sums the bill, rounding each line to satang.
func (r Rates) Compute(rent, waterUnits, electricityUnits, other float64) Charges {
	c := Charges{
		Rent:        decimal.NewFromFloat(rent).Round(2),
		Water:       decimal.NewFromFloat(waterUnits).Mul(r.Water).Round(2),
		Electricity: decimal.NewFromFloat(electricityUnits).Mul(r.Electricity).Round(2),
		Other:       decimal.NewFromFloat(other).Round(2),
	}
	c.Total = c.Rent.Add(c.Water).Add(c.Electricity).Add(c.Other)
	return c
}

// DueDate is the last second of DueDay in the month after month/year.
func (r Rates) DueDate(month, year int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month)+1, r.DueDay, 23, 59, 59, 0, loc)
}

func (s *DefaultBillingService) Generate(ctx context.Context, req models.GenerateBillRequest) (*models.Bill, error) {
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgRoomNotFound)
		}
		return nil, fmt.Errorf("Generate: %w", err)
	}
	if room.Status != models.RoomOccupied || room.TenantID == "" {
		return nil, utils.NewBadRequest(utils.MsgRoomNotOccupied)
	}

	rent := room.MonthlyRent
	if req.RentAmount != nil {
		rent = *req.RentAmount
	}
	charges := s.rates.Compute(rent, req.WaterUnits, req.ElectricityUnits, req.OtherCharges)

	due := s.rates.DueDate(req.Month, req.Year, s.loc)
	if req.DueDate != nil {
		due = *req.DueDate
	}

	now := s.now()
	bill := &models.Bill{
		ID:                uuid.New().String(),
		RoomID:            room.ID,
		TenantID:          room.TenantID,
		Month:             req.Month,
		Year:              req.Year,
		RentAmount:        charges.Rent.InexactFloat64(),
		WaterUnits:        req.WaterUnits,
		WaterAmount:       charges.Water.InexactFloat64(),
		ElectricityUnits:  req.ElectricityUnits,
		ElectricityAmount: charges.Electricity.InexactFloat64(),
		OtherCharges:      charges.Other.InexactFloat64(),
		TotalAmount:       charges.Total.InexactFloat64(),
		DueDate:           due,
		Status:            models.BillPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, utils.NewConflict(utils.MsgBillExists)
		}
		return nil, fmt.Errorf("Generate: %w", err)
	}

	if s.notifier != nil {
		data := notification.BillData(bill, room.Number, s.loc)
		if _, err := s.notifier.Notify(ctx, bill.TenantID, models.NotifBillGenerated, bill.ID, data); err != nil {
			s.logger.Error("bill generated notice failed", zap.String("billId", bill.ID), zap.Error(err))
		}
	}

	s.logger.Info("bill generated",
		zap.String("billId", bill.ID),
		zap.String("roomId", room.ID),
		zap.Int("month", bill.Month),
		zap.Int("year", bill.Year),
		zap.String("total", charges.Total.StringFixed(2)),
	)
	return bill, nil
}

func (s *DefaultBillingService) List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error) {
	return s.bills.List(ctx, filter)
}

// Get hides other tenants' bills behind a 404.
func (s *DefaultBillingService) Get(ctx context.Context, id, userID string, role models.Role) (*models.Bill, error) {
	bill, err := s.bills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgBillNotFound)
		}
		return nil, err
	}
	if role != models.RoleAdmin && bill.TenantID != userID {
		return nil, utils.NewNotFound(utils.MsgBillNotFound)
	}
	return bill, nil
}

func (s *DefaultBillingService) Delete(ctx context.Context, id string) error {
	switch err := s.bills.Delete(ctx, id); {
	case err == nil:
		s.logger.Info("bill deleted", zap.String("billId", id))
		return nil
	case errors.Is(err, database.ErrNotFound):
		return utils.NewNotFound(utils.MsgBillNotFound)
	case errors.Is(err, database.ErrConflict):
		return utils.NewConflict(utils.MsgBillLocked)
	default:
		return err
	}
}
