package tasks

import (
	"context"
	"fmt"
	"time"

	billRepo "rentflow/database/repository/bill"
	notificationRepo "rentflow/database/repository/notification"
	roomRepo "rentflow/database/repository/room"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/utils"

	"go.uber.org/zap"
)

const (
	// ReadRetention is how long read notifications are kept.
	ReadRetention = 30 * 24 * time.Hour
	// OverdueRenotifyAfter suppresses a second overdue notice for the same bill.
	OverdueRenotifyAfter = 24 * time.Hour
)

// reminderStatuses are the bill states that still get due reminders.
var reminderStatuses = []models.BillStatus{models.BillPending, models.BillPaid}

var overdueStatuses = []models.BillStatus{models.BillPending, models.BillPaid, models.BillOverdue}

// JobResult summarizes one job run.
type JobResult struct {
	Matched int `json:"matched"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Deleted int `json:"deleted"`
}

// Jobs holds the business logic of the scheduled notification jobs.
type Jobs struct {
	bills         billRepo.BillRepository
	notifications notificationRepo.NotificationRepository
	rooms         roomRepo.RoomRepository
	notifier      notification.NotificationService
	loc           *time.Location
	logger        *zap.Logger
	now           func() time.Time
}

type JobOption func(*Jobs)

// WithJobClock overrides the time source.
func WithJobClock(now func() time.Time) JobOption { return func(j *Jobs) { j.now = now } }

func NewJobs(
	bills billRepo.BillRepository,
	notifications notificationRepo.NotificationRepository,
	rooms roomRepo.RoomRepository,
	notifier notification.NotificationService,
	loc *time.Location,
	logger *zap.Logger,
	opts ...JobOption,
) *Jobs {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &Jobs{
		bills:         bills,
		notifications: notifications,
		rooms:         rooms,
		notifier:      notifier,
		loc:           loc,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// DueReminder notifies tenants of bills due exactly daysBefore calendar days from today.
func (j *Jobs) DueReminder(ctx context.Context, daysBefore int) (JobResult, error) {
	var res JobResult
	from, to := utils.DayWindow(j.now(), daysBefore, j.loc)

	bills, err := j.bills.FindDueBetween(ctx, from, to, reminderStatuses)
	if err != nil {
		return res, fmt.Errorf("DueReminder: %w", err)
	}
	res.Matched = len(bills)

	for i := range bills {
		bill := &bills[i]
		if bill.TenantID == "" {
			res.Skipped++
			continue
		}
		data := j.billData(ctx, bill)
		data.DaysLeft = daysBefore
		if _, err := j.notifier.Notify(ctx, bill.TenantID, models.NotifPaymentReminder, bill.ID, data); err != nil {
			res.Failed++
			j.logger.Error("due reminder failed", zap.String("billId", bill.ID), zap.Error(err))
			continue
		}
		res.Sent++
	}

	j.logger.Info("due reminder job finished",
		zap.Int("daysBefore", daysBefore),
		zap.Int("matched", res.Matched),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// OverdueSweep notifies tenants of past-due bills, at most once per bill per
// OverdueRenotifyAfter, and marks pending ones overdue.
func (j *Jobs) OverdueSweep(ctx context.Context) (JobResult, error) {
	var res JobResult
	now := j.now()

	bills, err := j.bills.FindPastDue(ctx, now, overdueStatuses)
	if err != nil {
		return res, fmt.Errorf("OverdueSweep: %w", err)
	}
	res.Matched = len(bills)

	for i := range bills {
		bill := &bills[i]
		if bill.Status == models.BillPending {
			err := j.bills.TransitionStatus(ctx, bill.ID, []models.BillStatus{models.BillPending}, models.BillOverdue)
			if err != nil {
				j.logger.Warn("mark overdue failed", zap.String("billId", bill.ID), zap.Error(err))
			}
		}
		if bill.TenantID == "" {
			res.Skipped++
			continue
		}

		sent, err := j.notifications.ExistsSince(ctx, bill.TenantID, bill.ID, models.NotifPaymentOverdue, now.Add(-OverdueRenotifyAfter))
		if err != nil {
			res.Failed++
			j.logger.Error("overdue lookup failed", zap.String("billId", bill.ID), zap.Error(err))
			continue
		}
		if sent {
			res.Skipped++
			continue
		}

		if _, err := j.notifier.Notify(ctx, bill.TenantID, models.NotifPaymentOverdue, bill.ID, j.billData(ctx, bill)); err != nil {
			res.Failed++
			j.logger.Error("overdue notice failed", zap.String("billId", bill.ID), zap.Error(err))
			continue
		}
		res.Sent++
	}

	j.logger.Info("overdue job finished",
		zap.Int("matched", res.Matched),
		zap.Int("sent", res.Sent),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// Cleanup deletes notifications read more than ReadRetention ago.
func (j *Jobs) Cleanup(ctx context.Context) (JobResult, error) {
	var res JobResult
	deleted, err := j.notifications.DeleteReadBefore(ctx, j.now().Add(-ReadRetention))
	if err != nil {
		return res, fmt.Errorf("Cleanup: %w", err)
	}
	res.Deleted = int(deleted)

	j.logger.Info("notification cleanup finished", zap.Int("deleted", res.Deleted))
	return res, nil
}

func (j *Jobs) billData(ctx context.Context, bill *models.Bill) models.NotificationData {
	var number string
	if j.rooms != nil && bill.RoomID != "" {
		room, err := j.rooms.GetByID(ctx, bill.RoomID)
		if err != nil {
			j.logger.Debug("room lookup failed", zap.String("roomId", bill.RoomID), zap.Error(err))
		} else {
			number = room.Number
		}
	}
	return notification.BillData(bill, number, j.loc)
}
