package tasks

import (
	"context"
	"errors"
	"time"

	"rentflow/database"
	billRepo "rentflow/database/repository/bill"
	notificationRepo "rentflow/database/repository/notification"
	roomRepo "rentflow/database/repository/room"
	"rentflow/models"
	"rentflow/services/notification"
)

type fakeBills struct {
	billRepo.BillRepository
	bills []*models.Bill
}

func hasStatus(s models.BillStatus, in []models.BillStatus) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func (f *fakeBills) FindDueBetween(_ context.Context, from, to time.Time, statuses []models.BillStatus) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range f.bills {
		if !b.DueDate.Before(from) && b.DueDate.Before(to) && hasStatus(b.Status, statuses) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBills) FindPastDue(_ context.Context, before time.Time, statuses []models.BillStatus) ([]models.Bill, error) {
	var out []models.Bill
	for _, b := range f.bills {
		if b.DueDate.Before(before) && hasStatus(b.Status, statuses) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBills) TransitionStatus(_ context.Context, id string, from []models.BillStatus, to models.BillStatus) error {
	for _, b := range f.bills {
		if b.ID != id {
			continue
		}
		if !hasStatus(b.Status, from) {
			return database.ErrConflict
		}
		b.Status = to
		return nil
	}
	return database.ErrNotFound
}

type fakeNotifications struct {
	notificationRepo.NotificationRepository
	records []*models.Notification
}

func (f *fakeNotifications) ExistsSince(_ context.Context, userID, billID string, t models.NotificationType, since time.Time) (bool, error) {
	for _, n := range f.records {
		if n.UserID == userID && n.BillID == billID && n.Type == t && !n.SentAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := f.records[:0]
	var deleted int64
	for _, n := range f.records {
		if n.Read && n.ReadAt != nil && n.ReadAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.records = kept
	return deleted, nil
}

// fakeNotifier stores what it is asked to send in the shared record list.
type fakeNotifier struct {
	notification.NotificationService
	store  *fakeNotifications
	now    func() time.Time
	failOn map[string]bool
	sent   []sentNotice
}

type sentNotice struct {
	userID string
	typ    models.NotificationType
	billID string
	data   models.NotificationData
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, t models.NotificationType, billID string, data models.NotificationData) (*models.Notification, error) {
	if f.failOn[billID] {
		return nil, errors.New("insert failed")
	}
	n := &models.Notification{UserID: userID, Type: t, BillID: billID, SentAt: f.now()}
	f.store.records = append(f.store.records, n)
	f.sent = append(f.sent, sentNotice{userID, t, billID, data})
	return n, nil
}

type fakeRooms struct {
	roomRepo.RoomRepository
}

func (fakeRooms) GetByID(_ context.Context, id string) (*models.Room, error) {
	return &models.Room{ID: id, Number: "A-" + id}, nil
}
