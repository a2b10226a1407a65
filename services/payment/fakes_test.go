package payment

import (
	"context"
	"io"
	"sync"
	"time"

	"rentflow/database"
	billRepo "rentflow/database/repository/bill"
	paymentRepo "rentflow/database/repository/payment"
	"rentflow/models"
	"rentflow/services/notification"
	"rentflow/services/storage"
)

type fakeBills struct {
	billRepo.BillRepository
	mu     sync.Mutex
	bills  map[string]*models.Bill
	writes int
}

func newFakeBills(bills ...*models.Bill) *fakeBills {
	f := &fakeBills{bills: map[string]*models.Bill{}}
	for _, b := range bills {
		f.bills[b.ID] = b
	}
	return f
}

func (f *fakeBills) GetByID(_ context.Context, id string) (*models.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bills[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBills) TransitionStatus(_ context.Context, id string, from []models.BillStatus, to models.BillStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bills[id]
	if !ok {
		return database.ErrNotFound
	}
	for _, s := range from {
		if b.Status == s {
			b.Status = to
			f.writes++
			return nil
		}
	}
	return database.ErrConflict
}

func (f *fakeBills) MarkVerified(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bills[id]
	if !ok {
		return database.ErrNotFound
	}
	b.Status = models.BillVerified
	b.VerifiedAt = &at
	f.writes++
	return nil
}

type fakePayments struct {
	paymentRepo.PaymentRepository
	mu       sync.Mutex
	payments map[string]*models.Payment
	writes   int
}

func newFakePayments(ps ...*models.Payment) *fakePayments {
	f := &fakePayments{payments: map[string]*models.Payment{}}
	for _, p := range ps {
		f.payments[p.ID] = p
	}
	return f
}

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.payments[p.ID] = &cp
	f.writes++
	return nil
}

func (f *fakePayments) GetByID(_ context.Context, id string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) HasPending(_ context.Context, billID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.BillID == billID && p.Status == models.PaymentPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePayments) Resolve(_ context.Context, id string, status models.PaymentStatus, reason, adminID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return database.ErrNotFound
	}
	if p.Status != models.PaymentPending {
		return database.ErrConflict
	}
	p.Status, p.RejectionReason, p.VerifiedBy, p.VerifiedAt = status, reason, adminID, &at
	f.writes++
	return nil
}

func (f *fakePayments) UpdateOCR(_ context.Context, id string, ocr models.OCRData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return database.ErrNotFound
	}
	if p.Status != models.PaymentPending {
		return database.ErrConflict
	}
	p.OCRData = &ocr
	f.writes++
	return nil
}

type sentNotice struct {
	userID string
	role   models.Role
	typ    models.NotificationType
	billID string
	data   models.NotificationData
}

type fakeNotifier struct {
	notification.NotificationService
	sent []sentNotice
}

func (f *fakeNotifier) Notify(_ context.Context, userID string, t models.NotificationType, billID string, data models.NotificationData) (*models.Notification, error) {
	f.sent = append(f.sent, sentNotice{userID: userID, typ: t, billID: billID, data: data})
	return &models.Notification{UserID: userID, Type: t, BillID: billID}, nil
}

func (f *fakeNotifier) NotifyRole(_ context.Context, role models.Role, t models.NotificationType, billID string, data models.NotificationData) (int, error) {
	f.sent = append(f.sent, sentNotice{role: role, typ: t, billID: billID, data: data})
	return 1, nil
}

type fakeStorage struct {
	storage.StorageService
	uploads []string
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, r io.Reader, folder, filename string) (models.StoredFile, error) {
	_, _ = io.ReadAll(r)
	id := folder + "/" + filename
	f.uploads = append(f.uploads, id)
	return models.StoredFile{PublicID: id, URL: "https://res.example.com/" + id}, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

// fakeTx runs fn inline; the fakes have no rollback.
type fakeTx struct{ calls int }

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}
