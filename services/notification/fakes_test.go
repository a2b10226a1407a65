package notification

import (
	"context"
	"time"

	"rentflow/database"
	notificationRepo "rentflow/database/repository/notification"
	templateRepo "rentflow/database/repository/template"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"
)

type fakeNotifications struct {
	notificationRepo.NotificationRepository
	records []*models.Notification
}

func (f *fakeNotifications) Create(_ context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = "n" + string(rune('0'+len(f.records)))
	}
	f.records = append(f.records, n)
	return nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, userID, id string, at time.Time) error {
	for _, n := range f.records {
		if n.ID == id && n.UserID == userID {
			if !n.Read {
				n.Read, n.ReadAt = true, &at
			}
			return nil
		}
	}
	return database.ErrNotFound
}

type fakeUsers struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeTemplates struct {
	templateRepo.TemplateRepository
	stored map[models.NotificationType]*models.NotificationTemplate
}

func (f *fakeTemplates) Get(_ context.Context, t models.NotificationType) (*models.NotificationTemplate, error) {
	tpl, ok := f.stored[t]
	if !ok {
		return nil, database.ErrNotFound
	}
	return tpl, nil
}

func (f *fakeTemplates) Upsert(_ context.Context, tpl *models.NotificationTemplate) error {
	f.stored[tpl.Type] = tpl
	return nil
}

type queuedEmail struct{ to, subject, body string }

type fakeEmail struct{ sent []queuedEmail }

func (f *fakeEmail) EnqueueEmail(_ context.Context, to, subject, body string) error {
	f.sent = append(f.sent, queuedEmail{to, subject, body})
	return nil
}

type fakePush struct {
	tokens []string
	err    error
}

func (f *fakePush) Send(_ context.Context, token, _, _ string, _ map[string]string) error {
	f.tokens = append(f.tokens, token)
	return f.err
}
