package notification

import (
	"context"
	"fmt"
	"time"

	notificationRepo "rentflow/database/repository/notification"
	templateRepo "rentflow/database/repository/template"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"

	"go.uber.org/zap"
)

// NotificationService creates in-app notifications and fans them out to
// the user's external channels.
type NotificationService interface {
	// Notify renders the template for t, stores the in-app record and dispatches
	// email/push per the user's preferences. Channel failures are logged only.
	Notify(ctx context.Context, userID string, t models.NotificationType, billID string, data models.NotificationData) (*models.Notification, error)
	// NotifyRole notifies every user with role, continuing past individual failures.
	NotifyRole(ctx context.Context, role models.Role, t models.NotificationType, billID string, data models.NotificationData) (int, error)

	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	GetTemplate(ctx context.Context, t models.NotificationType) (*models.NotificationTemplate, error)
	SaveTemplate(ctx context.Context, tpl *models.NotificationTemplate) error
}

// EmailQueue hands an email off for asynchronous delivery.
type EmailQueue interface {
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

// PushSender delivers a push message to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	repo      notificationRepo.NotificationRepository
	users     userRepo.UserRepository
	templates templateRepo.TemplateRepository
	email     EmailQueue
	push      PushSender
	loc       *time.Location
	logger    *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// Option configures optional collaborators.
type Option func(*DefaultNotificationService)

// WithEmail enables the email channel.
func WithEmail(q EmailQueue) Option { return func(s *DefaultNotificationService) { s.email = q } }

// WithPush enables the push channel.
func WithPush(p PushSender) Option { return func(s *DefaultNotificationService) { s.push = p } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(s *DefaultNotificationService) { s.now = now } }

func NewDefaultNotificationService(
	repo notificationRepo.NotificationRepository,
	users userRepo.UserRepository,
	templates templateRepo.TemplateRepository,
	loc *time.Location,
	logger *zap.Logger,
	opts ...Option,
) (*DefaultNotificationService, error) {
	if repo == nil || users == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DefaultNotificationService{
		repo:      repo,
		users:     users,
		templates: templates,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}
