package notification

import (
	"context"
	"errors"
	"fmt"

	"rentflow/database"
	"rentflow/models"
	"rentflow/utils"

	"go.uber.org/zap"
)

const listLimit = 100

func (s *DefaultNotificationService) Notify(
	ctx context.Context,
	userID string,
	t models.NotificationType,
	billID string,
	data models.NotificationData,
) (*models.Notification, error) {
	title, message, err := s.render(ctx, t, data)
	if err != nil {
		return nil, fmt.Errorf("Notify: %w", err)
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		BillID:  billID,
		SentAt:  s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("Notify: %w", err)
	}

	s.dispatch(ctx, n)
	return n, nil
}

// dispatch sends n over the user's external channels. It never fails the caller.
func (s *DefaultNotificationService) dispatch(ctx context.Context, n *models.Notification) {
	if s.email == nil && s.push == nil {
		return
	}
	user, err := s.users.GetByID(ctx, n.UserID)
	if err != nil {
		s.logger.Warn("notification recipient lookup failed", zap.String("userId", n.UserID), zap.Error(err))
		return
	}

	prefs := user.Preferences
	if InQuietHours(prefs.QuietHours, s.now().In(s.loc)) {
		s.logger.Debug("quiet hours, external channels skipped", zap.String("userId", user.ID), zap.String("type", string(n.Type)))
		return
	}

	if s.email != nil && user.Email != "" && channelEnabled(prefs.Email, n.Type) {
		if err := s.email.EnqueueEmail(ctx, user.Email, n.Title, n.Message); err != nil {
			s.logger.Warn("email enqueue failed", zap.String("userId", user.ID), zap.Error(err))
		}
	}
	if s.push != nil && user.FCMToken != "" && channelEnabled(prefs.Push, n.Type) {
		data := map[string]string{
			"notificationId": n.ID,
			"type":           string(n.Type),
		}
		if n.BillID != "" {
			data["billId"] = n.BillID
		}
		if err := s.push.Send(ctx, user.FCMToken, n.Title, n.Message, data); err != nil {
			s.logger.Warn("push send failed", zap.String("userId", user.ID), zap.Error(err))
		}
	}
}

// channelEnabled treats a missing preference as enabled.
func channelEnabled(prefs map[models.NotificationType]bool, t models.NotificationType) bool {
	enabled, ok := prefs[t]
	return !ok || enabled
}

func (s *DefaultNotificationService) NotifyRole(
	ctx context.Context,
	role models.Role,
	t models.NotificationType,
	billID string,
	data models.NotificationData,
) (int, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return 0, fmt.Errorf("NotifyRole: %w", err)
	}
	sent := 0
	for _, u := range users {
		if _, err := s.Notify(ctx, u.ID, t, billID, data); err != nil {
			s.logger.Error("notify failed", zap.String("userId", u.ID), zap.String("type", string(t)), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *DefaultNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, listLimit)
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id, s.now()); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFound(utils.MsgNotifNotFound)
		}
		return err
	}
	return nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}
