package user

import (
	"context"
	"errors"

	"rentflow/database"
	"rentflow/models"
	"rentflow/utils"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

// UpdatePreferences replaces the user's notification preferences. Types the
// client left out keep their default of enabled.
func (s *DefaultUserService) UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) (*models.User, error) {
	q := prefs.QuietHours
	if q.Enabled && (!utils.IsClock(q.Start) || !utils.IsClock(q.End)) {
		return nil, utils.NewBadRequest(utils.MsgInvalidRequest)
	}

	merged := models.DefaultPreferences()
	for t, on := range prefs.Email {
		if t.Valid() {
			merged.Email[t] = on
		}
	}
	for t, on := range prefs.Push {
		if t.Valid() {
			merged.Push[t] = on
		}
	}
	merged.QuietHours = q

	if err := s.repo.UpdatePreferences(ctx, id, merged); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewNotFound(utils.MsgUserNotFound)
		}
		return nil, err
	}
	return s.GetUserByID(ctx, id)
}

func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	if err := s.repo.UpdateFCMToken(ctx, id, token); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return utils.NewNotFound(utils.MsgUserNotFound)
		}
		return err
	}
	return nil
}
