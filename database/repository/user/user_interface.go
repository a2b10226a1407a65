package userRepo

import (
	"context"

	"rentflow/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record. A taken email yields database.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ListByRole retrieves every user with the given role, without password hashes.
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	// UpdatePreferences replaces a user's notification preferences.
	UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) error
	// UpdateFCMToken stores the device token used for push notifications.
	UpdateFCMToken(ctx context.Context, id, token string) error
	// SetRoom links a roomless tenant to roomID. Anything else yields database.ErrConflict.
	SetRoom(ctx context.Context, id, roomID string) error
	// ClearRoom unlinks the tenant from roomID.
	ClearRoom(ctx context.Context, id, roomID string) error
}
