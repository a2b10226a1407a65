package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentflow/database"
	"rentflow/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ListTenants retrieves all tenants for admin access, excluding sensitive fields.
func (s *DefaultUserService) ListTenants(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleTenant)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenants: %w", err)
	}
	return users, nil
}

// EnsureAdmin creates the admin account on first start. An existing account
// with that email is left as is.
func (s *DefaultUserService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.logger.Warn("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("EnsureAdmin: failed to hash password: %w", err)
	}
	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Preferences:  models.DefaultPreferences(),
	}
	if err := s.repo.Create(ctx, admin); err != nil && !errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}
	s.logger.Info("admin account seeded", zap.String("email", email))
	return nil
}
