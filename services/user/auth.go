package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"rentflow/database"
	"rentflow/models"
	"rentflow/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

const msgWeakPassword = "รหัสผ่านต้องมีอย่างน้อย 8 ตัวอักษร และมีทั้งตัวอักษรและตัวเลข"

// verifyPasswordComplexity requires at least 8 characters with a letter and a digit.
func verifyPasswordComplexity(pw string) error {
	if len(pw) < 8 || !hasLetter.MatchString(pw) || !hasNumber.MatchString(pw) {
		return utils.NewBadRequest(msgWeakPassword)
	}
	return nil
}

// Register creates a tenant account and signs it in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: failed to hash password: %w", err)
	}

	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         models.RoleTenant,
		Preferences:  models.DefaultPreferences(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, utils.NewConflict(utils.MsgEmailTaken)
		}
		return nil, fmt.Errorf("Register: %w", err)
	}

	s.logger.Info("tenant registered", zap.String("userId", u.ID))
	return s.issue(u)
}

func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, utils.NewUnauthorized(utils.MsgInvalidCredential)
		}
		return nil, fmt.Errorf("Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, utils.NewUnauthorized(utils.MsgInvalidCredential)
	}
	return s.issue(u)
}

// Logout revokes token until it would have expired anyway.
func (s *DefaultUserService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return utils.NewUnauthorized(utils.MsgUnauthorized)
	}
	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, utils.HashToken(token), claims.ExpiresAt); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	s.logger.Info("user logged out", zap.String("userId", claims.Subject))
	return nil
}

func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}
