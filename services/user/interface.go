package user

import (
	"context"
	"fmt"
	"time"

	userRepo "rentflow/database/repository/user"
	"rentflow/models"
	"rentflow/utils"

	"go.uber.org/zap"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// Profile
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) (*models.User, error)
	UpdateFCMToken(ctx context.Context, id, token string) error

	// Admin / Utility
	ListTenants(ctx context.Context) ([]models.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	repo    userRepo.UserRepository
	tokens  *utils.TokenIssuer
	revoked utils.TokenStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewDefaultUserService(repo userRepo.UserRepository, tokens *utils.TokenIssuer, revoked utils.TokenStore, logger *zap.Logger) (*DefaultUserService, error) {
	if repo == nil || tokens == nil {
		return nil, fmt.Errorf("user service initialization error: repository or token issuer is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{repo: repo, tokens: tokens, revoked: revoked, logger: logger, now: time.Now}, nil
}
