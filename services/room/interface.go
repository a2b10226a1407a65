package room

import (
	"context"
	"fmt"
	"io"
	"time"

	"rentflow/database"
	roomRepo "rentflow/database/repository/room"
	userRepo "rentflow/database/repository/user"
	"rentflow/models"
	"rentflow/services/storage"

	"go.uber.org/zap"
)

// RoomService manages rooms and who lives in them.
type RoomService interface {
	Create(ctx context.Context, req models.RoomRequest) (*models.Room, error)
	List(ctx context.Context, status models.RoomStatus) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Update(ctx context.Context, id string, req models.RoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) error
	AssignTenant(ctx context.Context, roomID, tenantID string) (*models.Room, error)
	UnassignTenant(ctx context.Context, roomID string) (*models.Room, error)
	UploadAgreement(ctx context.Context, roomID string, r io.Reader, filename string) (*models.Room, error)
	AgreementURL(ctx context.Context, roomID string) (string, error)
}

type DefaultRoomService struct {
	rooms   roomRepo.RoomRepository
	users   userRepo.UserRepository
	storage storage.StorageService
	tx      database.Transactor
	logger  *zap.Logger
	now     func() time.Time
}

func NewDefaultRoomService(
	rooms roomRepo.RoomRepository,
	users userRepo.UserRepository,
	store storage.StorageService,
	tx database.Transactor,
	logger *zap.Logger,
) (*DefaultRoomService, error) {
	if rooms == nil || users == nil || tx == nil {
		return nil, fmt.Errorf("room service initialization error: repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRoomService{
		rooms:   rooms,
		users:   users,
		storage: store,
		tx:      tx,
		logger:  logger,
		now:     time.Now,
	}, nil
}
