package roomRepo

import (
	"context"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RoomRepository defines methods for room data access.
type RoomRepository interface {
	// Create inserts a room. A taken room number yields database.ErrConflict.
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id string) (*models.Room, error)
	List(ctx context.Context, status models.RoomStatus) ([]models.Room, error)
	// Update writes number, floor, rent and status.
	Update(ctx context.Context, room *models.Room) error
	// Delete removes a room that is not occupied.
	Delete(ctx context.Context, id string) error
	// SetTenant occupies an available room. Anything else yields database.ErrConflict.
	SetTenant(ctx context.Context, id, tenantID string) error
	// ClearTenant frees a room occupied by tenantID.
	ClearTenant(ctx context.Context, id, tenantID string) error
	SetAgreement(ctx context.Context, id string, file models.StoredFile) error
}

type mongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo returns a RoomRepository backed by the "rooms" collection.
func NewMongoRoomRepo(ctx context.Context, db *mongo.Database) RoomRepository {
	repo := &mongoRoomRepo{coll: db.Collection("rooms")}
	if err := database.EnsureIndexes(ctx, repo.coll, roomIndexes()); err != nil {
		zap.L().Warn("room indexes", zap.Error(err))
	}
	return repo
}
