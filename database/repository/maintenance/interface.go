package maintenanceRepo

import (
	"context"
	"time"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type MaintenanceRepository interface {
	Create(ctx context.Context, ticket *models.Maintenance) error
	GetByID(ctx context.Context, id string) (*models.Maintenance, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, error)
	// UpdateStatus moves a ticket from `from` to `to`; a ticket no longer in `from` yields database.ErrConflict.
	UpdateStatus(ctx context.Context, id string, from, to models.MaintenanceStatus, note string, at time.Time) error
}

type mongoMaintenanceRepo struct {
	coll *mongo.Collection
}

// NewMongoMaintenanceRepo returns a MaintenanceRepository backed by the "maintenance" collection.
func NewMongoMaintenanceRepo(ctx context.Context, db *mongo.Database) MaintenanceRepository {
	repo := &mongoMaintenanceRepo{coll: db.Collection("maintenance")}
	if err := database.EnsureIndexes(ctx, repo.coll, maintenanceIndexes()); err != nil {
		zap.L().Warn("maintenance indexes", zap.Error(err))
	}
	return repo
}
