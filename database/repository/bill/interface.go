package billRepo

import (
	"context"
	"time"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BillRepository defines methods for bill data access.
type BillRepository interface {
	// Create inserts a bill. A second bill for the same room and month yields database.ErrConflict.
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id string) (*models.Bill, error)
	List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error)
	// FindDueBetween returns bills with from <= dueDate < to in one of statuses.
	FindDueBetween(ctx context.Context, from, to time.Time, statuses []models.BillStatus) ([]models.Bill, error)
	// FindPastDue returns bills with dueDate < before in one of statuses.
	FindPastDue(ctx context.Context, before time.Time, statuses []models.BillStatus) ([]models.Bill, error)
	// TransitionStatus moves a bill to status only if it is currently in one of from.
	TransitionStatus(ctx context.Context, id string, from []models.BillStatus, to models.BillStatus) error
	// MarkVerified sets status verified and verifiedAt.
	MarkVerified(ctx context.Context, id string, at time.Time) error
	// Delete removes a bill that is pending or overdue. A paid or verified bill yields database.ErrConflict.
	Delete(ctx context.Context, id string) error
}

type mongoBillRepo struct {
	coll *mongo.Collection
}

// NewMongoBillRepo returns a BillRepository backed by the "bills" collection.
func NewMongoBillRepo(ctx context.Context, db *mongo.Database) BillRepository {
	repo := &mongoBillRepo{coll: db.Collection("bills")}
	if err := database.EnsureIndexes(ctx, repo.coll, billIndexes()); err != nil {
		zap.L().Warn("bill indexes", zap.Error(err))
	}
	return repo
}
