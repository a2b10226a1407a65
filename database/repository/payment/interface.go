package paymentRepo

import (
	"context"
	"time"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PaymentRepository defines methods for payment slip data access.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	HasPending(ctx context.Context, billID string) (bool, error)
	// Resolve moves a pending payment to verified or rejected. A payment that is
	// no longer pending yields database.ErrConflict and is left untouched.
	Resolve(ctx context.Context, id string, status models.PaymentStatus, reason, adminID string, at time.Time) error
	// UpdateOCR replaces ocrData of a pending payment.
	UpdateOCR(ctx context.Context, id string, ocr models.OCRData) error
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by the "payments" collection.
func NewMongoPaymentRepo(ctx context.Context, db *mongo.Database) PaymentRepository {
	repo := &mongoPaymentRepo{coll: db.Collection("payments")}
	if err := database.EnsureIndexes(ctx, repo.coll, paymentIndexes()); err != nil {
		zap.L().Warn("payment indexes", zap.Error(err))
	}
	return repo
}
