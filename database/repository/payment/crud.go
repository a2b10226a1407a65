package paymentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentflow/database"
	"rentflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *mongoPaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&payment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment %s: %w", id, err)
	}
	return &payment, nil
}

func (r *mongoPaymentRepo) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	query := bson.M{}
	if filter.TenantID != "" {
		query["tenantId"] = filter.TenantID
	}
	if filter.BillID != "" {
		query["billId"] = filter.BillID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (r *mongoPaymentRepo) HasPending(ctx context.Context, billID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"billId": billID, "status": models.PaymentPending}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count pending payments: %w", err)
	}
	return n > 0, nil
}

func (r *mongoPaymentRepo) Resolve(ctx context.Context, id string, status models.PaymentStatus, reason, adminID string, at time.Time) error {
	set := bson.M{
		"status":     status,
		"verifiedBy": adminID,
		"verifiedAt": at,
		"updatedAt":  at,
	}
	if reason != "" {
		set["rejectionReason"] = reason
	}
	return r.updatePending(ctx, id, bson.M{"$set": set})
}

func (r *mongoPaymentRepo) UpdateOCR(ctx context.Context, id string, ocr models.OCRData) error {
	return r.updatePending(ctx, id, bson.M{"$set": bson.M{"ocrData": ocr, "updatedAt": time.Now()}})
}

// updatePending applies update only while the payment is still pending.
func (r *mongoPaymentRepo) updatePending(ctx context.Context, id string, update bson.M) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": models.PaymentPending}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check payment %s: %w", id, err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}
