package billRepo

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

func (r *mongoBillRepo) Create(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now()
	bill.CreatedAt = now
	bill.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, bill); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrConflict
		}
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

func (r *mongoBillRepo) GetByID(ctx context.Context, id string) (*models.Bill, error) {
	var bill models.Bill
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bill); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch bill %s: %w", id, err)
	}
	return &bill, nil
}

func (r *mongoBillRepo) List(ctx context.Context, filter models.BillFilter) ([]models.Bill, error) {
	query := bson.M{}
	if filter.TenantID != "" {
		query["tenantId"] = filter.TenantID
	}
	if filter.RoomID != "" {
		query["roomId"] = filter.RoomID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Month != 0 {
		query["month"] = filter.Month
	}
	if filter.Year != 0 {
		query["year"] = filter.Year
	}
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}, {Key: "createdAt", Value: -1}})
	return r.find(ctx, query, opts)
}

func (r *mongoBillRepo) FindDueBetween(ctx context.Context, from, to time.Time, statuses []models.BillStatus) ([]models.Bill, error) {
	query := bson.M{
		"dueDate": bson.M{"$gte": from, "$lt": to},
		"status":  bson.M{"$in": statuses},
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}}))
}

func (r *mongoBillRepo) FindPastDue(ctx context.Context, before time.Time, statuses []models.BillStatus) ([]models.Bill, error) {
	query := bson.M{
		"dueDate": bson.M{"$lt": before},
		"status":  bson.M{"$in": statuses},
	}
	return r.find(ctx, query, options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}}))
}

func (r *mongoBillRepo) TransitionStatus(ctx context.Context, id string, from []models.BillStatus, to models.BillStatus) error {
	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoBillRepo) MarkVerified(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"status": models.BillVerified, "verifiedAt": at, "updatedAt": at}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to verify bill: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoBillRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": bson.M{"$in": models.DeletableBillStatuses}})
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoBillRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.Bill, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer cursor.Close(ctx)

	bills := []models.Bill{}
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("failed to decode bills: %w", err)
	}
	return bills, nil
}

func (r *mongoBillRepo) missingOrConflict(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check bill %s: %w", id, err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}
