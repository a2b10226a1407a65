package maintenanceRepo

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

func (r *mongoMaintenanceRepo) Create(ctx context.Context, ticket *models.Maintenance) error {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	now := time.Now()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("failed to insert maintenance ticket: %w", err)
	}
	return nil
}

func (r *mongoMaintenanceRepo) GetByID(ctx context.Context, id string) (*models.Maintenance, error) {
	var ticket models.Maintenance
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch maintenance ticket %s: %w", id, err)
	}
	return &ticket, nil
}

func (r *mongoMaintenanceRepo) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.Maintenance, error) {
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

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance tickets: %w", err)
	}
	defer cursor.Close(ctx)

	tickets := []models.Maintenance{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode maintenance tickets: %w", err)
	}
	return tickets, nil
}

func (r *mongoMaintenanceRepo) UpdateStatus(ctx context.Context, id string, from, to models.MaintenanceStatus, note string, at time.Time) error {
	set := bson.M{"status": to, "updatedAt": at}
	if note != "" {
		set["adminNote"] = note
	}
	if to == models.MaintenanceCompleted {
		set["completedAt"] = at
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update maintenance ticket %s: %w", id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check maintenance ticket %s: %w", id, err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}
