package roomRepo

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

func (r *mongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrConflict
		}
		return fmt.Errorf("failed to insert room: %w", err)
	}
	return nil
}

func (r *mongoRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch room %s: %w", id, err)
	}
	return &room, nil
}

func (r *mongoRoomRepo) List(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "floor", Value: 1}, {Key: "number", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}
	return rooms, nil
}

func (r *mongoRoomRepo) Update(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = time.Now()
	set := bson.M{
		"number":      room.Number,
		"floor":       room.Floor,
		"monthlyRent": room.MonthlyRent,
		"status":      room.Status,
		"updatedAt":   room.UpdatedAt,
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": room.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrConflict
		}
		return fmt.Errorf("failed to update room %s: %w", room.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoRoomRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "status": bson.M{"$ne": models.RoomOccupied}})
	if err != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoRoomRepo) SetTenant(ctx context.Context, id, tenantID string) error {
	filter := bson.M{"id": id, "status": models.RoomAvailable}
	update := bson.M{"$set": bson.M{"status": models.RoomOccupied, "tenantId": tenantID, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to occupy room %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoRoomRepo) ClearTenant(ctx context.Context, id, tenantID string) error {
	filter := bson.M{"id": id, "status": models.RoomOccupied, "tenantId": tenantID}
	update := bson.M{
		"$set":   bson.M{"status": models.RoomAvailable, "updatedAt": time.Now()},
		"$unset": bson.M{"tenantId": ""},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to free room %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *mongoRoomRepo) SetAgreement(ctx context.Context, id string, file models.StoredFile) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"agreement": file, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to store agreement for room %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoRoomRepo) missingOrConflict(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check room %s: %w", id, err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}
