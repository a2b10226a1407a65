package userRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentflow/database"
	"rentflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return database.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *MongoUserRepo) UpdatePreferences(ctx context.Context, id string, prefs models.NotificationPreferences) error {
	return r.updateOne(ctx, bson.M{"id": id}, bson.M{"notificationPreferences": prefs})
}

func (r *MongoUserRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	return r.updateOne(ctx, bson.M{"id": id}, bson.M{"fcmToken": token})
}

func (r *MongoUserRepo) SetRoom(ctx context.Context, id, roomID string) error {
	filter := bson.M{
		"id":   id,
		"role": models.RoleTenant,
		"$or":  bson.A{bson.M{"roomId": bson.M{"$exists": false}}, bson.M{"roomId": ""}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"roomId": roomID, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to set room for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *MongoUserRepo) ClearRoom(ctx context.Context, id, roomID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "roomId": roomID},
		bson.M{"$unset": bson.M{"roomId": ""}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear room for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *MongoUserRepo) updateOne(ctx context.Context, filter, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoUserRepo) missingOrConflict(ctx context.Context, id string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check user %s: %w", id, err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}
