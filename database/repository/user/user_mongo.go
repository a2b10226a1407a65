package userRepo

import (
	"context"
	"errors"
	"fmt"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(ctx context.Context, db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	if err := database.EnsureIndexes(ctx, repo.coll, userIndexes()); err != nil {
		zap.L().Warn("user indexes", zap.Error(err))
	}
	return repo
}

// --- Projection-based Helper Methods ---

// safeProjection hides credentials from listings.
var safeProjection = bson.M{"passwordHash": 0}

// findOneWithProjection retrieves one user matching filter. Pass nil for the full document.
func (r *MongoUserRepo) findOneWithProjection(ctx context.Context, filter, projection bson.M) (*models.User, error) {
	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var user models.User
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// findWithProjection retrieves all users matching filter with an optional projection.
func (r *MongoUserRepo) findWithProjection(ctx context.Context, filter, projection bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if projection != nil {
		opts.SetProjection(projection)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, u)
	}
	return users, cursor.Err()
}
