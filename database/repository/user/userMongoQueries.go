package userRepo

import (
	"context"
	"strings"

	"rentflow/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetByID retrieves a user by its unique ID (full document).
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOneWithProjection(ctx, bson.M{"id": id}, nil)
}

// GetByEmail retrieves a user by its email address (full document, used for login).
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOneWithProjection(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, nil)
}

// ListByRole retrieves users with the given role, sorted by name.
func (r *MongoUserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.findWithProjection(ctx, bson.M{"role": role}, safeProjection)
}
