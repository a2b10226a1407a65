package notificationRepo

import (
	"context"
	"time"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotificationRepository defines methods for in-app notification records.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int64) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead marks one of userID's notifications read; another user's id is ErrNotFound.
	MarkRead(ctx context.Context, userID, id string, at time.Time) error
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	// ExistsSince reports whether a notification of type t for userID and billID was sent at or after since.
	ExistsSince(ctx context.Context, userID, billID string, t models.NotificationType, since time.Time) (bool, error)
	// DeleteReadBefore removes read notifications whose readAt is before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by the "notifications" collection.
func NewMongoNotificationRepo(ctx context.Context, db *mongo.Database) NotificationRepository {
	repo := &mongoNotificationRepo{coll: db.Collection("notifications")}
	if err := database.EnsureIndexes(ctx, repo.coll, notificationIndexes()); err != nil {
		zap.L().Warn("notification indexes", zap.Error(err))
	}
	return repo
}
