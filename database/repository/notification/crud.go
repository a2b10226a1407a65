package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"rentflow/database"
	"rentflow/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int64) ([]models.Notification, error) {
	query := bson.M{"userId": userID}
	if unreadOnly {
		query["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}

func (r *mongoNotificationRepo) MarkRead(ctx context.Context, userID, id string, at time.Time) error {
	filter := bson.M{"id": id, "userId": userID}
	// readAt is only set on the first read so retention counts from then.
	update := bson.A{
		bson.M{"$set": bson.M{
			"read":   true,
			"readAt": bson.M{"$ifNull": bson.A{"$readAt", at}},
		}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoNotificationRepo) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "readAt": at}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoNotificationRepo) ExistsSince(ctx context.Context, userID, billID string, t models.NotificationType, since time.Time) (bool, error) {
	query := bson.M{
		"userId": userID,
		"billId": billID,
		"type":   t,
		"sentAt": bson.M{"$gte": since},
	}
	n, err := r.coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check recent notifications: %w", err)
	}
	return n > 0, nil
}

func (r *mongoNotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"read": true, "readAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}
	return res.DeletedCount, nil
}
