package templateRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentflow/database"
	"rentflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// TemplateRepository stores admin overrides of notification texts.
type TemplateRepository interface {
	Get(ctx context.Context, t models.NotificationType) (*models.NotificationTemplate, error)
	Upsert(ctx context.Context, tpl *models.NotificationTemplate) error
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo returns a TemplateRepository backed by "notification_templates".
func NewMongoTemplateRepo(ctx context.Context, db *mongo.Database) TemplateRepository {
	repo := &mongoTemplateRepo{coll: db.Collection("notification_templates")}
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if err := database.EnsureIndexes(ctx, repo.coll, indexes); err != nil {
		zap.L().Warn("template indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoTemplateRepo) Get(ctx context.Context, t models.NotificationType) (*models.NotificationTemplate, error) {
	var tpl models.NotificationTemplate
	if err := r.coll.FindOne(ctx, bson.M{"type": t}).Decode(&tpl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch template %s: %w", t, err)
	}
	return &tpl, nil
}

func (r *mongoTemplateRepo) Upsert(ctx context.Context, tpl *models.NotificationTemplate) error {
	tpl.UpdatedAt = time.Now()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"type": tpl.Type}, tpl, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", tpl.Type, err)
	}
	return nil
}
