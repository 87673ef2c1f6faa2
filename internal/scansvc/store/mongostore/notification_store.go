package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurapass/kiosk-services/internal/scansvc/models"
)

const NotificationCollection = "notifications"

type NotificationStore struct {
	col *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStore {
	return &NotificationStore{col: db.Collection(NotificationCollection)}
}

// InsertMany persists one notification document per admin in a single
// write. Mongo expires them via the TTL index on expires_at.
func (s *NotificationStore) InsertMany(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(notifications))
	for _, n := range notifications {
		docs = append(docs, n)
	}

	_, err := s.col.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert notifications: %w", err)
	}

	return nil
}

// ListForAdmin returns the newest notifications for one admin.
func (s *NotificationStore) ListForAdmin(ctx context.Context, adminID int64, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, bson.M{"admin_id": adminID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cur.Close(ctx)

	var notifications []models.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}

	return notifications, nil
}
