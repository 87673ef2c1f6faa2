package service

import (
	"context"
	"time"

	"github.com/aurapass/kiosk-services/internal/comm"
	"github.com/aurapass/kiosk-services/internal/scansvc/models"
	"github.com/aurapass/kiosk-services/internal/scansvc/store"
	"github.com/aurapass/kiosk-services/internal/scansvc/store/mongostore"
)

// NotificationService fans a scan notice out to every admin account:
// one persisted copy each, kept for Retention then TTL-expired by Mongo.
type NotificationService struct {
	adminStore        *store.AdminStore
	notificationStore *mongostore.NotificationStore
	retention         time.Duration
}

const defaultRetention = 30 * 24 * time.Hour

func NewNotificationService(adminStore *store.AdminStore, notificationStore *mongostore.NotificationStore) *NotificationService {
	return &NotificationService{
		adminStore:        adminStore,
		notificationStore: notificationStore,
		retention:         defaultRetention,
	}
}

// Dispatch persists one copy of the notice per admin.
func (s *NotificationService) Dispatch(ctx context.Context, notice comm.AdminNotice) error {
	admins, err := s.adminStore.ListAll(ctx)
	if err != nil {
		return err
	}

	notifications := make([]models.Notification, 0, len(admins))
	for _, admin := range admins {
		n := models.Notification{
			AdminID:   admin.ID,
			Title:     notice.Title,
			Body:      notice.Body,
			Level:     notice.Level,
			CreatedAt: notice.At,
			ExpiresAt: notice.At.Add(s.retention),
		}
		if notice.Member != nil {
			n.MemberUniqueId = notice.Member.UniqueId
		}
		notifications = append(notifications, n)
	}

	return s.notificationStore.InsertMany(ctx, notifications)
}

// ListForAdmin returns an admin's recent notification feed.
func (s *NotificationService) ListForAdmin(ctx context.Context, adminID int64, limit int64) ([]models.Notification, error) {
	return s.notificationStore.ListForAdmin(ctx, adminID, limit)
}
