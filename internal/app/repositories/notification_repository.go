package repositories

import (
	"context"

	"github.com/unizg/careerhub/internal/app/models"
	"github.com/unizg/careerhub/internal/pkg/recordstore"
)

// NotificationRepository accesses the notifications list
type NotificationRepository struct {
	store *recordstore.Store
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(store *recordstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// Append stores a new notification
func (r *NotificationRepository) Append(ctx context.Context, n models.Notification) error {
	var list []models.Notification
	return r.store.Update(ctx, CollectionNotifications, &list, func() error {
		list = append(list, n)
		return nil
	})
}

// ListByUsername returns the user's notifications, newest first
func (r *NotificationRepository) ListByUsername(ctx context.Context, username string) ([]models.Notification, error) {
	var list []models.Notification
	if err := r.store.Load(ctx, CollectionNotifications, &list); err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0)
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Username == username {
			out = append(out, list[i])
		}
	}
	return out, nil
}

// MarkAllRead flags every unread notification of username and returns how many changed
func (r *NotificationRepository) MarkAllRead(ctx context.Context, username string) (int, error) {
	var list []models.Notification
	changed := 0
	err := r.store.Update(ctx, CollectionNotifications, &list, func() error {
		for i := range list {
			if list[i].Username == username && !list[i].Read {
				list[i].Read = true
				changed++
			}
		}
		return nil
	})
	return changed, err
}
