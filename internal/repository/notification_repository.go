package repository

import (
	"context"

	"beacon-chat/internal/domain/notification"
	"beacon-chat/internal/store"
)

type SnapshotNotificationRepository struct {
	store *store.Store
}

func NewNotificationRepository(s *store.Store) NotificationRepository {
	return &SnapshotNotificationRepository{store: s}
}

func (r *SnapshotNotificationRepository) Push(ctx context.Context, userID int64, n notification.Notification) error {
	return r.store.Update(func(state *store.State) error {
		queue := state.Notifications[userID]
		state.Notifications[userID] = append([]notification.Notification{n}, queue...)
		return nil
	})
}

func (r *SnapshotNotificationRepository) Latest(ctx context.Context, userID int64, limit int) ([]notification.Notification, error) {
	out := []notification.Notification{}
	err := r.store.View(func(state *store.State) error {
		queue := state.Notifications[userID]
		if limit > len(queue) {
			limit = len(queue)
		}
		out = append(out, queue[:limit]...)
		return nil
	})
	return out, err
}
