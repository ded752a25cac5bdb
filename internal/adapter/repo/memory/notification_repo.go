package memory

import (
	"context"

	"vitalsim/internal/domain/conditions"
)

// NotificationRepo keeps every published event per session, newest last.
type NotificationRepo struct {
	store *Store
}

func NewNotificationRepo(store *Store) NotificationRepo {
	return NotificationRepo{store: store}
}

func (r NotificationRepo) Publish(ctx context.Context, sessionID string, e conditions.DomainEvent) error {
	if sessionID == "" {
		sessionID = "global"
	}
	r.store.write(ctx, func() {
		r.store.notifications[sessionID] = append(r.store.notifications[sessionID], e)
	})
	return nil
}

// ListBySessionID returns up to limit of the most recent events, oldest first.
func (r NotificationRepo) ListBySessionID(ctx context.Context, sessionID string, limit int) ([]conditions.DomainEvent, error) {
	var out []conditions.DomainEvent
	r.store.read(ctx, func() {
		all := r.store.notifications[sessionID]
		if limit > 0 && len(all) > limit {
			all = all[len(all)-limit:]
		}
		out = append([]conditions.DomainEvent(nil), all...)
	})
	return out, nil
}
