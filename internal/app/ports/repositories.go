package ports

import (
	"context"

	"vitalsim/internal/domain/conditions"
	"vitalsim/internal/domain/craving"
)

type SessionStateRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (conditions.SessionState, error)
	SaveWithVersion(ctx context.Context, state conditions.SessionState, expectedVersion int64) error
}

// Publisher delivers notifications to whatever the host listens on.
// Callers never read anything back and ignore delivery errors. Events of a
// change that lost its optimistic write are not published; a change made
// while the store is unavailable still is.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, event conditions.DomainEvent) error
}

type NotificationRepository interface {
	Publisher
	ListBySessionID(ctx context.Context, sessionID string, limit int) ([]conditions.DomainEvent, error)
}

// SessionInventory is the inventory collaborator bound to one loaded session.
type SessionInventory interface {
	craving.Inventory
	FindByName(name string) (conditions.Item, bool)
	CategoryOf(item conditions.Item) (string, bool)
	Add(item conditions.Item)
}

type InventoryBinder interface {
	Bind(state *conditions.SessionState) SessionInventory
}
