package sessionstate

import (
	"context"
	"errors"
	"log"
	"time"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"
)

// Store loads and saves session state without ever failing the caller.
// An unreadable store reads as an empty session and a failed write is
// skipped with a warning.
type Store struct {
	Repo    ports.SessionStateRepository
	Catalog *conditions.Catalog
	Metrics ports.SimulationMetrics
}

func (s Store) Load(ctx context.Context, sessionID string) (conditions.SessionState, int64) {
	if s.Repo == nil {
		s.recordFailure()
		log.Printf("warn: session store not configured; session %s reads as empty", sessionID)
		return fresh(sessionID, s.Catalog), 0
	}
	state, err := s.Repo.GetBySessionID(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotFound):
		return fresh(sessionID, s.Catalog), 0
	default:
		s.recordFailure()
		log.Printf("warn: load session %s: %v; continuing with empty state", sessionID, err)
		return fresh(sessionID, s.Catalog), 0
	}
	expected := state.Version
	state.SessionID = sessionID
	state.Normalize(s.Catalog)
	return state, expected
}

// SaveOutcome reports what happened to a write.
type SaveOutcome int

const (
	// Saved means the new version is durable.
	Saved SaveOutcome = iota
	// Skipped means the store is unavailable and the session runs on in memory.
	Skipped
	// Conflicted means another writer won the optimistic version check and
	// this change is lost.
	Conflicted
)

// Publishable reports whether the change may be announced to subscribers.
// A lost optimistic write never happened, so its events stay silent.
func (o SaveOutcome) Publishable() bool {
	return o != Conflicted
}

// Save writes state with optimistic versioning.
func (s Store) Save(ctx context.Context, state *conditions.SessionState, expectedVersion int64, now time.Time) SaveOutcome {
	if s.Repo == nil {
		return Skipped
	}
	state.Version = expectedVersion + 1
	state.UpdatedAt = now
	if err := s.Repo.SaveWithVersion(ctx, *state, expectedVersion); err != nil {
		state.Version = expectedVersion
		if errors.Is(err, ports.ErrConflict) {
			log.Printf("warn: save session %s: %v; change dropped", state.SessionID, err)
			return Conflicted
		}
		s.recordFailure()
		log.Printf("warn: save session %s: %v; write skipped", state.SessionID, err)
		return Skipped
	}
	return Saved
}

func (s Store) recordFailure() {
	if s.Metrics != nil {
		s.Metrics.RecordStoreFailure()
	}
}

func fresh(sessionID string, c *conditions.Catalog) conditions.SessionState {
	state := conditions.NewSessionState(sessionID)
	state.Normalize(c)
	return state
}

// Publish fans events out in order. Delivery errors are logged and dropped.
func Publish(ctx context.Context, pub ports.Publisher, sessionID string, events []conditions.DomainEvent) {
	if pub == nil {
		return
	}
	for _, e := range events {
		if err := pub.Publish(ctx, sessionID, e); err != nil {
			log.Printf("warn: publish %s for session %s: %v", e.Type, sessionID, err)
		}
	}
}

// RunInTx runs fn inside tx when one is configured.
func RunInTx(ctx context.Context, tx ports.TxManager, fn func(ctx context.Context) error) error {
	if tx == nil {
		return fn(ctx)
	}
	return tx.RunInTx(ctx, fn)
}
