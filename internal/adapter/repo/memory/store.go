package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"vitalsim/internal/domain/conditions"
)

type Store struct {
	mu            sync.RWMutex
	state         map[string]conditions.SessionState
	notifications map[string][]conditions.DomainEvent
}

func NewStore() *Store {
	return &Store{
		state:         make(map[string]conditions.SessionState),
		notifications: make(map[string][]conditions.DomainEvent),
	}
}

func (s *Store) SeedState(state conditions.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[state.SessionID] = cloneState(state)
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// read runs fn under the read lock unless ctx already holds the write lock.
func (s *Store) read(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func()) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	fn()
}

// cloneState copies every slice and map so callers never alias stored state.
func cloneState(s conditions.SessionState) conditions.SessionState {
	s.Vitals.ActiveEffects = slices.Clone(s.Vitals.ActiveEffects)
	s.Inventory.Items = slices.Clone(s.Inventory.Items)
	s.Inventory.Addictions = maps.Clone(s.Inventory.Addictions)
	s.Cravings = maps.Clone(s.Cravings)
	s.DeepEffects = slices.Clone(s.DeepEffects)
	return s
}
