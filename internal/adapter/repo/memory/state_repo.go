package memory

import (
	"context"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"
)

type SessionStateRepo struct {
	store *Store
}

func NewSessionStateRepo(store *Store) SessionStateRepo {
	return SessionStateRepo{store: store}
}

func (r SessionStateRepo) GetBySessionID(ctx context.Context, sessionID string) (conditions.SessionState, error) {
	var (
		state conditions.SessionState
		ok    bool
	)
	r.store.read(ctx, func() {
		state, ok = r.store.state[sessionID]
	})
	if !ok {
		return conditions.SessionState{}, ports.ErrNotFound
	}
	return cloneState(state), nil
}

func (r SessionStateRepo) SaveWithVersion(ctx context.Context, state conditions.SessionState, expectedVersion int64) error {
	var err error
	r.store.write(ctx, func() {
		current, ok := r.store.state[state.SessionID]
		if !ok {
			if expectedVersion != 0 {
				err = ports.ErrConflict
				return
			}
			r.store.state[state.SessionID] = cloneState(state)
			return
		}
		if current.Version != expectedVersion {
			err = ports.ErrConflict
			return
		}
		r.store.state[state.SessionID] = cloneState(state)
	})
	return err
}
