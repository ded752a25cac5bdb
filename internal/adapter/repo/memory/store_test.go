package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"
)

func TestSessionStateRepo_OptimisticVersioning(t *testing.T) {
	store := NewStore()
	repo := NewSessionStateRepo(store)
	ctx := context.Background()

	if _, err := repo.GetBySessionID(ctx, "s1"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	state := conditions.NewSessionState("s1")
	state.Version = 1
	if err := repo.SaveWithVersion(ctx, state, 0); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.SaveWithVersion(ctx, state, 0); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.SaveWithVersion(ctx, conditions.SessionState{SessionID: "s2"}, 3); !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("unknown session with non-zero version should conflict, got %v", err)
	}
}

func TestSessionStateRepo_ReturnsDetachedCopies(t *testing.T) {
	store := NewStore()
	state := conditions.NewSessionState("s1")
	state.Cravings["alcohol"] = conditions.CravingTracker{MessagesSinceUse: 1, NextCravingAt: 3}
	store.SeedState(state)
	repo := NewSessionStateRepo(store)

	loaded, _ := repo.GetBySessionID(context.Background(), "s1")
	loaded.Cravings["alcohol"] = conditions.CravingTracker{MessagesSinceUse: 9}
	loaded.Vitals.ActiveEffects = append(loaded.Vitals.ActiveEffects, conditions.ActiveEffect{ID: "x"})

	again, _ := repo.GetBySessionID(context.Background(), "s1")
	if again.Cravings["alcohol"].MessagesSinceUse != 1 || len(again.Vitals.ActiveEffects) != 0 {
		t.Fatalf("unsaved mutation leaked into store: %+v", again)
	}
}

func TestTxManager_SerializesReadModifyWrite(t *testing.T) {
	store := NewStore()
	store.SeedState(conditions.NewSessionState("s1"))
	repo := NewSessionStateRepo(store)
	tx := NewTxManager(store)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), func(ctx context.Context) error {
				s, err := repo.GetBySessionID(ctx, "s1")
				if err != nil {
					return err
				}
				expected := s.Version
				s.Version++
				s.Tick++
				return repo.SaveWithVersion(ctx, s, expected)
			})
		}()
	}
	wg.Wait()

	got, _ := repo.GetBySessionID(context.Background(), "s1")
	if got.Tick != 20 || got.Version != 20 {
		t.Fatalf("tick/version = %d/%d, want 20/20", got.Tick, got.Version)
	}
}

func TestNotificationRepo_ListKeepsMostRecent(t *testing.T) {
	repo := NewNotificationRepo(NewStore())
	ctx := context.Background()
	for _, typ := range []string{"a", "b", "c"} {
		_ = repo.Publish(ctx, "s1", conditions.DomainEvent{Type: typ})
	}
	got, err := repo.ListBySessionID(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Type != "b" || got[1].Type != "c" {
		t.Fatalf("events = %+v", got)
	}
}
