package tick

import (
	"context"
	"errors"
	"strings"
	"time"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	bySession map[string]conditions.SessionState
	getErr    error
	saveErr   error
}

func (r *stubStateRepo) GetBySessionID(_ context.Context, sessionID string) (conditions.SessionState, error) {
	if r.getErr != nil {
		return conditions.SessionState{}, r.getErr
	}
	state, ok := r.bySession[sessionID]
	if !ok {
		return conditions.SessionState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, state conditions.SessionState, expectedVersion int64) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if current, ok := r.bySession[state.SessionID]; ok && current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.bySession[state.SessionID] = state
	return nil
}

type stubPublisher struct {
	events []conditions.DomainEvent
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, _ string, e conditions.DomainEvent) error {
	p.events = append(p.events, e)
	return p.err
}

type stubBinder struct {
	consumeErr error
}

func (b stubBinder) Bind(state *conditions.SessionState) ports.SessionInventory {
	return &stubInventory{state: state, consumeErr: b.consumeErr}
}

type stubInventory struct {
	state      *conditions.SessionState
	consumeErr error
}

func (i *stubInventory) Find(category string) (conditions.Item, bool) {
	for _, it := range i.state.Inventory.Items {
		if it.Type == category {
			return it, true
		}
	}
	return conditions.Item{}, false
}

func (i *stubInventory) FindByName(name string) (conditions.Item, bool) {
	for _, it := range i.state.Inventory.Items {
		if strings.EqualFold(it.Name, name) {
			return it, true
		}
	}
	return conditions.Item{}, false
}

func (i *stubInventory) CategoryOf(item conditions.Item) (string, bool) {
	return item.Type, item.Type != ""
}

func (i *stubInventory) Consume(item conditions.Item) error {
	if i.consumeErr != nil {
		return i.consumeErr
	}
	for n, it := range i.state.Inventory.Items {
		if it == item {
			i.state.Inventory.Items = append(i.state.Inventory.Items[:n], i.state.Inventory.Items[n+1:]...)
			return nil
		}
	}
	return errors.New("item not held")
}

func (i *stubInventory) Add(item conditions.Item) {
	i.state.Inventory.Items = append(i.state.Inventory.Items, item)
}

type stubMetrics struct {
	ticks         int
	cravings      []string
	storeFailures int
}

func (m *stubMetrics) RecordApply(string, bool) {}

func (m *stubMetrics) RecordTick(int, int) { m.ticks++ }

func (m *stubMetrics) RecordCraving(outcome string) { m.cravings = append(m.cravings, outcome) }

func (m *stubMetrics) RecordStoreFailure() { m.storeFailures++ }

type fixedDice struct {
	float float64
}

func (d fixedDice) Float64() float64 { return d.float }

func (fixedDice) IntN(int) int { return 0 }

func eventTypes(events []conditions.DomainEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func newUseCase(repo *stubStateRepo, pub *stubPublisher, metrics *stubMetrics, dice float64) UseCase {
	return UseCase{
		TxManager: stubTxManager{},
		StateRepo: repo,
		Publisher: pub,
		Inventory: stubBinder{},
		Metrics:   metrics,
		Catalog:   conditions.DefaultCatalog(),
		Dice:      fixedDice{float: dice},
		Now:       func() time.Time { return fixedNow },
	}
}
