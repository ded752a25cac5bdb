package inventory

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/app/shared/sessionstate"
	"vitalsim/internal/domain/conditions"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidRequest = errors.New("invalid inventory request")

type AddItemRequest struct {
	SessionID string
	Item      conditions.Item
}

type AddictionRequest struct {
	SessionID string
	Category  string
	Level     int
}

type Response struct {
	Success   bool                 `json:"success"`
	Persisted bool                 `json:"persisted"`
	Inventory conditions.Inventory `json:"inventory"`
}

// UseCase lets the host seed the parts of session state this service only
// reads: held items and addiction severities.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.SessionStateRepository
	Inventory ports.InventoryBinder
	Metrics   ports.SimulationMetrics
	Catalog   *conditions.Catalog
	Now       func() time.Time
}

func (u UseCase) AddItem(ctx context.Context, req AddItemRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Item.Name = strings.TrimSpace(req.Item.Name)
	req.Item.Type = strings.TrimSpace(req.Item.Type)
	if req.SessionID == "" || req.Item.Name == "" || req.Item.Type == "" || u.Inventory == nil {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/inventory").Start(ctx, "inventory.AddItem")
	defer span.End()
	span.SetAttributes(attribute.String("vitalsim.item_type", req.Item.Type))
	return u.run(ctx, req.SessionID, func(state *conditions.SessionState) {
		u.Inventory.Bind(state).Add(req.Item)
	})
}

// SetAddiction overwrites the severity of one addiction category. Level 0
// switches cravings off for it.
func (u UseCase) SetAddiction(ctx context.Context, req AddictionRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Category = strings.TrimSpace(req.Category)
	if req.SessionID == "" || req.Category == "" || req.Level < 0 || req.Level > conditions.MaxAddictionLevel {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/inventory").Start(ctx, "inventory.SetAddiction")
	defer span.End()
	span.SetAttributes(
		attribute.String("vitalsim.category", req.Category),
		attribute.Int("vitalsim.level", req.Level),
	)
	return u.run(ctx, req.SessionID, func(state *conditions.SessionState) {
		a := state.Inventory.Addictions[req.Category]
		a.Level = req.Level
		state.Inventory.Addictions[req.Category] = a
	})
}

func (u UseCase) run(ctx context.Context, sessionID string, mutate func(*conditions.SessionState)) (Response, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	store := sessionstate.Store{Repo: u.StateRepo, Catalog: u.Catalog, Metrics: u.Metrics}
	var out Response
	err := sessionstate.RunInTx(ctx, u.TxManager, func(txCtx context.Context) error {
		state, expected := store.Load(txCtx, sessionID)
		mutate(&state)
		out.Success = true
		out.Inventory = state.Inventory
		out.Persisted = store.Save(txCtx, &state, expected, nowFn()) == sessionstate.Saved
		return nil
	})
	if err != nil {
		log.Printf("warn: inventory change for session %s: %v", sessionID, err)
		out.Persisted = false
	}
	return out, nil
}
