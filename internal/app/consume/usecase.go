package consume

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

var ErrInvalidRequest = errors.New("invalid consume request")

type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.SessionStateRepository
	Publisher ports.Publisher
	Inventory ports.InventoryBinder
	Metrics   ports.SimulationMetrics
	Catalog   *conditions.Catalog
	Dice      conditions.Dice
	Now       func() time.Time
}

// Execute is the "consume item" user action: the named item leaves the
// inventory and its consumable category is applied.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.SessionID == "" || req.ItemName == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/consume").Start(ctx, "consume.Execute")
	defer span.End()

	return u.run(ctx, req.SessionID, func(state *conditions.SessionState, lifecycle conditions.Lifecycle, out *Response) {
		if u.Inventory == nil {
			out.Reason = ReasonNoInventory
			return
		}
		inv := u.Inventory.Bind(state)
		item, ok := inv.FindByName(req.ItemName)
		if !ok {
			out.Reason = ReasonItemNotHeld
			return
		}
		out.Item = &item
		category, ok := inv.CategoryOf(item)
		if !ok {
			out.Reason = ReasonNotConsumable
			return
		}
		if err := inv.Consume(item); err != nil {
			log.Printf("warn: consume %q for session %s: %v", item.Name, state.SessionID, err)
			out.Reason = ReasonConsumeFailed
			return
		}
		u.apply(state, lifecycle, category, conditions.ApplyOptions{}, out)
	})
}

// ApplyCategory applies a consumable category without touching inventory,
// for hosts that narrate consumption themselves.
func (u UseCase) ApplyCategory(ctx context.Context, req ApplyRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Category = strings.TrimSpace(req.Category)
	if req.SessionID == "" || req.Category == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/consume").Start(ctx, "consume.ApplyCategory")
	defer span.End()
	span.SetAttributes(attribute.String("vitalsim.category", req.Category))

	return u.run(ctx, req.SessionID, func(state *conditions.SessionState, lifecycle conditions.Lifecycle, out *Response) {
		u.apply(state, lifecycle, req.Category, conditions.ApplyOptions{Source: req.Source}, out)
	})
}

func (u UseCase) apply(state *conditions.SessionState, lifecycle conditions.Lifecycle, category string, opts conditions.ApplyOptions, out *Response) {
	res := lifecycle.Apply(state, category, opts)
	out.Result = res
	if !res.Success {
		out.Reason = ReasonUnknownConsume
		return
	}
	out.Success = true
	out.Events = append(out.Events, res.Events...)
	if u.Catalog.IsAddictive(category) {
		a := state.RecordUse(category)
		out.Addiction = &a
	}
	if u.Metrics != nil {
		u.Metrics.RecordApply(category, true)
	}
}

func (u UseCase) run(ctx context.Context, sessionID string, mutate func(*conditions.SessionState, conditions.Lifecycle, *Response)) (Response, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	dice := u.Dice
	if dice == nil {
		dice = conditions.GlobalDice{}
	}
	lifecycle := conditions.Lifecycle{Catalog: u.Catalog, Dice: dice, Now: nowFn}
	store := sessionstate.Store{Repo: u.StateRepo, Catalog: u.Catalog, Metrics: u.Metrics}

	var out Response
	publish := true
	err := sessionstate.RunInTx(ctx, u.TxManager, func(txCtx context.Context) error {
		state, expected := store.Load(txCtx, sessionID)
		mutate(&state, lifecycle, &out)
		out.Vitals = state.Vitals
		out.DeepEffects = state.DeepEffects
		if out.Success {
			saved := store.Save(txCtx, &state, expected, nowFn())
			out.Persisted = saved == sessionstate.Saved
			publish = saved.Publishable()
		}
		return nil
	})
	if err != nil {
		log.Printf("warn: consume for session %s: %v", sessionID, err)
		out.Persisted = false
	}
	if !out.Success && u.Metrics != nil {
		u.Metrics.RecordApply(out.Result.Category, false)
	}
	if publish {
		sessionstate.Publish(ctx, u.Publisher, sessionID, out.Events)
	}
	return out, nil
}
