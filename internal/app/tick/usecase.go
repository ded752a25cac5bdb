package tick

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/app/shared/sessionstate"
	"vitalsim/internal/domain/conditions"
	"vitalsim/internal/domain/craving"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidRequest = errors.New("invalid tick request")

// UseCase advances one session by one message tick: effect expiry first,
// then cravings, then the deep-effect recompute.
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

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/tick").Start(ctx, "tick.Execute")
	defer span.End()

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	dice := u.Dice
	if dice == nil {
		dice = conditions.GlobalDice{}
	}
	lifecycle := conditions.Lifecycle{Catalog: u.Catalog, Dice: dice, Now: nowFn}
	engine := craving.Engine{Lifecycle: lifecycle}
	store := sessionstate.Store{Repo: u.StateRepo, Catalog: u.Catalog, Metrics: u.Metrics}

	var out Response
	publish := true
	err := sessionstate.RunInTx(ctx, u.TxManager, func(txCtx context.Context) error {
		state, expected := store.Load(txCtx, req.SessionID)

		ticked := lifecycle.Tick(&state)

		var inv craving.Inventory
		if u.Inventory != nil {
			inv = u.Inventory.Bind(&state)
		}
		report := engine.ProcessTick(&state, inv)

		events := append([]conditions.DomainEvent{}, ticked.Events...)
		events = append(events, report.Events...)
		events = append(events, lifecycle.RefreshDeepEffects(&state)...)

		out = Response{
			Success:     true,
			Tick:        state.Tick,
			Expired:     ticked.Expired,
			Remaining:   append([]conditions.ActiveEffect(nil), state.Vitals.ActiveEffects...),
			Withdrawals: ticked.Withdrawals,
			Cravings:    report.Categories,
			DeepEffects: state.DeepEffects,
			Events:      events,
		}
		saved := store.Save(txCtx, &state, expected, nowFn())
		out.Persisted = saved == sessionstate.Saved
		publish = saved.Publishable()
		return nil
	})
	if err != nil {
		log.Printf("warn: tick session %s: %v", req.SessionID, err)
		out.Persisted = false
	}

	if publish {
		sessionstate.Publish(ctx, u.Publisher, req.SessionID, out.Events)
	}
	if u.Metrics != nil {
		u.Metrics.RecordTick(len(out.Expired), len(out.Withdrawals))
		for _, c := range out.Cravings {
			u.Metrics.RecordCraving(string(c.Outcome))
		}
	}
	span.SetAttributes(
		attribute.String("vitalsim.session_id", req.SessionID),
		attribute.Int("vitalsim.expired", len(out.Expired)),
		attribute.Int("vitalsim.cravings", len(out.Cravings)),
	)
	return out, nil
}
