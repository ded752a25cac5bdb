package effects

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
)

var ErrInvalidRequest = errors.New("invalid effects request")

// UseCase covers host-driven status changes that are not consumption:
// manual removal, status toggles and the archetype slot.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.SessionStateRepository
	Publisher ports.Publisher
	Metrics   ports.SimulationMetrics
	Catalog   *conditions.Catalog
	Now       func() time.Time
}

// Remove deletes an active effect. It never triggers a withdrawal.
func (u UseCase) Remove(ctx context.Context, req RemoveRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || req.EffectID == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/effects").Start(ctx, "effects.Remove")
	defer span.End()
	return u.run(ctx, req.SessionID, func(state *conditions.SessionState, l conditions.Lifecycle) (bool, []conditions.DomainEvent) {
		res := l.Remove(state, req.EffectID)
		return res.Success, res.Events
	})
}

func (u UseCase) Inflict(ctx context.Context, req InflictRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" || req.EffectID == "" || req.DurationTicks <= 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.Source == "" {
		req.Source = "status"
	}
	ctx, span := otel.Tracer("vitalsim/app/effects").Start(ctx, "effects.Inflict")
	defer span.End()
	return u.run(ctx, req.SessionID, func(state *conditions.SessionState, l conditions.Lifecycle) (bool, []conditions.DomainEvent) {
		res := l.Inflict(state, req.EffectID, req.DurationTicks, req.Source)
		return res.Success, res.Events
	})
}

// SelectArchetype fills or clears the persistent archetype slot. A different
// archetype instance held at the time is removed.
func (u UseCase) SelectArchetype(ctx context.Context, req ArchetypeRequest) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/effects").Start(ctx, "effects.SelectArchetype")
	defer span.End()
	return u.run(ctx, req.SessionID, func(state *conditions.SessionState, lifecycle conditions.Lifecycle) (bool, []conditions.DomainEvent) {
		return lifecycle.SelectArchetype(state, req.Archetype)
	})
}

func (u UseCase) run(ctx context.Context, sessionID string, mutate func(*conditions.SessionState, conditions.Lifecycle) (bool, []conditions.DomainEvent)) (Response, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	lifecycle := conditions.Lifecycle{Catalog: u.Catalog, Now: nowFn}
	store := sessionstate.Store{Repo: u.StateRepo, Catalog: u.Catalog, Metrics: u.Metrics}

	var out Response
	publish := true
	err := sessionstate.RunInTx(ctx, u.TxManager, func(txCtx context.Context) error {
		state, expected := store.Load(txCtx, sessionID)
		ok, events := mutate(&state, lifecycle)
		out.Success = ok
		out.Events = events
		out.Vitals = state.Vitals
		out.DeepEffects = state.DeepEffects
		if ok {
			saved := store.Save(txCtx, &state, expected, nowFn())
			out.Persisted = saved == sessionstate.Saved
			publish = saved.Publishable()
		}
		return nil
	})
	if err != nil {
		log.Printf("warn: effects change for session %s: %v", sessionID, err)
		out.Persisted = false
	}
	if publish {
		sessionstate.Publish(ctx, u.Publisher, sessionID, out.Events)
	}
	return out, nil
}
