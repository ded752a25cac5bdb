package status

import (
	"context"
	"errors"
	"strings"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/app/shared/sessionstate"
	"vitalsim/internal/domain/conditions"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase is the read model over one session. It never writes.
type UseCase struct {
	StateRepo ports.SessionStateRepository
	Metrics   ports.SimulationMetrics
	Catalog   *conditions.Catalog
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return Response{}, ErrInvalidRequest
	}
	ctx, span := otel.Tracer("vitalsim/app/status").Start(ctx, "status.Execute")
	defer span.End()

	store := sessionstate.Store{Repo: u.StateRepo, Catalog: u.Catalog, Metrics: u.Metrics}
	state, _ := store.Load(ctx, req.SessionID)
	span.SetAttributes(
		attribute.String("vitalsim.session_id", req.SessionID),
		attribute.Int("vitalsim.active_effects", len(state.Vitals.ActiveEffects)),
	)

	out := Response{
		SessionID:   state.SessionID,
		Tick:        state.Tick,
		Health:      state.Vitals.Health,
		Morale:      state.Vitals.Morale,
		Effects:     make([]EffectView, 0, len(state.Vitals.ActiveEffects)),
		Modifiers:   conditions.Aggregator{Catalog: u.Catalog}.For(state).All(),
		DeepEffects: make([]conditions.DeepEffectDefinition, 0, len(state.DeepEffects)),
		Cravings:    state.Cravings,
		Inventory:   state.Inventory,
	}
	for _, e := range state.Vitals.ActiveEffects {
		def, _ := u.Catalog.Effect(e.ID)
		out.Effects = append(out.Effects, EffectView{ActiveEffect: e, Definition: def})
	}
	if id := state.Vitals.Archetype; id != "" {
		if def, ok := u.Catalog.Effect(id); ok {
			out.Archetype = &def
		}
	}
	for _, id := range conditions.ResolveDeepEffects(u.Catalog, state.ActiveIDs()) {
		if def, ok := u.Catalog.DeepEffect(id); ok {
			out.DeepEffects = append(out.DeepEffects, def)
		}
	}
	return out, nil
}
