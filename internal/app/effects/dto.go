package effects

import "vitalsim/internal/domain/conditions"

type RemoveRequest struct {
	SessionID string
	EffectID  conditions.EffectID
}

type InflictRequest struct {
	SessionID     string
	EffectID      conditions.EffectID
	DurationTicks int
	Source        string
}

type ArchetypeRequest struct {
	SessionID string
	Archetype conditions.EffectID
}

type Response struct {
	Success     bool                      `json:"success"`
	Persisted   bool                      `json:"persisted"`
	Vitals      conditions.Vitals         `json:"vitals"`
	DeepEffects []conditions.DeepEffectID `json:"deep_effects"`
	Events      []conditions.DomainEvent  `json:"events"`
}
