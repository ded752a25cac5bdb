package status

import "vitalsim/internal/domain/conditions"

type Request struct {
	SessionID string
}

type EffectView struct {
	conditions.ActiveEffect
	Definition conditions.EffectDefinition `json:"definition"`
}

type Response struct {
	SessionID   string                               `json:"session_id"`
	Tick        int64                                `json:"tick"`
	Health      int                                  `json:"health"`
	Morale      int                                  `json:"morale"`
	Effects     []EffectView                         `json:"effects"`
	Archetype   *conditions.EffectDefinition         `json:"archetype,omitempty"`
	Modifiers   map[conditions.Skill]int             `json:"modifiers"`
	DeepEffects []conditions.DeepEffectDefinition    `json:"deep_effects"`
	Cravings    map[string]conditions.CravingTracker `json:"cravings"`
	Inventory   conditions.Inventory                 `json:"inventory"`
}
