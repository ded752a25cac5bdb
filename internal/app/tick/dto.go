package tick

import (
	"vitalsim/internal/domain/conditions"
	"vitalsim/internal/domain/craving"
)

type Request struct {
	SessionID string
}

type Response struct {
	Success     bool                           `json:"success"`
	Persisted   bool                           `json:"persisted"`
	Tick        int64                          `json:"tick"`
	Expired     []conditions.ActiveEffect      `json:"expired"`
	Remaining   []conditions.ActiveEffect      `json:"remaining"`
	Withdrawals []conditions.WithdrawalOutcome `json:"withdrawals,omitempty"`
	Cravings    []craving.CategoryReport       `json:"cravings,omitempty"`
	DeepEffects []conditions.DeepEffectID      `json:"deep_effects"`
	Events      []conditions.DomainEvent       `json:"events"`
}
