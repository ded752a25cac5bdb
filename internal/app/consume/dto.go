package consume

import "vitalsim/internal/domain/conditions"

type Request struct {
	SessionID string
	ItemName  string
}

type ApplyRequest struct {
	SessionID string
	Category  string
	Source    string
}

const (
	ReasonItemNotHeld    = "item_not_held"
	ReasonNotConsumable  = "not_consumable"
	ReasonConsumeFailed  = "consume_failed"
	ReasonNoInventory    = "no_inventory"
	ReasonUnknownConsume = "unknown_consumable"
)

type Response struct {
	Success     bool                      `json:"success"`
	Reason      string                    `json:"reason,omitempty"`
	Persisted   bool                      `json:"persisted"`
	Item        *conditions.Item          `json:"item,omitempty"`
	Result      conditions.ApplyResult    `json:"result"`
	Addiction   *conditions.Addiction     `json:"addiction,omitempty"`
	Vitals      conditions.Vitals         `json:"vitals"`
	DeepEffects []conditions.DeepEffectID `json:"deep_effects"`
	Events      []conditions.DomainEvent  `json:"events"`
}
