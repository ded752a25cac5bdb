package conditions

import "time"

type ActiveEffect struct {
	ID                EffectID `json:"id"`
	RemainingMessages int      `json:"remaining_messages"`
	Stacks            int      `json:"stacks"`
	Source            string   `json:"source"`
}

type Vitals struct {
	Health        int            `json:"health"`
	Morale        int            `json:"morale"`
	ActiveEffects []ActiveEffect `json:"active_effects"`
	Archetype     EffectID       `json:"archetype,omitempty"`
}

type Item struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Addiction struct {
	Level int `json:"level"`
	Uses  int `json:"uses,omitempty"`
}

type Inventory struct {
	Items      []Item               `json:"items"`
	Addictions map[string]Addiction `json:"addictions"`
}

type CravingTracker struct {
	MessagesSinceUse int `json:"messages_since_use"`
	NextCravingAt    int `json:"next_craving_at"`
}

// SessionState is everything this package reads and writes for one tracked persona.
type SessionState struct {
	SessionID   string                    `json:"session_id"`
	Vitals      Vitals                    `json:"vitals"`
	Inventory   Inventory                 `json:"inventory"`
	Cravings    map[string]CravingTracker `json:"cravings"`
	DeepEffects []DeepEffectID            `json:"deep_effects,omitempty"`
	Tick        int64                     `json:"tick"`
	Version     int64                     `json:"version"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventEffectApplied      = "effect-applied"
	EventEffectRemoved      = "effect-removed"
	EventVisualCue          = "visual-cue"
	EventWithdrawalAverted  = "withdrawal-averted"
	EventCravingResisted    = "craving-resisted"
	EventCravingSuccumbed   = "craving-succumbed"
	EventItemConsumed       = "item-consumed"
	EventDeepEffectAwakened = "deep-effect-awakened"
	EventDeepEffectFaded    = "deep-effect-faded"
)

func NewSessionState(sessionID string) SessionState {
	return SessionState{
		SessionID: sessionID,
		Vitals:    Vitals{Health: MaxVital, Morale: MaxVital, ActiveEffects: []ActiveEffect{}},
		Inventory: Inventory{Items: []Item{}, Addictions: map[string]Addiction{}},
		Cravings:  map[string]CravingTracker{},
	}
}

// Normalize repairs entries a corrupt store could have produced. Unknown ids
// and non-positive durations are dropped, duplicate ids merge into the
// instance with the most messages left, stacks are held to 1..StackCap and
// only the first archetype instance survives, taking over the slot. Missing
// maps are allocated.
func (s *SessionState) Normalize(c *Catalog) {
	if s.Inventory.Addictions == nil {
		s.Inventory.Addictions = map[string]Addiction{}
	}
	if s.Cravings == nil {
		s.Cravings = map[string]CravingTracker{}
	}
	kept := make([]ActiveEffect, 0, len(s.Vitals.ActiveEffects))
	at := make(map[EffectID]int, len(s.Vitals.ActiveEffects))
	var archetype EffectID
	for _, e := range s.Vitals.ActiveEffects {
		def, ok := c.Effect(e.ID)
		if !ok || e.RemainingMessages <= 0 {
			continue
		}
		e.Stacks = min(max(e.Stacks, 1), c.StackCap(e.ID))
		if i, dup := at[e.ID]; dup {
			if e.RemainingMessages > kept[i].RemainingMessages {
				kept[i] = e
			}
			continue
		}
		if def.Category == CategoryArchetype {
			if archetype != "" {
				continue
			}
			archetype = e.ID
		}
		at[e.ID] = len(kept)
		kept = append(kept, e)
	}
	s.Vitals.ActiveEffects = kept
	if s.Vitals.Archetype != "" {
		def, ok := c.Effect(s.Vitals.Archetype)
		if !ok || def.Category != CategoryArchetype || (archetype != "" && archetype != s.Vitals.Archetype) {
			s.Vitals.Archetype = ""
		}
	}
	s.Vitals.Health = clampVital(s.Vitals.Health)
	s.Vitals.Morale = clampVital(s.Vitals.Morale)
}

func (s *SessionState) findEffect(id EffectID) int {
	for i, e := range s.Vitals.ActiveEffects {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// HasEffect reports whether an instance of id is active.
func (s *SessionState) HasEffect(id EffectID) bool {
	return s.findEffect(id) >= 0
}

func (s *SessionState) Effect(id EffectID) (ActiveEffect, bool) {
	i := s.findEffect(id)
	if i < 0 {
		return ActiveEffect{}, false
	}
	return s.Vitals.ActiveEffects[i], true
}

// ActiveIDs returns the set of currently active effect ids.
func (s *SessionState) ActiveIDs() map[EffectID]struct{} {
	out := make(map[EffectID]struct{}, len(s.Vitals.ActiveEffects))
	for _, e := range s.Vitals.ActiveEffects {
		out[e.ID] = struct{}{}
	}
	return out
}

func (s *SessionState) removeAt(i int) ActiveEffect {
	removed := s.Vitals.ActiveEffects[i]
	s.Vitals.ActiveEffects = append(s.Vitals.ActiveEffects[:i], s.Vitals.ActiveEffects[i+1:]...)
	return removed
}

// AddictionLevel returns the severity for category, zero when not addicted.
func (s *SessionState) AddictionLevel(category string) int {
	return s.Inventory.Addictions[category].Level
}

// RecordUse counts one consumption of an addictive category: the craving
// counter restarts and every UsesPerSeverity uses raise the severity by one.
func (s *SessionState) RecordUse(category string) Addiction {
	if s.Inventory.Addictions == nil {
		s.Inventory.Addictions = map[string]Addiction{}
	}
	a := s.Inventory.Addictions[category]
	a.Uses++
	if a.Uses%UsesPerSeverity == 0 && a.Level < MaxAddictionLevel {
		a.Level++
	}
	s.Inventory.Addictions[category] = a
	if tr, ok := s.Cravings[category]; ok {
		tr.MessagesSinceUse = 0
		s.Cravings[category] = tr
	}
	return a
}

func (s *SessionState) applyHeal(h DirectHeal) {
	s.Vitals.Health = clampVital(s.Vitals.Health + h.Health)
	s.Vitals.Morale = clampVital(s.Vitals.Morale + h.Morale)
}

func clampVital(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVital {
		return MaxVital
	}
	return v
}
