package conditions

import (
	"math/rand/v2"
	"time"
)

// Dice is the source of uniform draws. *math/rand/v2.Rand satisfies it.
type Dice interface {
	Float64() float64
	IntN(n int) int
}

// GlobalDice draws from the math/rand/v2 top-level source.
type GlobalDice struct{}

func (GlobalDice) Float64() float64 { return rand.Float64() }

func (GlobalDice) IntN(n int) int { return rand.IntN(n) }

const SourceWithdrawal = "withdrawal"

// Lifecycle applies, stacks, refreshes, clears and expires effect instances
// held in a SessionState. It never fails loudly: lookup misses come back as
// results with Success false.
type Lifecycle struct {
	Catalog *Catalog
	Dice    Dice
	Now     func() time.Time
}

type ApplyOptions struct {
	// Source overrides the provenance tag; defaults to the consumable category.
	Source string
}

type ApplyResult struct {
	Success    bool           `json:"success"`
	Category   string         `json:"category,omitempty"`
	Healing    bool           `json:"healing"`
	Heal       DirectHeal     `json:"heal"`
	Applied    []ActiveEffect `json:"applied,omitempty"`
	Cleared    []EffectID     `json:"cleared,omitempty"`
	SideEffect EffectID       `json:"side_effect,omitempty"`
	Events     []DomainEvent  `json:"-"`
}

type WithdrawalOutcome struct {
	ExpiredID EffectID      `json:"expired_id"`
	Applied   *ActiveEffect `json:"applied,omitempty"`
	Averted   bool          `json:"averted"`
	Category  string        `json:"category,omitempty"`
	Level     int           `json:"level,omitempty"`
}

type TickResult struct {
	Expired     []ActiveEffect      `json:"expired"`
	Remaining   []ActiveEffect      `json:"remaining"`
	Withdrawals []WithdrawalOutcome `json:"withdrawals,omitempty"`
	Events      []DomainEvent       `json:"-"`
}

type RemoveResult struct {
	Success bool          `json:"success"`
	Removed ActiveEffect  `json:"removed"`
	Events  []DomainEvent `json:"-"`
}

func (l Lifecycle) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Apply consumes one unit of a consumable category against the state.
func (l Lifecycle) Apply(state *SessionState, category string, opts ApplyOptions) ApplyResult {
	rule, ok := l.Catalog.Consumable(category)
	if !ok || state == nil {
		return ApplyResult{Category: category}
	}
	var target EffectDefinition
	if rule.TargetEffectID != "" {
		if target, ok = l.Catalog.Effect(rule.TargetEffectID); !ok {
			return ApplyResult{Category: category}
		}
	}
	source := opts.Source
	if source == "" {
		source = category
	}

	res := ApplyResult{Success: true, Category: category, Heal: rule.DirectHeal}
	for _, id := range rule.ClearsEffectIDs {
		l.clear(state, id, &res)
	}
	state.applyHeal(rule.DirectHeal)

	if rule.TargetEffectID == "" {
		res.Healing = true
	} else {
		l.place(state, target, rule.DurationTicks, rule.Stackable, rule.MaxStacks, source, &res)
		// Side effects are placed directly and never roll a further side effect.
		if rule.SideEffectID != "" && l.Dice != nil && l.Dice.Float64() < rule.SideEffectChance {
			if side, ok := l.Catalog.Effect(rule.SideEffectID); ok {
				l.place(state, side, rule.DurationTicks, false, 1, source, &res)
				res.SideEffect = side.ID
			}
		}
	}
	if rule.Cue != "" {
		res.Events = append(res.Events, l.event(EventVisualCue, map[string]any{"cue": rule.Cue, "category": category}))
	}
	res.Events = append(res.Events, l.RefreshDeepEffects(state)...)
	return res
}

// Inflict places a single effect directly, as a host-side status toggle.
// It refreshes an existing instance and never stacks.
func (l Lifecycle) Inflict(state *SessionState, id EffectID, durationTicks int, source string) ApplyResult {
	def, ok := l.Catalog.Effect(id)
	if !ok || state == nil || durationTicks <= 0 {
		return ApplyResult{}
	}
	res := ApplyResult{Success: true}
	l.place(state, def, durationTicks, false, 1, source, &res)
	res.Events = append(res.Events, l.RefreshDeepEffects(state)...)
	return res
}

func (l Lifecycle) place(state *SessionState, def EffectDefinition, duration int, stackable bool, maxStacks int, source string, res *ApplyResult) {
	if def.Category == CategoryArchetype {
		for _, id := range archetypeInstances(l.Catalog, state) {
			if id != def.ID {
				l.clear(state, id, res)
			}
		}
		// The instance takes over the exclusion slot.
		if state.Vitals.Archetype != "" && state.Vitals.Archetype != def.ID {
			state.Vitals.Archetype = ""
		}
	}
	inst := upsert(state, def.ID, duration, stackable, maxStacks, source)
	res.Applied = append(res.Applied, inst)
	res.Events = append(res.Events, l.event(EventEffectApplied, map[string]any{
		"id":                 string(def.ID),
		"definition":         def,
		"stacks":             inst.Stacks,
		"remaining_messages": inst.RemainingMessages,
		"source":             inst.Source,
	}))
}

func (l Lifecycle) clear(state *SessionState, id EffectID, res *ApplyResult) {
	i := state.findEffect(id)
	if i < 0 {
		return
	}
	state.removeAt(i)
	res.Cleared = append(res.Cleared, id)
	res.Events = append(res.Events, l.event(EventEffectRemoved, map[string]any{"id": string(id)}))
}

func upsert(state *SessionState, id EffectID, duration int, stackable bool, maxStacks int, source string) ActiveEffect {
	if i := state.findEffect(id); i >= 0 {
		inst := &state.Vitals.ActiveEffects[i]
		if stackable && inst.Stacks < maxStacks {
			inst.Stacks++
		}
		inst.RemainingMessages = duration
		return *inst
	}
	inst := ActiveEffect{ID: id, RemainingMessages: duration, Stacks: 1, Source: source}
	state.Vitals.ActiveEffects = append(state.Vitals.ActiveEffects, inst)
	return inst
}

// Tick advances every instance by one message. Instances reaching zero are
// removed and run their withdrawal check exactly once.
func (l Lifecycle) Tick(state *SessionState) TickResult {
	if state == nil {
		return TickResult{}
	}
	state.Tick++
	var res TickResult
	remaining := make([]ActiveEffect, 0, len(state.Vitals.ActiveEffects))
	for _, e := range state.Vitals.ActiveEffects {
		e.RemainingMessages--
		if e.RemainingMessages <= 0 {
			res.Expired = append(res.Expired, e)
			continue
		}
		remaining = append(remaining, e)
	}
	state.Vitals.ActiveEffects = remaining

	for _, e := range res.Expired {
		res.Events = append(res.Events, l.event(EventEffectRemoved, map[string]any{"id": string(e.ID), "expired": true}))
		if out, ok := l.checkWithdrawal(state, e.ID, &res.Events); ok {
			res.Withdrawals = append(res.Withdrawals, out)
		}
	}
	res.Remaining = append([]ActiveEffect(nil), state.Vitals.ActiveEffects...)
	res.Events = append(res.Events, l.RefreshDeepEffects(state)...)
	return res
}

func (l Lifecycle) checkWithdrawal(state *SessionState, expired EffectID, events *[]DomainEvent) (WithdrawalOutcome, bool) {
	rule, ok := l.Catalog.Withdrawal(expired)
	if !ok {
		return WithdrawalOutcome{}, false
	}
	out := WithdrawalOutcome{ExpiredID: expired}
	if rule.Threshold != nil {
		out.Category = rule.Threshold.Category
		out.Level = state.AddictionLevel(rule.Threshold.Category)
		if out.Level < rule.Threshold.MinSeverity || rule.WithdrawalEffectID == "" {
			out.Averted = true
			*events = append(*events, l.event(EventWithdrawalAverted, map[string]any{
				"id":       string(expired),
				"category": out.Category,
				"level":    out.Level,
			}))
			return out, true
		}
	}
	def, ok := l.Catalog.Effect(rule.WithdrawalEffectID)
	if !ok || rule.DurationTicks <= 0 {
		return WithdrawalOutcome{}, false
	}
	var res ApplyResult
	l.place(state, def, rule.DurationTicks, false, 1, SourceWithdrawal, &res)
	*events = append(*events, res.Events...)
	inst := res.Applied[len(res.Applied)-1]
	out.Applied = &inst
	return out, true
}

// SelectArchetype fills or clears the archetype slot and reports the
// conflicting archetype instances it removed.
func (l Lifecycle) SelectArchetype(state *SessionState, id EffectID) (bool, []DomainEvent) {
	if state == nil {
		return false, nil
	}
	before := archetypeInstances(l.Catalog, state)
	if !SelectArchetype(l.Catalog, state, id) {
		return false, nil
	}
	var events []DomainEvent
	for _, prev := range before {
		if !state.HasEffect(prev) {
			events = append(events, l.event(EventEffectRemoved, map[string]any{"id": string(prev)}))
		}
	}
	events = append(events, l.RefreshDeepEffects(state)...)
	return true, events
}

func archetypeInstances(c *Catalog, state *SessionState) []EffectID {
	var out []EffectID
	for _, e := range state.Vitals.ActiveEffects {
		if def, ok := c.Effect(e.ID); ok && def.Category == CategoryArchetype {
			out = append(out, e.ID)
		}
	}
	return out
}

// Remove deletes an instance by hand. Manual removal never triggers withdrawal.
func (l Lifecycle) Remove(state *SessionState, id EffectID) RemoveResult {
	if state == nil {
		return RemoveResult{}
	}
	i := state.findEffect(id)
	if i < 0 {
		return RemoveResult{}
	}
	removed := state.removeAt(i)
	events := []DomainEvent{l.event(EventEffectRemoved, map[string]any{"id": string(id)})}
	events = append(events, l.RefreshDeepEffects(state)...)
	return RemoveResult{Success: true, Removed: removed, Events: events}
}

// SkillModifiers sums +stacks per boosted skill and -stacks per debuffed skill.
func (l Lifecycle) SkillModifiers(effects []ActiveEffect) map[Skill]int {
	out := map[Skill]int{}
	for _, e := range effects {
		def, ok := l.Catalog.Effect(e.ID)
		if !ok {
			continue
		}
		addDefinition(out, def, e.Stacks)
	}
	return out
}

func addDefinition(out map[Skill]int, def EffectDefinition, weight int) {
	for _, s := range def.Boosts {
		out[s] += weight
	}
	for _, s := range def.Debuffs {
		out[s] -= weight
	}
}

// RefreshDeepEffects recomputes the deep effects from the active set and
// reports the ones that appeared or disappeared.
func (l Lifecycle) RefreshDeepEffects(state *SessionState) []DomainEvent {
	next := ResolveDeepEffects(l.Catalog, state.ActiveIDs())
	awakened, faded := DiffDeepEffects(state.DeepEffects, next)
	state.DeepEffects = next
	events := make([]DomainEvent, 0, len(awakened)+len(faded))
	for _, id := range awakened {
		events = append(events, l.event(EventDeepEffectAwakened, map[string]any{"id": string(id)}))
	}
	for _, id := range faded {
		events = append(events, l.event(EventDeepEffectFaded, map[string]any{"id": string(id)}))
	}
	return events
}

func (l Lifecycle) event(typ string, payload map[string]any) DomainEvent {
	return DomainEvent{Type: typ, OccurredAt: l.now(), Payload: payload}
}
