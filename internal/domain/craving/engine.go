package craving

import (
	"errors"
	"sort"
	"time"

	"vitalsim/internal/domain/conditions"
)

const (
	BaseResistChance  = 0.30
	VolitionWeight    = 0.10
	SeverityWeight    = 0.10
	MinResistChance   = 0.05
	MaxResistChance   = 0.80
	MinThresholdTicks = 2
	MaxThresholdTicks = 3
)

// Inventory is the collaborator holding the persona's items. Consume must
// actually remove the item; an error means the relapse did not happen.
type Inventory interface {
	Find(category string) (conditions.Item, bool)
	Consume(item conditions.Item) error
}

var ErrNoInventory = errors.New("no inventory collaborator")

type Outcome string

const (
	OutcomeWaiting       Outcome = "waiting"
	OutcomeNoItem        Outcome = "no_item"
	OutcomeResisted      Outcome = "resisted"
	OutcomeSuccumbed     Outcome = "succumbed"
	OutcomeConsumeFailed Outcome = "consume_failed"
)

type CategoryReport struct {
	Category     string                    `json:"category"`
	Severity     int                       `json:"severity"`
	Outcome      Outcome                   `json:"outcome"`
	ResistChance float64                   `json:"resist_chance,omitempty"`
	Item         *conditions.Item          `json:"item,omitempty"`
	Quote        string                    `json:"quote,omitempty"`
	Applied      *conditions.ApplyResult   `json:"applied,omitempty"`
	Tracker      conditions.CravingTracker `json:"tracker"`
	Err          string                    `json:"error,omitempty"`
}

type Report struct {
	Categories []CategoryReport         `json:"categories"`
	Events     []conditions.DomainEvent `json:"-"`
}

// Engine runs one craving evaluation per message tick for every addiction
// with severity of at least one.
type Engine struct {
	Lifecycle conditions.Lifecycle
}

// ProcessTick visits addiction categories in sorted order. A nil
// Lifecycle.Dice draws from the global source.
func (e Engine) ProcessTick(state *conditions.SessionState, inv Inventory) Report {
	var rep Report
	if state == nil {
		return rep
	}
	if e.Lifecycle.Dice == nil {
		e.Lifecycle.Dice = conditions.GlobalDice{}
	}
	if state.Cravings == nil {
		state.Cravings = map[string]conditions.CravingTracker{}
	}
	categories := make([]string, 0, len(state.Inventory.Addictions))
	for cat, a := range state.Inventory.Addictions {
		if a.Level >= 1 {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)

	for _, cat := range categories {
		cr := e.processCategory(state, inv, cat, &rep.Events)
		rep.Categories = append(rep.Categories, cr)
	}
	return rep
}

func (e Engine) processCategory(state *conditions.SessionState, inv Inventory, category string, events *[]conditions.DomainEvent) CategoryReport {
	severity := state.AddictionLevel(category)
	tr, ok := state.Cravings[category]
	if !ok {
		tr = conditions.CravingTracker{NextCravingAt: e.drawThreshold(0)}
	}
	tr.MessagesSinceUse++
	state.Cravings[category] = tr

	cr := CategoryReport{Category: category, Severity: severity, Outcome: OutcomeWaiting, Tracker: tr}
	if tr.MessagesSinceUse < tr.NextCravingAt {
		return cr
	}
	if inv == nil {
		cr.Outcome = OutcomeConsumeFailed
		cr.Err = ErrNoInventory.Error()
		return cr
	}
	item, found := inv.Find(category)
	if !found {
		cr.Outcome = OutcomeNoItem
		return cr
	}
	cr.Item = &item

	volition := e.Lifecycle.SkillModifiers(state.Vitals.ActiveEffects)[conditions.SkillVolition]
	chance := ResistChance(volition, severity)
	cr.ResistChance = chance
	quotes := e.Lifecycle.Catalog.Quotes(category)

	if e.Lifecycle.Dice.Float64() < chance {
		tr = conditions.CravingTracker{NextCravingAt: e.drawThreshold(1)}
		state.Cravings[category] = tr
		cr.Outcome = OutcomeResisted
		cr.Quote = e.pick(quotes.Resist)
		cr.Tracker = tr
		*events = append(*events, e.event(conditions.EventCravingResisted, map[string]any{
			"category": category,
			"quote":    cr.Quote,
		}))
		return cr
	}

	if err := inv.Consume(item); err != nil {
		cr.Outcome = OutcomeConsumeFailed
		cr.Err = err.Error()
		return cr
	}
	tr = conditions.CravingTracker{NextCravingAt: e.drawThreshold(0)}
	state.Cravings[category] = tr
	applied := e.Lifecycle.Apply(state, category, conditions.ApplyOptions{Source: "craving:" + category})
	state.RecordUse(category)
	cr.Outcome = OutcomeSuccumbed
	cr.Quote = e.pick(quotes.Succumb)
	cr.Applied = &applied
	cr.Tracker = state.Cravings[category]

	*events = append(*events, e.event(conditions.EventCravingSuccumbed, map[string]any{
		"category": category,
		"item":     item.Name,
		"quote":    cr.Quote,
	}))
	*events = append(*events, applied.Events...)
	*events = append(*events, e.event(conditions.EventItemConsumed, map[string]any{
		"category": category,
		"item":     item.Name,
		"delay_ms": conditions.ItemConsumedDelayMs,
	}))
	return cr
}

// ResistChance is clamp(0.30 + 0.10*volition - 0.10*severity, 0.05, 0.80).
func ResistChance(volition, severity int) float64 {
	p := BaseResistChance + VolitionWeight*float64(volition) - SeverityWeight*float64(severity)
	if p < MinResistChance {
		return MinResistChance
	}
	if p > MaxResistChance {
		return MaxResistChance
	}
	return p
}

// drawThreshold picks uniformly in [MinThresholdTicks, MaxThresholdTicks]
// minus shorten, never below one.
func (e Engine) drawThreshold(shorten int) int {
	n := MinThresholdTicks + e.Lifecycle.Dice.IntN(MaxThresholdTicks-MinThresholdTicks+1) - shorten
	if n < 1 {
		return 1
	}
	return n
}

func (e Engine) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[e.Lifecycle.Dice.IntN(len(pool))]
}

func (e Engine) event(typ string, payload map[string]any) conditions.DomainEvent {
	now := time.Now
	if e.Lifecycle.Now != nil {
		now = e.Lifecycle.Now
	}
	return conditions.DomainEvent{Type: typ, OccurredAt: now(), Payload: payload}
}
