package conditions

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the read-only set of effect, consumable and withdrawal definitions.
// It must not be mutated after construction.
type Catalog struct {
	effects     map[EffectID]EffectDefinition
	consumables map[string]ConsumptionRule
	withdrawals map[EffectID]WithdrawalRule
	quotes      map[string]QuotePool
	deep        map[DeepEffectID]DeepEffectDefinition
	exact       []ExactTrigger
	combinators []CombinatorSet
}

type CatalogData struct {
	Effects       []EffectDefinition
	Consumables   []ConsumptionRule
	Withdrawals   []WithdrawalRule
	Quotes        map[string]QuotePool
	DeepEffects   []DeepEffectDefinition
	ExactTriggers []ExactTrigger
	Combinators   []CombinatorSet
}

func NewCatalog(data CatalogData) *Catalog {
	c := &Catalog{
		effects:     make(map[EffectID]EffectDefinition, len(data.Effects)),
		consumables: make(map[string]ConsumptionRule, len(data.Consumables)),
		withdrawals: make(map[EffectID]WithdrawalRule, len(data.Withdrawals)),
		quotes:      make(map[string]QuotePool, len(data.Quotes)),
		deep:        make(map[DeepEffectID]DeepEffectDefinition, len(data.DeepEffects)),
		exact:       append([]ExactTrigger(nil), data.ExactTriggers...),
		combinators: append([]CombinatorSet(nil), data.Combinators...),
	}
	for _, e := range data.Effects {
		c.effects[e.ID] = e
	}
	for _, r := range data.Consumables {
		c.consumables[r.Category] = r
	}
	for _, w := range data.Withdrawals {
		c.withdrawals[w.EffectID] = w
	}
	for k, q := range data.Quotes {
		c.quotes[k] = q
	}
	for _, d := range data.DeepEffects {
		c.deep[d.ID] = d
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(CatalogData{
		Effects:       defaultEffects,
		Consumables:   defaultConsumables,
		Withdrawals:   defaultWithdrawals,
		Quotes:        defaultQuotes,
		DeepEffects:   defaultDeepEffects,
		ExactTriggers: defaultExactTriggers,
		Combinators:   defaultCombinators,
	})
}

func (c *Catalog) Effect(id EffectID) (EffectDefinition, bool) {
	if c == nil {
		return EffectDefinition{}, false
	}
	def, ok := c.effects[id]
	return def, ok
}

func (c *Catalog) Consumable(category string) (ConsumptionRule, bool) {
	if c == nil {
		return ConsumptionRule{}, false
	}
	rule, ok := c.consumables[category]
	return rule, ok
}

func (c *Catalog) Withdrawal(id EffectID) (WithdrawalRule, bool) {
	if c == nil {
		return WithdrawalRule{}, false
	}
	rule, ok := c.withdrawals[id]
	return rule, ok
}

func (c *Catalog) Quotes(category string) QuotePool {
	if c == nil {
		return QuotePool{}
	}
	return c.quotes[category]
}

func (c *Catalog) DeepEffect(id DeepEffectID) (DeepEffectDefinition, bool) {
	if c == nil {
		return DeepEffectDefinition{}, false
	}
	def, ok := c.deep[id]
	return def, ok
}

// ConsumableCategories returns every known consumable category, sorted.
func (c *Catalog) ConsumableCategories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.consumables))
	for k := range c.consumables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Archetypes returns the archetype-category definitions sorted by id.
func (c *Catalog) Archetypes() []EffectDefinition {
	if c == nil {
		return nil
	}
	out := make([]EffectDefinition, 0)
	for _, def := range c.effects {
		if def.Category == CategoryArchetype {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StackCap is the highest stack count any consumable can build on id. Effects
// only reached through withdrawal, side effects or infliction cap at one.
func (c *Catalog) StackCap(id EffectID) int {
	limit := 1
	if c == nil {
		return limit
	}
	for _, r := range c.consumables {
		if r.TargetEffectID == id && r.Stackable && r.MaxStacks > limit {
			limit = r.MaxStacks
		}
	}
	return limit
}

func (c *Catalog) IsAddictive(category string) bool {
	rule, ok := c.Consumable(category)
	return ok && rule.Addictive
}

// Validate checks that every cross reference resolves and every rule is in range.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	for id, def := range c.effects {
		if def.Category == CategoryArchetype && def.ExclusionGroup == "" {
			return fmt.Errorf("%w: archetype %s has no exclusion group", ErrInvalidCatalog, id)
		}
		if def.Category != CategoryArchetype && def.ExclusionGroup != "" {
			return fmt.Errorf("%w: %s is not an archetype but has exclusion group", ErrInvalidCatalog, id)
		}
	}
	for cat, rule := range c.consumables {
		if rule.MaxStacks < 1 {
			return fmt.Errorf("%w: consumable %s max stacks %d", ErrInvalidCatalog, cat, rule.MaxStacks)
		}
		if rule.TargetEffectID != "" {
			if _, ok := c.effects[rule.TargetEffectID]; !ok {
				return fmt.Errorf("%w: consumable %s targets unknown effect %s", ErrInvalidCatalog, cat, rule.TargetEffectID)
			}
			if rule.DurationTicks <= 0 {
				return fmt.Errorf("%w: consumable %s duration %d", ErrInvalidCatalog, cat, rule.DurationTicks)
			}
		}
		if !rule.Stackable && rule.MaxStacks != 1 {
			return fmt.Errorf("%w: consumable %s is not stackable but max stacks is %d", ErrInvalidCatalog, cat, rule.MaxStacks)
		}
		for _, id := range rule.ClearsEffectIDs {
			if _, ok := c.effects[id]; !ok {
				return fmt.Errorf("%w: consumable %s clears unknown effect %s", ErrInvalidCatalog, cat, id)
			}
		}
		if rule.SideEffectID != "" {
			if _, ok := c.effects[rule.SideEffectID]; !ok {
				return fmt.Errorf("%w: consumable %s side effect %s unknown", ErrInvalidCatalog, cat, rule.SideEffectID)
			}
		}
		if rule.SideEffectChance < 0 || rule.SideEffectChance > 1 {
			return fmt.Errorf("%w: consumable %s side effect chance %v", ErrInvalidCatalog, cat, rule.SideEffectChance)
		}
	}
	for id, rule := range c.withdrawals {
		if _, ok := c.effects[id]; !ok {
			return fmt.Errorf("%w: withdrawal keyed by unknown effect %s", ErrInvalidCatalog, id)
		}
		if rule.WithdrawalEffectID != "" {
			if _, ok := c.effects[rule.WithdrawalEffectID]; !ok {
				return fmt.Errorf("%w: withdrawal %s applies unknown effect %s", ErrInvalidCatalog, id, rule.WithdrawalEffectID)
			}
			if rule.DurationTicks <= 0 {
				return fmt.Errorf("%w: withdrawal %s duration %d", ErrInvalidCatalog, id, rule.DurationTicks)
			}
		}
	}
	for _, t := range c.exact {
		def, ok := c.effects[t.Source]
		if !ok || def.Trigger.Kind != TriggerExact {
			return fmt.Errorf("%w: exact trigger source %s", ErrInvalidCatalog, t.Source)
		}
		for _, d := range t.Deep {
			if _, ok := c.deep[d]; !ok {
				return fmt.Errorf("%w: exact trigger %s names unknown deep effect %s", ErrInvalidCatalog, t.Source, d)
			}
		}
	}
	for _, set := range c.combinators {
		if set.Need < 1 || set.Need > len(set.Members) {
			return fmt.Errorf("%w: combinator %s needs %d of %d", ErrInvalidCatalog, set.Name, set.Need, len(set.Members))
		}
		if _, ok := c.deep[set.Deep]; !ok {
			return fmt.Errorf("%w: combinator %s names unknown deep effect %s", ErrInvalidCatalog, set.Name, set.Deep)
		}
		for _, m := range set.Members {
			def, ok := c.effects[m]
			if !ok || def.Trigger.Kind != TriggerCombinator || def.Trigger.Set != set.Name {
				return fmt.Errorf("%w: combinator %s member %s", ErrInvalidCatalog, set.Name, m)
			}
		}
	}
	return nil
}
