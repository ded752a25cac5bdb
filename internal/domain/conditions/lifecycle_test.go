package conditions

import (
	"reflect"
	"testing"
)

func TestApply_UnknownCategoryIsNoop(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")

	res := l.Apply(&state, "moonshine-deluxe", ApplyOptions{})
	if res.Success {
		t.Fatalf("expected success=false for unknown category")
	}
	if len(state.Vitals.ActiveEffects) != 0 || len(res.Events) != 0 {
		t.Fatalf("expected untouched state, got effects=%v events=%v", state.Vitals.ActiveEffects, res.Events)
	}
}

func TestApply_NonStackableRefreshesWithoutStacking(t *testing.T) {
	c := DefaultCatalog()
	for _, cat := range c.ConsumableCategories() {
		rule, _ := c.Consumable(cat)
		if rule.Stackable || rule.TargetEffectID == "" {
			continue
		}
		t.Run(cat, func(t *testing.T) {
			l := newTestLifecycle(nil)
			state := NewSessionState("s1")
			l.Apply(&state, cat, ApplyOptions{})
			if rule.DurationTicks > 1 {
				l.Tick(&state)
			}
			l.Apply(&state, cat, ApplyOptions{})

			inst, ok := state.Effect(rule.TargetEffectID)
			if !ok {
				t.Fatalf("expected %s active", rule.TargetEffectID)
			}
			if inst.Stacks != 1 {
				t.Fatalf("stacks = %d, want 1", inst.Stacks)
			}
			if inst.RemainingMessages != rule.DurationTicks {
				t.Fatalf("remaining = %d, want %d", inst.RemainingMessages, rule.DurationTicks)
			}
		})
	}
}

func TestApply_StackableNeverExceedsMaxStacks(t *testing.T) {
	c := DefaultCatalog()
	for _, cat := range c.ConsumableCategories() {
		rule, _ := c.Consumable(cat)
		if !rule.Stackable {
			continue
		}
		t.Run(cat, func(t *testing.T) {
			l := newTestLifecycle(nil)
			state := NewSessionState("s1")
			for i := 0; i < rule.MaxStacks+4; i++ {
				l.Apply(&state, cat, ApplyOptions{})
				inst, _ := state.Effect(rule.TargetEffectID)
				if inst.Stacks > rule.MaxStacks {
					t.Fatalf("stacks = %d after %d applies, max %d", inst.Stacks, i+1, rule.MaxStacks)
				}
			}
			inst, _ := state.Effect(rule.TargetEffectID)
			if inst.Stacks != rule.MaxStacks {
				t.Fatalf("stacks = %d, want %d", inst.Stacks, rule.MaxStacks)
			}
			if inst.RemainingMessages != rule.DurationTicks {
				t.Fatalf("remaining = %d, want %d", inst.RemainingMessages, rule.DurationTicks)
			}
		})
	}
}

func TestApply_StimulantClearsExhaustion(t *testing.T) {
	l := newTestLifecycle(&scriptedDice{floats: []float64{0.99}})
	state := NewSessionState("s1")
	l.Inflict(&state, EffectExhaustion, 5, "overwork")

	res := l.Apply(&state, ConsumableStimulant, ApplyOptions{})
	if !res.Success {
		t.Fatalf("expected success")
	}
	if !reflect.DeepEqual(res.Cleared, []EffectID{EffectExhaustion}) {
		t.Fatalf("cleared = %v, want [exhaustion]", res.Cleared)
	}
	if state.HasEffect(EffectExhaustion) {
		t.Fatalf("exhaustion should be gone")
	}
	if !state.HasEffect(EffectStimulated) {
		t.Fatalf("stimulated should be active")
	}
	if got := countEvents(res.Events, EventEffectRemoved); got != 1 {
		t.Fatalf("effect-removed events = %d, want 1", got)
	}
}

func TestApply_SideEffectRollsOnceAndDoesNotChain(t *testing.T) {
	l := newTestLifecycle(&scriptedDice{floats: []float64{0.10}})
	state := NewSessionState("s1")

	res := l.Apply(&state, ConsumableAlcohol, ApplyOptions{})
	if res.SideEffect != EffectNauseous {
		t.Fatalf("side effect = %q, want nauseous", res.SideEffect)
	}
	inst, ok := state.Effect(EffectNauseous)
	if !ok || inst.Stacks != 1 {
		t.Fatalf("expected nauseous with 1 stack, got %+v ok=%v", inst, ok)
	}
	if inst.Source != ConsumableAlcohol {
		t.Fatalf("side effect source = %q", inst.Source)
	}
	if got := countEvents(res.Events, EventEffectApplied); got != 2 {
		t.Fatalf("effect-applied events = %d, want 2", got)
	}
}

func TestApply_SideEffectMissLeavesOnlyTarget(t *testing.T) {
	l := newTestLifecycle(&scriptedDice{floats: []float64{0.20}})
	state := NewSessionState("s1")

	res := l.Apply(&state, ConsumableAlcohol, ApplyOptions{})
	if res.SideEffect != "" || state.HasEffect(EffectNauseous) {
		t.Fatalf("side effect should not fire at 0.20 >= 0.15")
	}
}

func TestApply_HealingItemClearsWoundedAndHeals(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Vitals.Health = 50
	l.Inflict(&state, EffectWounded, 6, "fall")

	res := l.Apply(&state, ConsumableHealingItem, ApplyOptions{})
	if !res.Success || !res.Healing {
		t.Fatalf("expected healing success, got %+v", res)
	}
	if res.Heal.Health != 25 {
		t.Fatalf("heal = %+v", res.Heal)
	}
	if state.Vitals.Health != 75 {
		t.Fatalf("health = %d, want 75", state.Vitals.Health)
	}
	if state.HasEffect(EffectWounded) {
		t.Fatalf("wounded should be cleared")
	}
	if len(res.Applied) != 0 {
		t.Fatalf("healing path should not create instances, got %v", res.Applied)
	}
}

func TestApply_HealClampsAtMax(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Vitals.Health = 90

	l.Apply(&state, ConsumableHealingItem, ApplyOptions{})
	if state.Vitals.Health != MaxVital {
		t.Fatalf("health = %d, want %d", state.Vitals.Health, MaxVital)
	}
}

func TestApply_ArchetypeSlotIsExclusive(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")

	l.Apply(&state, ConsumableNecktie, ApplyOptions{})
	res := l.Apply(&state, ConsumableBadge, ApplyOptions{})

	if state.HasEffect(ArchetypeSuperstar) {
		t.Fatalf("superstar should have been displaced")
	}
	if !state.HasEffect(ArchetypeByTheBook) {
		t.Fatalf("by_the_book should be active")
	}
	if !reflect.DeepEqual(res.Cleared, []EffectID{ArchetypeSuperstar}) {
		t.Fatalf("cleared = %v", res.Cleared)
	}
	archetypes := 0
	for _, e := range state.Vitals.ActiveEffects {
		if def, _ := l.Catalog.Effect(e.ID); def.Category == CategoryArchetype {
			archetypes++
		}
	}
	if archetypes != 1 {
		t.Fatalf("archetype instances = %d, want 1", archetypes)
	}
}

func TestApply_EmitsVisualCue(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")

	res := l.Apply(&state, ConsumableCigarette, ApplyOptions{})
	var cue string
	for _, e := range res.Events {
		if e.Type == EventVisualCue {
			cue, _ = e.Payload["cue"].(string)
		}
	}
	if cue != "smoke" {
		t.Fatalf("cue = %q, want smoke", cue)
	}
}

func TestTick_ExpiryIsOneShotAndTriggersWithdrawalOnce(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Vitals.ActiveEffects = []ActiveEffect{{ID: EffectIntoxicated, RemainingMessages: 1, Stacks: 2, Source: ConsumableAlcohol}}

	res := l.Tick(&state)
	if len(res.Expired) != 1 || res.Expired[0].ID != EffectIntoxicated {
		t.Fatalf("expired = %v", res.Expired)
	}
	if state.HasEffect(EffectIntoxicated) {
		t.Fatalf("intoxicated should be gone after one tick")
	}
	if len(res.Withdrawals) != 1 || res.Withdrawals[0].Applied == nil || res.Withdrawals[0].Applied.ID != EffectHungover {
		t.Fatalf("withdrawals = %+v", res.Withdrawals)
	}
	hung, ok := state.Effect(EffectHungover)
	if !ok || hung.RemainingMessages != 4 || hung.Source != SourceWithdrawal {
		t.Fatalf("hungover = %+v ok=%v", hung, ok)
	}

	res = l.Tick(&state)
	if len(res.Withdrawals) != 0 {
		t.Fatalf("withdrawal fired again: %+v", res.Withdrawals)
	}
}

func TestTick_DecrementsAndPartitions(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Vitals.ActiveEffects = []ActiveEffect{
		{ID: EffectWellFed, RemainingMessages: 3, Stacks: 1},
		{ID: EffectInspired, RemainingMessages: 1, Stacks: 1},
	}

	res := l.Tick(&state)
	if len(res.Remaining) != 1 || res.Remaining[0].ID != EffectWellFed || res.Remaining[0].RemainingMessages != 2 {
		t.Fatalf("remaining = %+v", res.Remaining)
	}
	if len(res.Expired) != 1 || res.Expired[0].ID != EffectInspired {
		t.Fatalf("expired = %+v", res.Expired)
	}
	if len(res.Withdrawals) != 0 {
		t.Fatalf("inspired has no withdrawal rule, got %+v", res.Withdrawals)
	}
	if state.Tick != 1 {
		t.Fatalf("tick = %d, want 1", state.Tick)
	}
}

func TestRemove_ManualRemovalNeverWithdraws(t *testing.T) {
	l := newTestLifecycle(nil)
	manual := NewSessionState("manual")
	l.Inflict(&manual, EffectStimulated, 1, "test")

	res := l.Remove(&manual, EffectStimulated)
	if !res.Success {
		t.Fatalf("expected removal success")
	}
	if manual.HasEffect(EffectComedown) {
		t.Fatalf("manual removal must not apply withdrawal")
	}
	if got := eventTypes(res.Events); !reflect.DeepEqual(got, []string{EventEffectRemoved}) {
		t.Fatalf("events = %v", got)
	}

	natural := NewSessionState("natural")
	l.Inflict(&natural, EffectStimulated, 1, "test")
	l.Tick(&natural)
	if !natural.HasEffect(EffectComedown) {
		t.Fatalf("natural expiry must apply withdrawal")
	}
}

func TestRemove_MissingEffectFails(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	if res := l.Remove(&state, EffectWounded); res.Success {
		t.Fatalf("expected failure removing absent effect")
	}
}

func TestWithdrawal_ThresholdBelowSeverityIsAverted(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Inventory.Addictions[ConsumableCigarette] = Addiction{Level: 1}
	l.Inflict(&state, EffectNicotineBuzz, 1, "test")

	res := l.Tick(&state)
	if state.HasEffect(EffectNicotineWithdrawal) {
		t.Fatalf("withdrawal should be averted below threshold")
	}
	if len(res.Withdrawals) != 1 || !res.Withdrawals[0].Averted || res.Withdrawals[0].Level != 1 {
		t.Fatalf("withdrawals = %+v", res.Withdrawals)
	}
	if countEvents(res.Events, EventWithdrawalAverted) != 1 {
		t.Fatalf("expected one withdrawal-averted event, got %v", eventTypes(res.Events))
	}
}

func TestWithdrawal_ThresholdReachedAppliesEffect(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Inventory.Addictions[ConsumableCigarette] = Addiction{Level: 2}
	l.Inflict(&state, EffectNicotineBuzz, 1, "test")

	l.Tick(&state)
	inst, ok := state.Effect(EffectNicotineWithdrawal)
	if !ok || inst.RemainingMessages != 4 {
		t.Fatalf("nicotine withdrawal = %+v ok=%v", inst, ok)
	}
}

func TestWithdrawal_RefreshesInsteadOfStacking(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	state.Vitals.ActiveEffects = []ActiveEffect{
		{ID: EffectHungover, RemainingMessages: 3, Stacks: 1, Source: SourceWithdrawal},
		{ID: EffectIntoxicated, RemainingMessages: 1, Stacks: 1},
	}

	l.Tick(&state)
	inst, _ := state.Effect(EffectHungover)
	if inst.Stacks != 1 || inst.RemainingMessages != 4 {
		t.Fatalf("hungover = %+v, want 1 stack refreshed to 4", inst)
	}
}

func TestSkillModifiers_ScaleWithStacks(t *testing.T) {
	l := newTestLifecycle(nil)
	mods := l.SkillModifiers([]ActiveEffect{
		{ID: EffectIntoxicated, RemainingMessages: 3, Stacks: 2},
		{ID: EffectHungover, RemainingMessages: 3, Stacks: 1},
		{ID: "ghost", RemainingMessages: 3, Stacks: 5},
	})
	if mods[SkillElectrochemistry] != 2 {
		t.Fatalf("electrochemistry = %d, want 2", mods[SkillElectrochemistry])
	}
	if mods[SkillLogic] != -3 {
		t.Fatalf("logic = %d, want -3", mods[SkillLogic])
	}
	if mods[SkillInlandEmpire] != 1 {
		t.Fatalf("inland_empire = %d, want 1", mods[SkillInlandEmpire])
	}
}

func TestApply_RefreshesDeepEffects(t *testing.T) {
	l := newTestLifecycle(&scriptedDice{floats: []float64{0.99, 0.99}})
	state := NewSessionState("s1")

	l.Apply(&state, ConsumableAlcohol, ApplyOptions{})
	if len(state.DeepEffects) != 0 {
		t.Fatalf("one party member should not wake the spinal cord")
	}
	res := l.Apply(&state, ConsumableStimulant, ApplyOptions{})
	if !reflect.DeepEqual(state.DeepEffects, []DeepEffectID{DeepSpinalCord}) {
		t.Fatalf("deep effects = %v", state.DeepEffects)
	}
	if countEvents(res.Events, EventDeepEffectAwakened) != 1 {
		t.Fatalf("expected deep-effect-awakened, got %v", eventTypes(res.Events))
	}

	rm := l.Remove(&state, EffectIntoxicated)
	if len(state.DeepEffects) != 0 {
		t.Fatalf("deep effects after removal = %v", state.DeepEffects)
	}
	if countEvents(rm.Events, EventDeepEffectFaded) != 1 {
		t.Fatalf("expected deep-effect-faded, got %v", eventTypes(rm.Events))
	}
}

func TestInflict_RejectsBadInput(t *testing.T) {
	l := newTestLifecycle(nil)
	state := NewSessionState("s1")
	if res := l.Inflict(&state, "ghost", 3, "x"); res.Success {
		t.Fatalf("unknown effect should fail")
	}
	if res := l.Inflict(&state, EffectWounded, 0, "x"); res.Success {
		t.Fatalf("zero duration should fail")
	}
	if len(state.Vitals.ActiveEffects) != 0 {
		t.Fatalf("no instance may be created with non-positive duration")
	}
}
