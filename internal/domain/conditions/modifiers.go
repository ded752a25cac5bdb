package conditions

// Aggregator combines time-limited effect modifiers with the selected
// archetype slot. Dice-roll and narration code read skills through it.
type Aggregator struct {
	Catalog *Catalog
}

type ModifierView struct {
	all map[Skill]int
}

func (a Aggregator) For(state SessionState) ModifierView {
	out := Lifecycle{Catalog: a.Catalog}.SkillModifiers(state.Vitals.ActiveEffects)
	if id := state.Vitals.Archetype; id != "" && len(archetypeInstances(a.Catalog, &state)) == 0 {
		if def, ok := a.Catalog.Effect(id); ok && def.Category == CategoryArchetype {
			addDefinition(out, def, 1)
		}
	}
	return ModifierView{all: out}
}

func (v ModifierView) Modifier(skill Skill) int {
	return v.all[skill]
}

// All returns a copy holding only the non-zero modifiers.
func (v ModifierView) All() map[Skill]int {
	out := make(map[Skill]int, len(v.all))
	for k, n := range v.all {
		if n != 0 {
			out[k] = n
		}
	}
	return out
}

// SelectArchetype fills the persistent archetype slot. An empty id clears it.
// Archetype instances other than id are removed so only one archetype is held.
func SelectArchetype(c *Catalog, state *SessionState, id EffectID) bool {
	if id == "" {
		state.Vitals.Archetype = ""
		return true
	}
	def, ok := c.Effect(id)
	if !ok || def.Category != CategoryArchetype {
		return false
	}
	for _, other := range archetypeInstances(c, state) {
		if other != id {
			state.removeAt(state.findEffect(other))
		}
	}
	state.Vitals.Archetype = id
	return true
}
