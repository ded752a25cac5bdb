package conditions

import "sort"

// ResolveDeepEffects decides which deep effects are active for a set of
// active primary effects. The result is sorted and depends only on the set.
//
// An exact trigger activates its whole pair whenever its source is present.
// A combinator activates its single deep effect when at least Need members
// are present; more members never amplify it.
func ResolveDeepEffects(c *Catalog, active map[EffectID]struct{}) []DeepEffectID {
	if c == nil || len(active) == 0 {
		return nil
	}
	found := map[DeepEffectID]struct{}{}
	for _, t := range c.exact {
		if _, ok := active[t.Source]; !ok {
			continue
		}
		for _, d := range t.Deep {
			found[d] = struct{}{}
		}
	}
	for _, set := range c.combinators {
		n := 0
		for _, m := range set.Members {
			if _, ok := active[m]; ok {
				n++
			}
		}
		if n >= set.Need {
			found[set.Deep] = struct{}{}
		}
	}
	if len(found) == 0 {
		return nil
	}
	out := make([]DeepEffectID, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func DiffDeepEffects(prev, next []DeepEffectID) (awakened, faded []DeepEffectID) {
	before := make(map[DeepEffectID]struct{}, len(prev))
	for _, id := range prev {
		before[id] = struct{}{}
	}
	after := make(map[DeepEffectID]struct{}, len(next))
	for _, id := range next {
		after[id] = struct{}{}
		if _, ok := before[id]; !ok {
			awakened = append(awakened, id)
		}
	}
	for _, id := range prev {
		if _, ok := after[id]; !ok {
			faded = append(faded, id)
		}
	}
	return awakened, faded
}
