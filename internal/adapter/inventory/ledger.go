package inventory

import (
	"errors"
	"strings"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"

	"github.com/agnivade/levenshtein"
)

var ErrItemNotHeld = errors.New("item not held")

// Binder hands out ledgers over the inventory carried in session state.
type Binder struct {
	Catalog *conditions.Catalog
}

func (b Binder) Bind(state *conditions.SessionState) ports.SessionInventory {
	return &Ledger{state: state, catalog: b.Catalog}
}

// Ledger reads and edits the item list of one loaded session. Item types
// written by a host are loose ("Cigarettes", "healing item"), so they are
// matched to consumable categories with a small edit-distance budget.
type Ledger struct {
	state   *conditions.SessionState
	catalog *conditions.Catalog
}

func (l *Ledger) Find(category string) (conditions.Item, bool) {
	for _, it := range l.state.Inventory.Items {
		if cat, ok := l.CategoryOf(it); ok && cat == category {
			return it, true
		}
	}
	return conditions.Item{}, false
}

func (l *Ledger) FindByName(name string) (conditions.Item, bool) {
	want := strings.TrimSpace(name)
	for _, it := range l.state.Inventory.Items {
		if strings.EqualFold(strings.TrimSpace(it.Name), want) {
			return it, true
		}
	}
	return conditions.Item{}, false
}

// CategoryOf resolves an item type to a consumable category: exact first,
// then a trailing plural "s", then the closest category within the edit
// budget. Ties go to the alphabetically first category.
func (l *Ledger) CategoryOf(item conditions.Item) (string, bool) {
	typ := normalizeType(item.Type)
	if typ == "" {
		return "", false
	}
	if _, ok := l.catalog.Consumable(typ); ok {
		return typ, true
	}
	if trimmed := strings.TrimSuffix(typ, "s"); trimmed != typ {
		if _, ok := l.catalog.Consumable(trimmed); ok {
			return trimmed, true
		}
	}
	if len(typ) < 3 {
		return "", false
	}
	best, bestDist := "", -1
	for _, cat := range l.catalog.ConsumableCategories() {
		dist := levenshtein.ComputeDistance(typ, cat)
		if dist > distanceLimit(len(cat)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cat, dist
		}
	}
	return best, bestDist >= 0
}

// Consume removes one matching item.
func (l *Ledger) Consume(item conditions.Item) error {
	items := l.state.Inventory.Items
	for i, it := range items {
		if it == item {
			l.state.Inventory.Items = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotHeld
}

func (l *Ledger) Add(item conditions.Item) {
	l.state.Inventory.Items = append(l.state.Inventory.Items, item)
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	return strings.Join(strings.FieldsFunc(t, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	}), "-")
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
