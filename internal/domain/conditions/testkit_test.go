package conditions

import "time"

type scriptedDice struct {
	floats []float64
	ints   []int
}

func (d *scriptedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.99
	}
	v := d.floats[0]
	d.floats = d.floats[1:]
	return v
}

func (d *scriptedDice) IntN(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[0]
	d.ints = d.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func newTestLifecycle(d *scriptedDice) Lifecycle {
	if d == nil {
		d = &scriptedDice{}
	}
	fixed := time.Unix(1700000000, 0)
	return Lifecycle{Catalog: DefaultCatalog(), Dice: d, Now: func() time.Time { return fixed }}
}

func eventTypes(events []DomainEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func countEvents(events []DomainEvent, typ string) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}
