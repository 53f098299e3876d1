package testkit

import (
	"fmt"

	"weave/internal/unit"
)

// CheckOrderInvariants runs the structural invariants every computed
// resolution order must satisfy:
//  1. the class itself is first
//  2. no unit appears twice
//  3. the order contains exactly the units reachable from the class
//  4. the class's last-declared mixin is the order's second entry (the
//     closest provider after the class itself); with no mixins, the base
//     is second
func CheckOrderInvariants(g *unit.Graph, class unit.UnitID, order []unit.UnitID) error {
	if len(order) == 0 {
		return fmt.Errorf("empty resolution order")
	}
	if order[0] != class {
		return fmt.Errorf("order starts with %q, want class %q", g.Name(order[0]), g.Name(class))
	}

	pos := make(map[unit.UnitID]int, len(order))
	for i, id := range order {
		if prev, dup := pos[id]; dup {
			return fmt.Errorf("unit %q appears twice, at %d and %d", g.Name(id), prev, i)
		}
		pos[id] = i
	}

	reachable := make(map[unit.UnitID]bool)
	var walk func(id unit.UnitID)
	walk = func(id unit.UnitID) {
		if !id.IsValid() || reachable[id] {
			return
		}
		reachable[id] = true
		u := g.Unit(id)
		if u == nil {
			return
		}
		for _, mix := range u.Mixins {
			walk(mix)
		}
		walk(u.Base)
	}
	walk(class)

	for id := range reachable {
		if _, ok := pos[id]; !ok {
			return fmt.Errorf("reachable unit %q missing from order", g.Name(id))
		}
	}
	for _, id := range order {
		if !reachable[id] {
			return fmt.Errorf("unreachable unit %q present in order", g.Name(id))
		}
	}

	cls := g.Unit(class)
	if cls == nil {
		return fmt.Errorf("nil unit for class id=%d", class)
	}
	var wantSecond unit.UnitID
	if n := len(cls.Mixins); n > 0 {
		wantSecond = cls.Mixins[n-1]
	} else if cls.Base.IsValid() {
		wantSecond = cls.Base
	}
	if wantSecond.IsValid() {
		if len(order) < 2 || order[1] != wantSecond {
			return fmt.Errorf("order[1] = %q, want closest ancestor %q",
				g.Name(order[1]), g.Name(wantSecond))
		}
	}
	return nil
}
