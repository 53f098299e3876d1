// Package linearize computes the total resolution order of a class over
// every unit reachable through its base chain and mixins.
//
// order(U) = [U] ++ merge(order(Tn), ..., order(T1), order(S)) for a unit
// with base S and mixins T1..Tn in declared order. merge concatenates its
// inputs left to right and keeps each unit at its first occurrence, so the
// last-declared mixin's ancestry takes precedence over the same ancestors
// reachable through earlier-declared mixins or the base.
package linearize

import (
	"fmt"

	"weave/internal/unit"
)

// Compute returns the resolution order for id. The unit itself is always
// first; every reachable unit appears exactly once.
func Compute(g *unit.Graph, id unit.UnitID) ([]unit.UnitID, error) {
	c := &computation{
		g:       g,
		memo:    make(map[unit.UnitID][]unit.UnitID),
		walking: make(map[unit.UnitID]bool),
	}
	return c.order(id)
}

type computation struct {
	g    *unit.Graph
	memo map[unit.UnitID][]unit.UnitID
	// walking guards against graphs that bypassed construction checks.
	walking map[unit.UnitID]bool
}

func (c *computation) order(id unit.UnitID) ([]unit.UnitID, error) {
	if cached, ok := c.memo[id]; ok {
		return cached, nil
	}
	u := c.g.Unit(id)
	if u == nil {
		return nil, fmt.Errorf("linearize: unknown unit id %d", id)
	}
	if c.walking[id] {
		return nil, &unit.CyclicCompositionError{Units: []string{u.Name, u.Name}}
	}
	c.walking[id] = true
	defer delete(c.walking, id)

	// Последний объявленный миксин сканируется первым.
	inputs := make([][]unit.UnitID, 0, len(u.Mixins)+1)
	for i := len(u.Mixins) - 1; i >= 0; i-- {
		sub, err := c.order(u.Mixins[i])
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, sub)
	}
	if u.Base.IsValid() {
		sub, err := c.order(u.Base)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, sub)
	}

	merged, err := merge(c.g, u.Name, inputs)
	if err != nil {
		return nil, err
	}

	out := make([]unit.UnitID, 0, len(merged)+1)
	out = append(out, id)
	out = append(out, merged...)
	c.memo[id] = out
	return out, nil
}

// merge concatenates the input sequences left to right, keeping each unit
// at its first occurrence. A unit pair ordered one way in one input and
// the opposite way in another is a genuine inconsistency: no position
// assignment can respect both ancestries. Dropping a later duplicate of a
// shared ancestor is not (that is the diamond case).
func merge(g *unit.Graph, class string, inputs [][]unit.UnitID) ([]unit.UnitID, error) {
	var out []unit.UnitID
	pos := make(map[unit.UnitID]int)
	for _, seq := range inputs {
		for _, id := range seq {
			if _, seen := pos[id]; !seen {
				pos[id] = len(out)
				out = append(out, id)
			}
		}
	}

	type pair struct{ a, b unit.UnitID }
	before := make(map[pair]bool)
	for _, seq := range inputs {
		for i, u := range seq {
			for _, v := range seq[i+1:] {
				if before[pair{v, u}] {
					return nil, &InconsistentCompositionError{
						Class:  class,
						First:  g.Name(v),
						Second: g.Name(u),
					}
				}
				before[pair{u, v}] = true
			}
		}
	}
	return out, nil
}
