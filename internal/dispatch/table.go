// Package dispatch materializes a class's resolution order into provider
// chains and resolves external and delegated calls against them. The
// "closest mixin wins, delegation walks backward" semantics live here
// rather than in Go's own method dispatch so they stay reproducible.
package dispatch

import (
	"sort"

	"weave/internal/member"
	"weave/internal/unit"
)

// Provider is one unit's definition of a member at its resolution-order
// position.
type Provider struct {
	Unit      unit.UnitID
	Pos       int
	Kind      member.Kind
	Delegates bool
	Body      member.Body
}

// Chain is the ordered sub-sequence of providers for one member name,
// most specific first.
type Chain []Provider

// NextConcrete returns the first concrete provider with a position
// strictly after `after`. Pass -1 for the front of the chain.
func (ch Chain) NextConcrete(after int) (Provider, bool) {
	for _, p := range ch {
		if p.Pos <= after || p.Kind != member.Concrete {
			continue
		}
		return p, true
	}
	return Provider{}, false
}

// Table maps member names to provider chains for one finalized class.
// It is immutable once built.
type Table struct {
	g      *unit.Graph
	class  unit.UnitID
	order  []unit.UnitID
	chains map[string]Chain
}

// Build collects provider chains from every unit in the resolution order.
func Build(g *unit.Graph, class unit.UnitID, order []unit.UnitID) *Table {
	chains := make(map[string]Chain)
	for pos, id := range order {
		u := g.Unit(id)
		if u == nil {
			continue
		}
		for _, m := range u.Members {
			chains[m.Name] = append(chains[m.Name], Provider{
				Unit:      id,
				Pos:       pos,
				Kind:      m.Kind,
				Delegates: m.Delegates,
				Body:      m.Body,
			})
		}
	}
	return &Table{g: g, class: class, order: order, chains: chains}
}

// Class returns the owning class ID.
func (t *Table) Class() unit.UnitID { return t.class }

// Order returns the resolution order the table was built from.
func (t *Table) Order() []unit.UnitID { return t.order }

// Chain returns the provider chain for a member name.
func (t *Table) Chain(name string) (Chain, bool) {
	ch, ok := t.chains[name]
	return ch, ok
}

// Members returns every member name in the table, sorted.
func (t *Table) Members() []string {
	out := make([]string, 0, len(t.chains))
	for name := range t.chains {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// unitName resolves an ID for error messages.
func (t *Table) unitName(id unit.UnitID) string {
	return t.g.Name(id)
}
