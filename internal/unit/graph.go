package unit

import (
	"fmt"
	"sort"
)

// Graph is the append-only store of unit definitions for one composition
// session. A failed define leaves the graph exactly as it was.
type Graph struct {
	units  *Units
	byName map[string]UnitID
}

// NewGraph creates an empty unit graph.
func NewGraph() *Graph {
	return &Graph{
		units:  NewUnits(0),
		byName: make(map[string]UnitID),
	}
}

// Define adds a single unit whose references must already be defined.
func (g *Graph) Define(def Def) (UnitID, error) {
	if err := g.checkDef(&def); err != nil {
		return NoUnitID, err
	}
	resolved := Unit{Name: def.Name, Members: def.Members}
	for _, name := range def.Mixins {
		id, ok := g.byName[name]
		if !ok {
			return NoUnitID, &UnknownReferenceError{From: def.Name, Ref: name}
		}
		resolved.Mixins = append(resolved.Mixins, id)
	}
	if def.Base != "" {
		id, ok := g.byName[def.Base]
		if !ok {
			return NoUnitID, &UnknownReferenceError{From: def.Name, Ref: def.Base}
		}
		resolved.Base = id
	}
	id := g.units.New(&resolved)
	g.byName[def.Name] = id
	return id, nil
}

// DefineBatch adds a set of units whose references may resolve to other
// members of the same batch, in any textual order. The batch is validated
// as a whole before anything is appended; on error the graph is untouched.
// Returned IDs are in input order.
func (g *Graph) DefineBatch(defs []Def) ([]UnitID, error) {
	if len(defs) == 0 {
		return nil, nil
	}

	inBatch := make(map[string]int, len(defs))
	for i := range defs {
		if err := g.checkDef(&defs[i]); err != nil {
			return nil, err
		}
		if _, dup := inBatch[defs[i].Name]; dup {
			return nil, &DuplicateUnitError{Name: defs[i].Name}
		}
		inBatch[defs[i].Name] = i
	}

	// Внутренние рёбра батча: dep -> dependent, для Kahn.
	edges := make([][]int, len(defs))
	indeg := make([]int, len(defs))
	for i := range defs {
		def := &defs[i]
		for _, ref := range def.refs() {
			if _, ok := g.byName[ref]; ok {
				continue
			}
			dep, ok := inBatch[ref]
			if !ok {
				return nil, &UnknownReferenceError{From: def.Name, Ref: ref}
			}
			edges[dep] = append(edges[dep], i)
			indeg[i]++
		}
	}

	order, cyclic := toposort(edges, indeg)
	if len(cyclic) > 0 {
		names := make([]string, 0, len(cyclic))
		for _, i := range cyclic {
			names = append(names, defs[i].Name)
		}
		sort.Strings(names)
		return nil, &CyclicCompositionError{Units: names}
	}

	ids := make([]UnitID, len(defs))
	for _, i := range order {
		def := &defs[i]
		resolved := Unit{Name: def.Name, Members: def.Members}
		for _, name := range def.Mixins {
			resolved.Mixins = append(resolved.Mixins, g.byName[name])
		}
		if def.Base != "" {
			resolved.Base = g.byName[def.Base]
		}
		id := g.units.New(&resolved)
		g.byName[def.Name] = id
		ids[i] = id
	}
	return ids, nil
}

// checkDef validates the parts of a definition that do not depend on
// reference resolution.
func (g *Graph) checkDef(def *Def) error {
	if def.Name == "" {
		return fmt.Errorf("unit name must not be empty")
	}
	if _, dup := g.byName[def.Name]; dup {
		return &DuplicateUnitError{Name: def.Name}
	}
	for _, ref := range def.refs() {
		if ref == def.Name {
			return &CyclicCompositionError{Units: []string{def.Name, def.Name}}
		}
	}
	seen := make(map[string]struct{}, len(def.Members))
	for _, m := range def.Members {
		if m.Name == "" {
			return fmt.Errorf("unit %q: member name must not be empty", def.Name)
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("unit %q defines member %q twice", def.Name, m.Name)
		}
		seen[m.Name] = struct{}{}
	}
	return nil
}

// refs yields the base (if any) and mixins of a definition.
func (d *Def) refs() []string {
	out := make([]string, 0, len(d.Mixins)+1)
	out = append(out, d.Mixins...)
	if d.Base != "" {
		out = append(out, d.Base)
	}
	return out
}

// toposort runs Kahn's algorithm over batch-local edges. It returns the
// visit order (dependencies first) and the indices left in a cycle.
func toposort(edges [][]int, indeg []int) (order, cyclic []int) {
	n := len(edges)
	order = make([]int, 0, n)

	current := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indeg[i] == 0 {
			current = append(current, i)
		}
	}
	sort.Ints(current)

	for len(current) > 0 {
		next := make([]int, 0)
		for _, i := range current {
			order = append(order, i)
			for _, to := range edges[i] {
				indeg[to]--
				if indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		sort.Ints(next)
		current = next
	}

	if len(order) != n {
		for i := 0; i < n; i++ {
			if indeg[i] > 0 {
				cyclic = append(cyclic, i)
			}
		}
	}
	return order, cyclic
}

// Lookup resolves a unit name to its ID.
func (g *Graph) Lookup(name string) (UnitID, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// LookupUnit resolves a unit name to its definition.
func (g *Graph) LookupUnit(name string) (*Unit, error) {
	id, ok := g.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return g.units.Get(id), nil
}

// Unit returns the definition for id, nil if invalid.
func (g *Graph) Unit(id UnitID) *Unit {
	return g.units.Get(id)
}

// Name returns the unit name for id, empty if invalid.
func (g *Graph) Name(id UnitID) string {
	if u := g.units.Get(id); u != nil {
		return u.Name
	}
	return ""
}

// Len reports the number of defined units.
func (g *Graph) Len() int { return g.units.Len() }

// Names returns all defined unit names in sorted order.
func (g *Graph) Names() []string {
	out := make([]string, 0, len(g.byName))
	for name := range g.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
