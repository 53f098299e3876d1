package dispatch

import (
	"weave/internal/member"
	"weave/internal/unit"
)

// Validate checks a resolution order before the class is opened for
// instantiation: every member demanded abstract by any unit in the order
// must have at least one concrete provider somewhere in the order.
// Dispatch walks past abstract entries, so a concrete implementation
// behind an abstract re-declaration still satisfies the demand.
//
// The reported demanding unit is the front-most one.
func Validate(g *unit.Graph, class unit.UnitID, order []unit.UnitID) error {
	type demand struct {
		unit unit.UnitID
		pos  int
	}
	demands := make(map[string]demand)
	satisfied := make(map[string]bool)

	for pos, id := range order {
		u := g.Unit(id)
		if u == nil {
			continue
		}
		for _, m := range u.Members {
			switch m.Kind {
			case member.Concrete:
				satisfied[m.Name] = true
			case member.Abstract:
				if _, seen := demands[m.Name]; !seen {
					demands[m.Name] = demand{unit: id, pos: pos}
				}
			}
		}
	}

	// Детерминированный выбор: первый неудовлетворённый по позиции.
	var worst *UnresolvedAbstractMemberError
	worstPos := -1
	for name, d := range demands {
		if satisfied[name] {
			continue
		}
		if worst == nil || d.pos < worstPos || (d.pos == worstPos && name < worst.Member) {
			worst = &UnresolvedAbstractMemberError{
				Member:        name,
				DemandingUnit: g.Name(d.unit),
			}
			worstPos = d.pos
		}
	}
	if worst != nil {
		return worst
	}
	return nil
}
