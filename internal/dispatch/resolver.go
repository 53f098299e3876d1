package dispatch

import "weave/internal/member"

// Invoke resolves an external call to the most specific concrete provider
// of name and executes it.
func (t *Table) Invoke(in *Instance, name string, args ...member.Value) (member.Value, error) {
	ch, ok := t.chains[name]
	if !ok {
		return nil, &UnresolvedAbstractMemberError{
			Member:        name,
			DemandingUnit: t.unitName(t.class),
		}
	}
	p, ok := ch.NextConcrete(-1)
	if !ok {
		return nil, t.unresolved(ch, name)
	}
	return t.run(in, name, args, p)
}

// InvokeNext resolves a delegated call to the next concrete provider
// after the position recorded in the marker.
func (t *Table) InvokeNext(in *Instance, m member.Marker, name string, args ...member.Value) (member.Value, error) {
	ch, ok := t.chains[name]
	if !ok {
		return nil, &UnresolvedAbstractMemberError{
			Member:        name,
			DemandingUnit: t.unitName(t.class),
		}
	}
	p, ok := ch.NextConcrete(m.Pos)
	if !ok {
		return nil, &NoMoreProvidersError{
			Member: name,
			Unit:   t.providerNameAt(ch, m.Pos),
		}
	}
	return t.run(in, name, args, p)
}

// run executes one provider with a fresh marker and delegation hook.
func (t *Table) run(in *Instance, name string, args []member.Value, p Provider) (member.Value, error) {
	if p.Body == nil {
		// Validation was skipped or the graph is malformed.
		return nil, &UnresolvedAbstractMemberError{
			Member:        name,
			DemandingUnit: t.unitName(p.Unit),
		}
	}
	marker := member.Marker{Member: name, Pos: p.Pos}
	call := member.NewCall(in, name, args, marker, func(nextArgs []member.Value) (member.Value, error) {
		return t.InvokeNext(in, marker, name, nextArgs...)
	})
	return p.Body(call)
}

// unresolved builds the error for a chain with no concrete provider at
// all, naming the front-most demanding unit.
func (t *Table) unresolved(ch Chain, name string) error {
	demanding := t.class
	if len(ch) > 0 {
		demanding = ch[0].Unit
	}
	return &UnresolvedAbstractMemberError{
		Member:        name,
		DemandingUnit: t.unitName(demanding),
	}
}

// providerNameAt names the provider at an order position for errors.
func (t *Table) providerNameAt(ch Chain, pos int) string {
	for _, p := range ch {
		if p.Pos == pos {
			return t.unitName(p.Unit)
		}
	}
	return t.unitName(t.class)
}
