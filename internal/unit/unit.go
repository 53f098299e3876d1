package unit

import "weave/internal/member"

// Unit is one class or mixin participating in composition. Units are
// immutable once defined; the graph hands out pointers for reading only.
type Unit struct {
	Name    string
	Members []member.Member
	// Mixins in declared order, first-declared first. The last entry is
	// the "closest" mixin for dispatch.
	Mixins []UnitID
	// Base is NoUnitID when the unit has no base class.
	Base UnitID
}

// Member returns the unit's own definition of name, if any.
func (u *Unit) Member(name string) (member.Member, bool) {
	for _, m := range u.Members {
		if m.Name == name {
			return m, true
		}
	}
	return member.Member{}, false
}

// Def is a fully-resolved unit definition handed in by the loading layer.
// References are by name; the graph resolves them at define time.
type Def struct {
	Name    string
	Members []member.Member
	// Mixins in declared order, first-declared first.
	Mixins []string
	// Base is empty when the unit has no base class.
	Base string
}
