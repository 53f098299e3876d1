package dispatch

import "fmt"

// UnresolvedAbstractMemberError indicates a member that is demanded
// abstract and never supplied a concrete implementation anywhere in the
// resolution order.
type UnresolvedAbstractMemberError struct {
	Member        string
	DemandingUnit string
}

func (e *UnresolvedAbstractMemberError) Error() string {
	if e.DemandingUnit == "" {
		return fmt.Sprintf("member %q has no concrete implementation", e.Member)
	}
	return fmt.Sprintf("member %q is abstract in %q and has no concrete implementation",
		e.Member, e.DemandingUnit)
}

// NoMoreProvidersError indicates a delegated call from the last concrete
// provider of a chain: the delegating unit was mixed in without a concrete
// provider behind it.
type NoMoreProvidersError struct {
	Member string
	Unit   string
}

func (e *NoMoreProvidersError) Error() string {
	return fmt.Sprintf("unit %q delegated %q past the end of its provider chain",
		e.Unit, e.Member)
}
