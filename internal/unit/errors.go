package unit

import (
	"fmt"
	"strings"
)

// DuplicateUnitError indicates a unit name is already defined.
type DuplicateUnitError struct {
	Name string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("unit %q is already defined", e.Name)
}

// UnknownReferenceError indicates a mixin or base name that is not
// defined in the graph or the batch being defined.
type UnknownReferenceError struct {
	From string
	Ref  string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unit %q references unknown unit %q", e.From, e.Ref)
}

// CyclicCompositionError indicates a unit that would (transitively) mix
// itself in. Units lists the cycle participants.
type CyclicCompositionError struct {
	Units []string
}

func (e *CyclicCompositionError) Error() string {
	return fmt.Sprintf("cyclic composition: %s", strings.Join(e.Units, " -> "))
}

// NotFoundError indicates a lookup for an undefined unit name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unit %q is not defined", e.Name)
}
