package linearize

import "fmt"

// InconsistentCompositionError indicates two units whose relative order
// cannot be reconciled across the merge inputs of a class.
type InconsistentCompositionError struct {
	Class  string
	First  string
	Second string
}

func (e *InconsistentCompositionError) Error() string {
	return fmt.Sprintf("class %q: units %q and %q cannot be consistently linearized",
		e.Class, e.First, e.Second)
}
