package member

import "fmt"

// Marker identifies which provider in a member's chain is currently
// executing. It is valid only for the dynamic extent of one call and
// must not be stored across calls.
type Marker struct {
	Member string
	// Pos is the provider's position in the class resolution order.
	Pos int
}

// Receiver is the view of an instance the call layer needs.
type Receiver interface {
	Field(name string) (Value, bool)
	SetField(name string, v Value)
}

// NextFunc resolves a delegated call to the next concrete provider.
// Installed by the dispatch layer when the call is constructed.
type NextFunc func(args []Value) (Value, error)

// Call carries the dynamic state of one member invocation.
type Call struct {
	Receiver Receiver
	Member   string
	Args     []Value
	Marker   Marker

	next NextFunc
}

// NewCall constructs a call bound to the given provider position.
func NewCall(recv Receiver, name string, args []Value, m Marker, next NextFunc) *Call {
	return &Call{
		Receiver: recv,
		Member:   name,
		Args:     args,
		Marker:   m,
		next:     next,
	}
}

// Next delegates to the next concrete provider in the chain.
// Called with no arguments it forwards the current arguments.
func (c *Call) Next(args ...Value) (Value, error) {
	if c.next == nil {
		return nil, fmt.Errorf("member %q: delegation is not available outside dispatch", c.Member)
	}
	if len(args) == 0 {
		args = c.Args
	}
	return c.next(args)
}
