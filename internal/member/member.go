package member

// Kind classifies a member definition inside a unit.
type Kind uint8

const (
	// Abstract declares the member without a body; some unit in the
	// resolution order must supply a concrete implementation before the
	// owning class can be instantiated.
	Abstract Kind = iota
	// Concrete supplies a callable body.
	Concrete
)

func (k Kind) String() string {
	switch k {
	case Abstract:
		return "abstract"
	case Concrete:
		return "concrete"
	}
	return "unknown"
}

// Value is the dynamic value vocabulary of the call layer.
type Value = any

// Body is the callable implementation of a concrete member.
type Body func(call *Call) (Value, error)

// Member is one named definition carried by a unit.
type Member struct {
	Name string
	Kind Kind
	// Delegates marks a concrete body that intends to call Call.Next.
	Delegates bool
	// Body is nil for Abstract members.
	Body Body
}
