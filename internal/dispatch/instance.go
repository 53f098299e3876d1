package dispatch

import (
	"github.com/google/uuid"

	"weave/internal/member"
	"weave/internal/unit"
)

// Instance is a runtime object of a finalized class. Field access is not
// synchronized; an instance belongs to one call chain at a time.
type Instance struct {
	ID     uuid.UUID
	Class  unit.UnitID
	fields map[string]member.Value
}

// NewInstance mints an instance of a finalized class.
func NewInstance(class unit.UnitID) *Instance {
	return &Instance{
		ID:     uuid.New(),
		Class:  class,
		fields: make(map[string]member.Value),
	}
}

// Field reads an instance field.
func (in *Instance) Field(name string) (member.Value, bool) {
	v, ok := in.fields[name]
	return v, ok
}

// SetField writes an instance field.
func (in *Instance) SetField(name string, v member.Value) {
	in.fields[name] = v
}
