package unit

import (
	"fmt"

	"fortio.org/safecast"
)

// Units stores all defined units in a compact slice-based arena.
type Units struct {
	data []Unit
}

// NewUnits creates an arena with optional capacity hint.
func NewUnits(capacity uint32) *Units {
	if capacity == 0 {
		capacity = 32
	}
	return &Units{
		data: make([]Unit, 1, capacity+1), // index 0 reserved for NoUnitID
	}
}

// New allocates a unit in the arena and returns its ID.
func (u *Units) New(un *Unit) UnitID {
	if un == nil {
		panic("unit.Units.New: nil unit")
	}
	value, err := safecast.Conv[uint32](len(u.data))
	if err != nil {
		panic(fmt.Errorf("unit arena overflow: %w", err))
	}
	id := UnitID(value)
	u.data = append(u.data, *un)
	return id
}

// Get returns the unit pointer or nil for an invalid ID.
func (u *Units) Get(id UnitID) *Unit {
	if !id.IsValid() || int(id) >= len(u.data) {
		return nil
	}
	return &u.data[id]
}

// Len reports the number of stored units excluding the sentinel.
func (u *Units) Len() int { return len(u.data) - 1 }

// Data exposes the arena storage without the sentinel.
func (u *Units) Data() []Unit {
	if len(u.data) <= 1 {
		return nil
	}
	return u.data[1:]
}
