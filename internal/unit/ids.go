package unit

// UnitID identifies a unit in the graph arena.
type UnitID uint32

const (
	// NoUnitID marks the absence of a unit reference.
	NoUnitID UnitID = 0
)

// IsValid reports whether the ID refers to an allocated unit.
func (id UnitID) IsValid() bool { return id != NoUnitID }
