package diag

import "fmt"

// Code identifies a diagnostic family and member.
type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Graph construction
	GraphInfo              Code = 1000
	GraphDuplicateUnit     Code = 1001
	GraphUnknownReference  Code = 1002
	GraphCyclicComposition Code = 1003
	GraphUnitNotFound      Code = 1004

	// Linearization
	LinInfo                    Code = 2000
	LinInconsistentComposition Code = 2001

	// Finalization validation
	ValInfo                     Code = 3000
	ValUnresolvedAbstractMember Code = 3001

	// Call time
	CallInfo            Code = 4000
	CallNoMoreProviders Code = 4001
)

func (c Code) String() string {
	return fmt.Sprintf("WV%04d", uint16(c))
}
