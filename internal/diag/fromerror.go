package diag

import (
	"errors"
	"strings"

	"weave/internal/dispatch"
	"weave/internal/linearize"
	"weave/internal/unit"
)

// FromError maps a typed composition error onto a diagnostic. subject is
// the class or unit the operation was about; specific error types refine
// it where they carry a better one.
func FromError(subject string, err error) Diagnostic {
	var (
		dup *unit.DuplicateUnitError
		unk *unit.UnknownReferenceError
		cyc *unit.CyclicCompositionError
		nf  *unit.NotFoundError
		inc *linearize.InconsistentCompositionError
		una *dispatch.UnresolvedAbstractMemberError
		nmp *dispatch.NoMoreProvidersError
	)
	switch {
	case errors.As(err, &dup):
		return Diagnostic{
			Severity: SevError, Code: GraphDuplicateUnit,
			Subject: dup.Name, Message: err.Error(),
		}
	case errors.As(err, &unk):
		return Diagnostic{
			Severity: SevError, Code: GraphUnknownReference,
			Subject: unk.From, Message: err.Error(),
		}
	case errors.As(err, &cyc):
		d := Diagnostic{
			Severity: SevError, Code: GraphCyclicComposition,
			Subject: subject, Message: err.Error(),
		}
		if len(cyc.Units) > 0 {
			d.Subject = cyc.Units[0]
			d = d.WithNote("", "cycle participants: "+strings.Join(cyc.Units, ", "))
		}
		return d
	case errors.As(err, &nf):
		return Diagnostic{
			Severity: SevError, Code: GraphUnitNotFound,
			Subject: nf.Name, Message: err.Error(),
		}
	case errors.As(err, &inc):
		return Diagnostic{
			Severity: SevError, Code: LinInconsistentComposition,
			Subject: inc.Class, Message: err.Error(),
		}
	case errors.As(err, &una):
		return Diagnostic{
			Severity: SevError, Code: ValUnresolvedAbstractMember,
			Subject: subject, Message: err.Error(),
		}
	case errors.As(err, &nmp):
		return Diagnostic{
			Severity: SevError, Code: CallNoMoreProviders,
			Subject: subject, Message: err.Error(),
		}
	}
	return Diagnostic{
		Severity: SevError, Code: UnknownCode,
		Subject: subject, Message: err.Error(),
	}
}
