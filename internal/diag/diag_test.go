package diag

import (
	"errors"
	"fmt"
	"testing"

	"weave/internal/dispatch"
	"weave/internal/linearize"
	"weave/internal/unit"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		added := b.Add(Diagnostic{
			Severity: SevError,
			Code:     GraphDuplicateUnit,
			Subject:  fmt.Sprintf("U%d", i),
		})
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Cap() != 2 {
		t.Fatalf("Cap = %d, want 2", b.Cap())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevInfo})
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatalf("HasErrors on warnings only")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatalf("HasErrors missed an error")
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Subject: "B", Severity: SevError, Code: GraphDuplicateUnit})
	b.Add(Diagnostic{Subject: "A", Severity: SevWarning, Code: LinInconsistentComposition})
	b.Add(Diagnostic{Subject: "A", Severity: SevError, Code: ValUnresolvedAbstractMember})
	b.Sort()

	items := b.Items()
	// Subject first, then severity descending.
	if items[0].Subject != "A" || items[0].Severity != SevError {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if items[1].Subject != "A" || items[1].Severity != SevWarning {
		t.Fatalf("items[1] = %+v", items[1])
	}
	if items[2].Subject != "B" {
		t.Fatalf("items[2] = %+v", items[2])
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Subject: "X"})
	b := NewBag(2)
	b.Add(Diagnostic{Subject: "Y"})
	b.Add(Diagnostic{Subject: "Z"})

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("merged Len = %d, want 3", a.Len())
	}
	if a.Cap() < 3 {
		t.Fatalf("merged Cap = %d, want >= 3", a.Cap())
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(2)
	var r Reporter = BagReporter{Bag: b}
	r.Report(GraphDuplicateUnit, SevError, "A", "dup", []Note{{Msg: "n"}})
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	d := b.Items()[0]
	if d.Code != GraphDuplicateUnit || d.Subject != "A" || len(d.Notes) != 1 {
		t.Fatalf("reported = %+v", d)
	}

	// Nil bag and the nop reporter both swallow silently.
	BagReporter{}.Report(GraphDuplicateUnit, SevError, "A", "dup", nil)
	NopReporter{}.Report(GraphDuplicateUnit, SevError, "A", "dup", nil)
}

func TestCodeString(t *testing.T) {
	if got := GraphCyclicComposition.String(); got != "WV1003" {
		t.Fatalf("Code.String() = %q, want WV1003", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity: SevError,
		Code:     LinInconsistentComposition,
		Subject:  "C",
		Message:  "inconsistent composition",
	}
	if got, want := d.String(), "ERROR[WV2001] C: inconsistent composition"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestFromError(t *testing.T) {
	cases := []struct {
		err     error
		code    Code
		subject string
	}{
		{&unit.DuplicateUnitError{Name: "A"}, GraphDuplicateUnit, "A"},
		{&unit.UnknownReferenceError{From: "B", Ref: "Ghost"}, GraphUnknownReference, "B"},
		{&unit.CyclicCompositionError{Units: []string{"P", "Q"}}, GraphCyclicComposition, "P"},
		{&unit.NotFoundError{Name: "Zed"}, GraphUnitNotFound, "Zed"},
		{&linearize.InconsistentCompositionError{Class: "C", First: "X", Second: "Y"}, LinInconsistentComposition, "C"},
		{&dispatch.UnresolvedAbstractMemberError{Member: "m", DemandingUnit: "U"}, ValUnresolvedAbstractMember, "subj"},
		{&dispatch.NoMoreProvidersError{Member: "m", Unit: "U"}, CallNoMoreProviders, "subj"},
		{errors.New("boom"), UnknownCode, "subj"},
	}
	for _, tc := range cases {
		d := FromError("subj", tc.err)
		if d.Code != tc.code {
			t.Fatalf("FromError(%T) code = %v, want %v", tc.err, d.Code, tc.code)
		}
		if d.Subject != tc.subject {
			t.Fatalf("FromError(%T) subject = %q, want %q", tc.err, d.Subject, tc.subject)
		}
		if d.Severity != SevError {
			t.Fatalf("FromError(%T) severity = %v", tc.err, d.Severity)
		}
	}
}

func TestFromErrorCycleNote(t *testing.T) {
	d := FromError("?", &unit.CyclicCompositionError{Units: []string{"P", "Q", "P"}})
	if len(d.Notes) != 1 {
		t.Fatalf("notes = %+v, want one participants note", d.Notes)
	}
	if want := "cycle participants: P, Q, P"; d.Notes[0].Msg != want {
		t.Fatalf("note = %q, want %q", d.Notes[0].Msg, want)
	}
}

func TestFromErrorUnwrapsWrapped(t *testing.T) {
	wrapped := fmt.Errorf("finalize: %w", &unit.NotFoundError{Name: "Lost"})
	d := FromError("ctx", wrapped)
	if d.Code != GraphUnitNotFound || d.Subject != "Lost" {
		t.Fatalf("wrapped FromError = %+v", d)
	}
}
