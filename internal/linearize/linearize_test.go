package linearize

import (
	"errors"
	"reflect"
	"testing"

	"weave/internal/testkit"
	"weave/internal/unit"
)

func mustDefine(t *testing.T, g *unit.Graph, name, base string, mixins ...string) unit.UnitID {
	t.Helper()
	id, err := g.Define(unit.Def{Name: name, Base: base, Mixins: mixins})
	if err != nil {
		t.Fatalf("define %s: %v", name, err)
	}
	return id
}

func names(g *unit.Graph, order []unit.UnitID) []string {
	out := make([]string, len(order))
	for i, id := range order {
		out[i] = g.Name(id)
	}
	return out
}

func computeNames(t *testing.T, g *unit.Graph, id unit.UnitID) []string {
	t.Helper()
	order, err := Compute(g, id)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := testkit.CheckOrderInvariants(g, id, order); err != nil {
		t.Fatalf("order invariants: %v", err)
	}
	return names(g, order)
}

func TestSingleInheritanceDegenerates(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "A", "")
	mustDefine(t, g, "B", "A")
	c := mustDefine(t, g, "C", "B")

	got := computeNames(t, g, c)
	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestLeafUnitIsItsOwnOrder(t *testing.T) {
	g := unit.NewGraph()
	a := mustDefine(t, g, "A", "")
	got := computeNames(t, g, a)
	if !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("order = %v, want [A]", got)
	}
}

func TestClosestMixinWins(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "Base", "")
	mustDefine(t, g, "A", "")
	mustDefine(t, g, "B", "")
	x := mustDefine(t, g, "X", "Base", "A", "B")

	got := computeNames(t, g, x)
	want := []string{"X", "B", "A", "Base"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestDiamondAppearsOnce(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "D", "")
	mustDefine(t, g, "A", "D")
	mustDefine(t, g, "B", "D")
	c := mustDefine(t, g, "C", "", "A", "B")

	got := computeNames(t, g, c)
	// D впервые встречается в order(B), который сканируется первым.
	want := []string{"C", "B", "D", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestClosestMixinAncestryBeatsBase(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "S", "")
	mustDefine(t, g, "T1", "")
	mustDefine(t, g, "T2", "S")
	c := mustDefine(t, g, "C", "S", "T1", "T2")

	got := computeNames(t, g, c)
	// S первым появляется внутри order(T2), раньше T1.
	want := []string{"C", "T2", "S", "T1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestDeepMixinChains(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "Root", "")
	mustDefine(t, g, "M1", "", "Root")
	mustDefine(t, g, "M2", "", "M1")
	mustDefine(t, g, "M3", "", "Root")
	c := mustDefine(t, g, "C", "", "M2", "M3")

	got := computeNames(t, g, c)
	want := []string{"C", "M3", "Root", "M2", "M1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestInconsistentComposition(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "X", "")
	mustDefine(t, g, "Y", "")
	mustDefine(t, g, "T1", "", "X", "Y")
	mustDefine(t, g, "T2", "", "Y", "X")
	c := mustDefine(t, g, "C", "", "T1", "T2")

	_, err := Compute(g, c)
	var inc *InconsistentCompositionError
	if !errors.As(err, &inc) {
		t.Fatalf("err = %v, want InconsistentCompositionError", err)
	}
	if inc.Class != "C" {
		t.Fatalf("inc.Class = %q, want %q", inc.Class, "C")
	}
	if inc.First == inc.Second {
		t.Fatalf("conflicting pair collapsed: %+v", inc)
	}
}

func TestComputeDeterministic(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, "Base", "")
	mustDefine(t, g, "A", "Base")
	mustDefine(t, g, "B", "Base")
	x := mustDefine(t, g, "X", "Base", "A", "B")

	first, err := Compute(g, x)
	if err != nil {
		t.Fatalf("first compute: %v", err)
	}
	second, err := Compute(g, x)
	if err != nil {
		t.Fatalf("second compute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("orders differ: %v vs %v", first, second)
	}
}
