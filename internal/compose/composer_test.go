package compose

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"weave/internal/dispatch"
	"weave/internal/linearize"
	"weave/internal/member"
	"weave/internal/unit"
)

func mustDefine(t *testing.T, g *unit.Graph, def unit.Def) unit.UnitID {
	t.Helper()
	if _, err := g.Define(def); err != nil {
		t.Fatalf("define %q: %v", def.Name, err)
	}
	id, _ := g.Lookup(def.Name)
	return id
}

func echo(s string) member.Body {
	return func(*member.Call) (member.Value, error) { return s, nil }
}

func relay(label string) member.Body {
	return func(c *member.Call) (member.Value, error) {
		rest, err := c.Next()
		if err != nil {
			return nil, err
		}
		return label + ":" + rest.(string), nil
	}
}

// greeterGraph is the reference hierarchy: C mixes [A, B] over Base and
// every unit provides "greet". Resolving on C yields "B:A:Base".
func greeterGraph(t *testing.T) *unit.Graph {
	t.Helper()
	g := unit.NewGraph()
	mustDefine(t, g, unit.Def{Name: "Base", Members: []member.Member{
		{Name: "greet", Kind: member.Concrete, Body: echo("Base")},
	}})
	mustDefine(t, g, unit.Def{Name: "A", Members: []member.Member{
		{Name: "greet", Kind: member.Concrete, Delegates: true, Body: relay("A")},
	}})
	mustDefine(t, g, unit.Def{Name: "B", Members: []member.Member{
		{Name: "greet", Kind: member.Concrete, Delegates: true, Body: relay("B")},
	}})
	mustDefine(t, g, unit.Def{Name: "C", Mixins: []string{"A", "B"}, Base: "Base"})
	return g
}

func TestFinalize(t *testing.T) {
	c := New(greeterGraph(t))

	art, err := c.Finalize("C")
	if err != nil {
		t.Fatalf("Finalize(C): %v", err)
	}
	if want := []string{"C", "B", "A", "Base"}; !reflect.DeepEqual(art.OrderNames, want) {
		t.Fatalf("OrderNames = %v, want %v", art.OrderNames, want)
	}
	if art.Table == nil {
		t.Fatalf("Finalize published nil table")
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	c := New(greeterGraph(t))

	first, err := c.Finalize("C")
	if err != nil {
		t.Fatalf("Finalize(C): %v", err)
	}
	second, err := c.Finalize("C")
	if err != nil {
		t.Fatalf("Finalize(C) again: %v", err)
	}
	if first != second {
		t.Fatalf("repeated Finalize returned a different artifacts object")
	}
}

func TestFinalizeUnknownClass(t *testing.T) {
	c := New(greeterGraph(t))

	_, err := c.Finalize("Nope")
	var nf *unit.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Finalize(Nope): %v, want NotFoundError", err)
	}
	if nf.Name != "Nope" {
		t.Fatalf("NotFoundError.Name = %q, want Nope", nf.Name)
	}
}

func TestFinalizeSurfacesValidationError(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, unit.Def{Name: "Want", Members: []member.Member{
		{Name: "value", Kind: member.Abstract},
	}})
	mustDefine(t, g, unit.Def{Name: "Stub", Mixins: []string{"Want"}})

	c := New(g)
	_, err := c.Finalize("Stub")
	var unres *dispatch.UnresolvedAbstractMemberError
	if !errors.As(err, &unres) {
		t.Fatalf("Finalize(Stub): %v, want UnresolvedAbstractMemberError", err)
	}

	// Failed finalization must not be cached as success.
	if _, err := c.Finalize("Stub"); err == nil {
		t.Fatalf("second Finalize(Stub) succeeded after failure")
	}
}

func TestFinalizeSurfacesLinearizeError(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, unit.Def{Name: "X"})
	mustDefine(t, g, unit.Def{Name: "Y"})
	mustDefine(t, g, unit.Def{Name: "T1", Mixins: []string{"X", "Y"}})
	mustDefine(t, g, unit.Def{Name: "T2", Mixins: []string{"Y", "X"}})
	mustDefine(t, g, unit.Def{Name: "Clash", Mixins: []string{"T1", "T2"}})

	c := New(g)
	_, err := c.Finalize("Clash")
	var inc *linearize.InconsistentCompositionError
	if !errors.As(err, &inc) {
		t.Fatalf("Finalize(Clash): %v, want InconsistentCompositionError", err)
	}
}

func TestConcurrentFinalizeComputesOnce(t *testing.T) {
	c := New(greeterGraph(t))

	const workers = 16
	results := make([]*Artifacts, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			art, err := c.Finalize("C")
			if err != nil {
				t.Errorf("Finalize(C): %v", err)
				return
			}
			results[i] = art
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d observed a different artifacts object", i)
		}
	}
}

func TestInvokeOnInstance(t *testing.T) {
	c := New(greeterGraph(t))

	in, err := c.NewInstance("C")
	if err != nil {
		t.Fatalf("NewInstance(C): %v", err)
	}
	got, err := c.Invoke(in, "greet")
	if err != nil {
		t.Fatalf("Invoke(greet): %v", err)
	}
	if got != "B:A:Base" {
		t.Fatalf("Invoke(greet) = %q, want %q", got, "B:A:Base")
	}
}

func TestInvokeNextSteps(t *testing.T) {
	c := New(greeterGraph(t))

	art, err := c.Finalize("C")
	if err != nil {
		t.Fatalf("Finalize(C): %v", err)
	}
	in := dispatch.NewInstance(art.Class)

	ch, ok := art.Table.Chain("greet")
	if !ok {
		t.Fatalf("no chain for greet")
	}
	// Step past B manually: the remaining chain is A then Base.
	got, err := c.InvokeNext(in, member.Marker{Member: "greet", Pos: ch[0].Pos}, "greet")
	if err != nil {
		t.Fatalf("InvokeNext: %v", err)
	}
	if got != "A:Base" {
		t.Fatalf("InvokeNext = %q, want %q", got, "A:Base")
	}
}

func TestFinalizeAll(t *testing.T) {
	c := New(greeterGraph(t))

	results, err := c.FinalizeAll(context.Background(), 4)
	if err != nil {
		t.Fatalf("FinalizeAll: %v", err)
	}
	for _, name := range []string{"Base", "A", "B", "C"} {
		if results[name] == nil {
			t.Fatalf("FinalizeAll missing %q", name)
		}
	}
	if got := results["C"].OrderNames; !reflect.DeepEqual(got, []string{"C", "B", "A", "Base"}) {
		t.Fatalf("C order = %v", got)
	}
}

func TestFinalizeAllPropagatesFailure(t *testing.T) {
	g := unit.NewGraph()
	mustDefine(t, g, unit.Def{Name: "Want", Members: []member.Member{
		{Name: "value", Kind: member.Abstract},
	}})
	mustDefine(t, g, unit.Def{Name: "Stub", Mixins: []string{"Want"}})

	c := New(g)
	_, err := c.FinalizeAll(context.Background(), 2)
	var unres *dispatch.UnresolvedAbstractMemberError
	if !errors.As(err, &unres) {
		t.Fatalf("FinalizeAll: %v, want UnresolvedAbstractMemberError", err)
	}
}
