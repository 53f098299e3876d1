package member

import "testing"

func TestKindString(t *testing.T) {
	if got := Abstract.String(); got != "abstract" {
		t.Fatalf("Abstract.String() = %q", got)
	}
	if got := Concrete.String(); got != "concrete" {
		t.Fatalf("Concrete.String() = %q", got)
	}
	if got := Kind(9).String(); got != "unknown" {
		t.Fatalf("Kind(9).String() = %q", got)
	}
}

func TestNextForwardsCurrentArgs(t *testing.T) {
	var seen []Value
	c := NewCall(nil, "m", []Value{1, 2}, Marker{Member: "m", Pos: 0}, func(args []Value) (Value, error) {
		seen = args
		return "ok", nil
	})

	if _, err := c.Next(); err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("forwarded args = %v, want [1 2]", seen)
	}

	if _, err := c.Next("x"); err != nil {
		t.Fatalf("Next(x): %v", err)
	}
	if len(seen) != 1 || seen[0] != "x" {
		t.Fatalf("replacement args = %v, want [x]", seen)
	}
}

func TestNextWithoutDispatch(t *testing.T) {
	c := &Call{Member: "stray"}
	if _, err := c.Next(); err == nil {
		t.Fatalf("Next on an unbound call did not fail")
	}
}
