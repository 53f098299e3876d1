package snapshot

import (
	"crypto/sha256"
	"sort"

	"weave/internal/unit"
)

// Digest is a SHA-256 over the canonical encoding of a class's
// definition closure. Two classes with identical reachable definitions
// share a digest, independent of definition order.
type Digest [sha256.Size]byte

// ClassDigest hashes the definition closure of class: every reachable
// unit's name, base, declared mixin order and member table.
func ClassDigest(g *unit.Graph, class unit.UnitID) Digest {
	reachable := make(map[unit.UnitID]bool)
	collect(g, class, reachable)

	ids := make([]unit.UnitID, 0, len(reachable))
	for id := range reachable {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return g.Name(ids[i]) < g.Name(ids[j])
	})

	h := sha256.New()
	writeStr := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeStr(g.Name(class))
	for _, id := range ids {
		u := g.Unit(id)
		writeStr("unit")
		writeStr(u.Name)
		writeStr(g.Name(u.Base))
		for _, mix := range u.Mixins {
			writeStr(g.Name(mix))
		}
		writeStr("members")
		for _, m := range u.Members {
			writeStr(m.Name)
			writeStr(m.Kind.String())
			if m.Delegates {
				writeStr("delegates")
			}
		}
	}

	var d Digest
	h.Sum(d[:0])
	return d
}

func collect(g *unit.Graph, id unit.UnitID, seen map[unit.UnitID]bool) {
	if !id.IsValid() || seen[id] {
		return
	}
	seen[id] = true
	u := g.Unit(id)
	if u == nil {
		return
	}
	for _, mix := range u.Mixins {
		collect(g, mix, seen)
	}
	collect(g, u.Base, seen)
}

// IsSHA256 performs a basic sanity check that the digest is non-zero.
func IsSHA256(d Digest) bool {
	var z Digest
	return d != z
}
