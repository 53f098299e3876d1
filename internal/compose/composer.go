// Package compose orchestrates class finalization: linearization,
// conflict validation and dispatch-table construction, with at-most-once
// computation per class and immutable published artifacts.
package compose

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"weave/internal/dispatch"
	"weave/internal/linearize"
	"weave/internal/member"
	"weave/internal/unit"
)

// Artifacts are the derived products of finalizing one class. They are
// immutable once published; readers need no synchronization.
type Artifacts struct {
	Class      unit.UnitID
	Name       string
	Order      []unit.UnitID
	OrderNames []string
	Table      *dispatch.Table
}

// Composer finalizes classes against a closed unit graph and caches the
// results. Concurrent finalization of the same class computes once; the
// first caller publishes and the rest observe the cached artifacts.
type Composer struct {
	graph *unit.Graph

	mu    sync.Mutex
	cache map[unit.UnitID]*Artifacts
	group singleflight.Group
}

// New creates a composer over a fully-defined graph.
func New(g *unit.Graph) *Composer {
	return &Composer{
		graph: g,
		cache: make(map[unit.UnitID]*Artifacts),
	}
}

// Graph returns the underlying unit graph.
func (c *Composer) Graph() *unit.Graph { return c.graph }

// Finalize computes the resolution order and dispatch table for name.
// Repeated calls return the same artifacts object.
func (c *Composer) Finalize(name string) (*Artifacts, error) {
	id, ok := c.graph.Lookup(name)
	if !ok {
		return nil, &unit.NotFoundError{Name: name}
	}

	c.mu.Lock()
	if art, ok := c.cache[id]; ok {
		c.mu.Unlock()
		return art, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(name, func() (any, error) {
		c.mu.Lock()
		if art, ok := c.cache[id]; ok {
			c.mu.Unlock()
			return art, nil
		}
		c.mu.Unlock()

		order, err := linearize.Compute(c.graph, id)
		if err != nil {
			return nil, err
		}
		if err := dispatch.Validate(c.graph, id, order); err != nil {
			return nil, err
		}
		table := dispatch.Build(c.graph, id, order)

		names := make([]string, len(order))
		for i, uid := range order {
			names[i] = c.graph.Name(uid)
		}
		art := &Artifacts{
			Class:      id,
			Name:       name,
			Order:      order,
			OrderNames: names,
			Table:      table,
		}

		c.mu.Lock()
		c.cache[id] = art
		c.mu.Unlock()
		return art, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Artifacts), nil
}

// NewInstance finalizes name (cached) and mints an instance of it.
func (c *Composer) NewInstance(name string) (*dispatch.Instance, error) {
	art, err := c.Finalize(name)
	if err != nil {
		return nil, err
	}
	return dispatch.NewInstance(art.Class), nil
}

// Invoke resolves an external call on an instance.
func (c *Composer) Invoke(in *dispatch.Instance, name string, args ...member.Value) (member.Value, error) {
	art, err := c.artifactsFor(in.Class)
	if err != nil {
		return nil, err
	}
	return art.Table.Invoke(in, name, args...)
}

// InvokeNext resolves a delegated call on an instance.
func (c *Composer) InvokeNext(in *dispatch.Instance, m member.Marker, name string, args ...member.Value) (member.Value, error) {
	art, err := c.artifactsFor(in.Class)
	if err != nil {
		return nil, err
	}
	return art.Table.InvokeNext(in, m, name, args...)
}

func (c *Composer) artifactsFor(id unit.UnitID) (*Artifacts, error) {
	c.mu.Lock()
	art, ok := c.cache[id]
	c.mu.Unlock()
	if ok {
		return art, nil
	}
	// Инстанс мог быть создан напрямую через dispatch.NewInstance.
	name := c.graph.Name(id)
	if name == "" {
		return nil, &unit.NotFoundError{Name: "?"}
	}
	return c.Finalize(name)
}
