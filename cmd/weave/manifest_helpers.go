package main

import (
	"fmt"

	"weave/internal/compose"
	"weave/internal/manifest"
	"weave/internal/unit"
)

// loadComposer loads a manifest, defines its units as one batch and
// returns a composer over the resulting graph.
func loadComposer(path string) (*manifest.Manifest, *compose.Composer, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g := unit.NewGraph()
	if _, err := g.DefineBatch(m.Defs); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, compose.New(g), nil
}

// classTargets returns the class names a whole-manifest command should
// finalize: the declared classes when the manifest names any, otherwise
// every unit.
func classTargets(m *manifest.Manifest, c *compose.Composer) []string {
	if len(m.Classes) > 0 {
		return m.Classes
	}
	return c.Graph().Names()
}
