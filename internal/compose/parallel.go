package compose

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FinalizeAll finalizes every class in the graph concurrently.
// Independent classes share no mutable state; the per-class singleflight
// in Finalize keeps overlapping hierarchies computed once. The first
// failure cancels the group and is returned.
func (c *Composer) FinalizeAll(ctx context.Context, jobs int) (map[string]*Artifacts, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	names := c.graph.Names()
	results := make(map[string]*Artifacts, len(names))
	var resultsMu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for _, name := range names {
		name := name
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			art, err := c.Finalize(name)
			if err != nil {
				return err
			}
			resultsMu.Lock()
			results[name] = art
			resultsMu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
