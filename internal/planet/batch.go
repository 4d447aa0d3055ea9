package planet

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result pairs a recipe index with its outcome.
type Result struct {
	Index  int
	Planet *Planet
	Err    error
}

// BakeAll bakes recipes on a pool of workers and calls fn once per recipe
// as each finishes. fn may be called from several goroutines at once.
// workers <= 0 uses one worker per CPU.
//
// The returned error combines every failed recipe; successful recipes are
// still delivered.
func (g *Generator) BakeAll(recipes []Recipe, workers int, fn func(Result)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)

	for i, r := range recipes {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()

			p, err := g.Generate(r)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("recipe %d: %w", i, err))
				mu.Unlock()
			}
			if fn != nil {
				fn(Result{Index: i, Planet: p, Err: err})
			}
		})
	}

	wg.Wait()

	failed := len(multierr.Errors(errs))
	g.log.Info("batch finished",
		zap.Int("recipes", len(recipes)),
		zap.Int("workers", workers),
		zap.Int("failed", failed))
	return errs
}
