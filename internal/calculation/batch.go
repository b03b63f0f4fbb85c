package calculation

import (
	"context"
	"runtime"

	"github.com/jusliketht/bbofficial-sub003/internal/domain"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one request in a batch. Exactly one of
// Comparison and Err is set.
type BatchResult struct {
	Index      int
	Label      string
	Comparison *domain.RegimeComparisonResult
	Err        error
}

// CompareBatch runs Compare for every request on a bounded worker pool.
// Results come back in request order. A failing request does not stop the
// others; only cancellation of ctx does, in which case ctx.Err() is returned.
func (e *Engine) CompareBatch(ctx context.Context, reqs []Request, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range reqs {
		i := i
		req := reqs[i].Clone()
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cmp, err := e.Compare(req.Income, req.Claims)
			results[i] = BatchResult{Index: i, Label: req.Label, Comparison: cmp, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is cancelled once Wait returns, so check the caller's context
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.Logger.Infof("batch compare: %d requests, %d failed, %d workers", len(reqs), failed, workers)
	return results, nil
}
