package calc

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of evaluating one expression in a batch.
type Result struct {
	Expr  string
	Value int64
	Err   error
}

// EvaluateAll evaluates exprs concurrently with at most workers goroutines
// and returns results in input order. Expression errors are reported per
// result and never stop the batch. Once ctx is done no new expression is
// started and the remaining results carry ctx.Err().
func EvaluateAll(ctx context.Context, exprs []string, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(exprs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, expr := range exprs {
		results[i].Expr = expr
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = Calculate(expr)
			return nil
		})
	}

	_ = g.Wait()
	return results
}
