package scenario

import (
	"context"

	"golang.org/x/sync/errgroup"

	"traceflow-pricing/core/types"
)

// Estimator computes one savings estimate
type Estimator interface {
	Estimate(in types.CalculatorInput) (*types.SavingsEstimate, error)
}

// Outcome is the result of one scenario. Exactly one of Estimate and Err is set.
type Outcome struct {
	Scenario Scenario
	Estimate *types.SavingsEstimate
	Err      error
}

// Runner evaluates scenarios in parallel
type Runner struct {
	estimator   Estimator
	concurrency int
}

// NewRunner creates a runner; concurrency below 1 means 1
func NewRunner(estimator Estimator, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{estimator: estimator, concurrency: concurrency}
}

// RunAll evaluates every scenario and returns outcomes in input order.
// A scenario that fails validation records its error and does not stop
// the others; only ctx cancellation aborts the batch.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) ([]Outcome, error) {
	outcomes := make([]Outcome, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, s := range scenarios {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in, err := s.Input()
			if err != nil {
				outcomes[i] = Outcome{Scenario: s, Err: err}
				return nil
			}
			est, err := r.estimator.Estimate(in)
			outcomes[i] = Outcome{Scenario: s, Estimate: est, Err: err}
			return nil
		})
	}

	// gctx is always canceled once Wait returns; check the caller's context.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Failed counts outcomes with errors
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
