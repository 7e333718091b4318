package scenario

import (
	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

// Point is one volume of a sweep. Err is set for volumes the estimator
// rejects, typically custom tiers without a negotiated price.
type Point struct {
	Sessions int64
	Estimate *types.SavingsEstimate
	Err      error
}

// Sweep evaluates base at steps evenly spaced session volumes from..to
// (inclusive), replacing only MonthlySessions.
func Sweep(est Estimator, base types.CalculatorInput, from, to int64, steps int) ([]Point, error) {
	if from < 0 {
		return nil, errors.InvalidField("from", from, "must be non-negative")
	}
	if to < from {
		return nil, errors.Newf(errors.TypeInput, "invalid sweep range [%d, %d]", from, to)
	}
	if steps < 2 {
		return nil, errors.InvalidField("steps", steps, "must be at least 2")
	}

	points := make([]Point, steps)
	span := to - from
	for i := 0; i < steps; i++ {
		in := base
		in.MonthlySessions = from + span*int64(i)/int64(steps-1)

		e, err := est.Estimate(in)
		points[i] = Point{Sessions: in.MonthlySessions, Estimate: e, Err: err}
	}
	return points, nil
}

// Series extracts one value per successful point, for charting
func Series(points []Point, value func(*types.SavingsEstimate) float64) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		out = append(out, value(p.Estimate))
	}
	return out
}
