package app

import (
	"context"
	"math"

	"symrand/domain/expr"
	"symrand/internal/shape"
	"symrand/ports"
)

const randomRealDoc = "`RandomReal[{min, max}]` yields a pseudorandom real number in the range from *min* to *max*.\n\n" +
	"`RandomReal[max]` yields a pseudorandom real number from 0 to *max*.\n\n" +
	"`RandomReal[]` yields a pseudorandom real number from 0 to 1.\n\n" +
	"`RandomReal[range, n]` gives a list of *n* pseudorandom real numbers.\n\n" +
	"`RandomReal[range, {n1, n2, ...}]` gives a nested list of pseudorandom real numbers.\n\n" +
	"Draws lie in the half-open interval [*min*, *max*); `RandomReal[{x, x}]` is always *x*.\n"

// RandomReal draws uniformly distributed machine reals.
type RandomReal struct {
	*Sampler
}

func (RandomReal) Name() string { return "RandomReal" }
func (RandomReal) Doc() string  { return randomRealDoc }

func (b RandomReal) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	c, err := normaliseRange(b.Name(), args, expr.List(expr.NewInteger(0), expr.NewInteger(1)))
	if err != nil {
		return nil, err
	}

	lo, okLo := expr.AsRealNumber(c.min)
	hi, okHi := expr.AsRealNumber(c.max)
	if !okLo || !okHi || !finite(lo, hi) {
		return nil, newDiagnostic(b.Name(), "unifr", c.endpoints())
	}
	dims, err := c.shapeOf()
	if err != nil {
		return nil, err
	}
	lo, hi = ordered(lo, hi)

	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		values := g.Reals(lo, hi, shape.Size(dims))
		b.logger.Trace("drew %d reals in [%g, %g)", len(values), lo, hi)
		if c.shape == nil {
			return expr.NewReal(values[0]), nil
		}
		a, err := shape.NewArray(dims, values)
		if err != nil {
			return nil, err
		}
		return shape.BuildScalar(a, func(v float64) expr.Expr { return expr.NewReal(v) })
	})
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
