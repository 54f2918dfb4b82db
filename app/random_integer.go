package app

import (
	"context"
	"math/big"

	"symrand/domain/expr"
	"symrand/internal/shape"
	"symrand/ports"
)

const randomIntegerDoc = "`RandomInteger[{min, max}]` yields a pseudorandom integer in the range from *min* to *max* inclusive.\n\n" +
	"`RandomInteger[max]` yields a pseudorandom integer from 0 to *max* inclusive.\n\n" +
	"`RandomInteger[]` gives 0 or 1.\n\n" +
	"`RandomInteger[range, n]` gives a list of *n* pseudorandom integers.\n\n" +
	"`RandomInteger[range, {n1, n2, ...}]` gives a nested list of pseudorandom integers.\n\n" +
	"Endpoints given in decreasing order describe the same range.\n"

// RandomInteger draws uniformly distributed integers of arbitrary size.
type RandomInteger struct {
	*Sampler
}

func (RandomInteger) Name() string { return "RandomInteger" }
func (RandomInteger) Doc() string  { return randomIntegerDoc }

func (b RandomInteger) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	c, err := normaliseRange(b.Name(), args, expr.List(expr.NewInteger(0), expr.NewInteger(1)))
	if err != nil {
		return nil, err
	}

	minInt, okLo := c.min.(expr.Integer)
	maxInt, okHi := c.max.(expr.Integer)
	if !okLo || !okHi {
		return nil, newDiagnostic(b.Name(), "unifr", c.endpoints())
	}
	dims, err := c.shapeOf()
	if err != nil {
		return nil, err
	}

	lo, hi := minInt.Big(), maxInt.Big()
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}

	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		values := g.Integers(lo, hi, shape.Size(dims))
		b.logger.Trace("drew %d integers in [%s, %s]", len(values), lo, hi)
		if c.shape == nil {
			return expr.NewBigInteger(values[0]), nil
		}
		a, err := shape.NewArray(dims, values)
		if err != nil {
			return nil, err
		}
		return shape.BuildScalar(a, func(v *big.Int) expr.Expr { return expr.NewBigInteger(v) })
	})
}
