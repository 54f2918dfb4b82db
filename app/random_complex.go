package app

import (
	"context"

	"symrand/domain/expr"
	"symrand/internal/shape"
	"symrand/ports"
)

const randomComplexDoc = "`RandomComplex[{zmin, zmax}]` yields a pseudorandom complex number in the rectangle with corners *zmin* and *zmax*.\n\n" +
	"`RandomComplex[zmax]` yields a pseudorandom complex number in the rectangle with corners at the origin and at *zmax*.\n\n" +
	"`RandomComplex[]` yields a pseudorandom complex number with real and imaginary parts from 0 to 1.\n\n" +
	"`RandomComplex[range, n]` gives a list of *n* pseudorandom complex numbers.\n\n" +
	"`RandomComplex[range, {n1, n2, ...}]` gives a nested list of pseudorandom complex numbers.\n\n" +
	"Real corners are treated as complex numbers with zero imaginary part.\n"

// RandomComplex draws complex numbers with independent uniform real and
// imaginary parts.
type RandomComplex struct {
	*Sampler
}

func (RandomComplex) Name() string { return "RandomComplex" }
func (RandomComplex) Doc() string  { return randomComplexDoc }

func (b RandomComplex) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	c, err := normaliseRange(b.Name(), args, expr.List(expr.NewInteger(0), expr.NewComplex(1, 1)))
	if err != nil {
		return nil, err
	}

	zmin, okLo := expr.AsComplex(c.min)
	zmax, okHi := expr.AsComplex(c.max)
	if !okLo || !okHi || !finite(real(zmin), imag(zmin), real(zmax), imag(zmax)) {
		return nil, newDiagnostic(b.Name(), "unifr", c.endpoints())
	}
	dims, err := c.shapeOf()
	if err != nil {
		return nil, err
	}
	reLo, reHi := ordered(real(zmin), real(zmax))
	imLo, imHi := ordered(imag(zmin), imag(zmax))

	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		n := shape.Size(dims)
		re, err := shape.NewArray(dims, g.Reals(reLo, reHi, n))
		if err != nil {
			return nil, err
		}
		im, err := shape.NewArray(dims, g.Reals(imLo, imHi, n))
		if err != nil {
			return nil, err
		}
		b.logger.Trace("drew %d complex numbers in [%g, %g) x [%g, %g)", n, reLo, reHi, imLo, imHi)

		pairs, err := shape.Stack(re, im)
		if err != nil {
			return nil, err
		}
		return shape.Build(pairs, len(dims), func(p []float64) expr.Expr {
			return expr.NewComplex(p[0], p[1])
		})
	})
}
