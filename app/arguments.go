package app

import (
	"math"

	"symrand/domain/expr"
)

// rangeCall is the canonical form every range builtin call is normalised to
// before validation: F[{min, max}] or F[{min, max}, {n1, n2, ...}].
type rangeCall struct {
	name  string
	min   expr.Expr
	max   expr.Expr
	shape expr.Expr // nil when no shape was given
	bare  expr.Expr // lone argument that is neither a pair nor a number
}

func (c rangeCall) bounds() expr.Expr {
	return expr.List(c.min, c.max)
}

// endpoints is the range as the caller wrote it, for unifr messages.
func (c rangeCall) endpoints() expr.Expr {
	if c.bare != nil {
		return c.bare
	}
	return c.bounds()
}

// call returns the canonical call for messages.
func (c rangeCall) call() expr.Expr {
	if c.shape == nil {
		return expr.New(c.name, c.bounds())
	}
	return expr.New(c.name, c.bounds(), c.shape)
}

// normaliseRange maps the call variants F[], F[max], F[{min, max}],
// F[spec, n] and F[spec, {n1, ...}] onto a rangeCall. A lone bound is the
// upper end of a range starting at zero.
func normaliseRange(name string, args []expr.Expr, canonical expr.Expr) (rangeCall, error) {
	if len(args) > 2 {
		return rangeCall{}, argCountDiagnostic(name, len(args), 0, 2)
	}
	c := rangeCall{name: name}

	spec := canonical
	if len(args) > 0 {
		spec = args[0]
	}
	if pair, ok := expr.AsList(spec); ok && len(pair) == 2 {
		c.min, c.max = pair[0], pair[1]
	} else {
		c.min, c.max = expr.NewInteger(0), spec
		if !expr.IsNumber(spec) {
			c.bare = spec
		}
	}

	if len(args) == 2 {
		c.shape = normaliseShape(args[1])
	}
	return c, nil
}

// normaliseShape turns a bare count n into {n}.
func normaliseShape(e expr.Expr) expr.Expr {
	if _, ok := e.(expr.Integer); ok {
		return expr.List(e)
	}
	return e
}

// parseShape validates an array dimensions argument. It accepts a List of
// non-negative machine-sized integers whose product is representable.
func parseShape(e expr.Expr) ([]int, bool) {
	leaves, ok := expr.AsList(e)
	if !ok {
		return nil, false
	}
	dims := make([]int, len(leaves))
	total := 1
	for i, leaf := range leaves {
		n, ok := leaf.(expr.Integer)
		if !ok {
			return nil, false
		}
		v, ok := n.Int64()
		if !ok || v < 0 || v > math.MaxInt {
			return nil, false
		}
		dims[i] = int(v)
		if total != 0 && dims[i] > math.MaxInt/total {
			return nil, false
		}
		total *= dims[i]
	}
	return dims, true
}

// shapeOf validates the shape of c, returning nil dims for scalar calls.
func (c rangeCall) shapeOf() ([]int, error) {
	if c.shape == nil {
		return nil, nil
	}
	dims, ok := parseShape(c.shape)
	if !ok {
		return nil, newDiagnostic(c.name, "array", c.shape, c.call())
	}
	return dims, nil
}
