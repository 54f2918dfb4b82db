package expr

import (
	"math"
	"strconv"
	"strings"
)

// AsList returns the leaves of a List expression.
func AsList(e Expr) ([]Expr, bool) {
	x, ok := e.(Expression)
	if !ok || x.Head() != HeadList {
		return nil, false
	}
	return x.leaves, true
}

// AsRule returns the sides of a Rule expression.
func AsRule(e Expr) (lhs, rhs Expr, ok bool) {
	x, isExpr := e.(Expression)
	if !isExpr || x.Head() != HeadRule || len(x.leaves) != 2 {
		return nil, nil, false
	}
	return x.leaves[0], x.leaves[1], true
}

// IsNumber reports whether e is an Integer, Real or Complex atom.
func IsNumber(e Expr) bool {
	switch e.(type) {
	case Integer, Real, Complex:
		return true
	}
	return false
}

// AsRealNumber returns the value of an Integer or Real atom.
func AsRealNumber(e Expr) (float64, bool) {
	switch v := e.(type) {
	case Integer:
		return v.Float64(), true
	case Real:
		return v.v, true
	}
	return 0, false
}

// AsComplex returns the value of a number atom, promoting real numbers to a
// complex value with zero imaginary part.
func AsComplex(e Expr) (complex128, bool) {
	if c, ok := e.(Complex); ok {
		return c.v, true
	}
	if f, ok := AsRealNumber(e); ok {
		return complex(f, 0), true
	}
	return 0, false
}

// formatReal prints a machine real the way InputForm does: integral values
// keep a trailing dot and exponents use the *^ notation.
func formatReal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "Indeterminate"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if mant, exp, ok := strings.Cut(s, "e"); ok {
		if !strings.Contains(mant, ".") {
			mant += "."
		}
		return mant + "*^" + strings.TrimPrefix(exp, "+")
	}
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}
