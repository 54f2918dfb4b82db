// Package expr is the value model of the host expression language as seen by
// the sampling builtins: arbitrary-precision integers, machine reals, complex
// numbers, strings, symbols and compound expressions such as List and Rule.
package expr

import (
	"math/big"
	"strings"
)

// Head names of the atomic value kinds.
const (
	HeadInteger = "Integer"
	HeadReal    = "Real"
	HeadComplex = "Complex"
	HeadString  = "String"
	HeadSymbol  = "Symbol"

	HeadList = "List"
	HeadRule = "Rule"
	HeadSet  = "Set"
)

// Expr is a value of the host language.
type Expr interface {
	// Head returns the head name: the atom kind for atoms, the head symbol for
	// compound expressions.
	Head() string
	// String returns the InputForm of the value.
	String() string
	// Equal reports structural equality.
	Equal(other Expr) bool
}

// Null is the value returned by builtins that produce no result.
var Null = NewSymbol("Null")

// Integer is an arbitrary-precision integer. The zero value is 0.
type Integer struct {
	v *big.Int
}

// NewInteger returns the Integer n.
func NewInteger(n int64) Integer {
	return Integer{v: big.NewInt(n)}
}

// NewBigInteger returns an Integer holding a copy of n.
func NewBigInteger(n *big.Int) Integer {
	if n == nil {
		return Integer{v: new(big.Int)}
	}
	return Integer{v: new(big.Int).Set(n)}
}

// Big returns a copy of the value.
func (i Integer) Big() *big.Int {
	if i.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(i.v)
}

// Int64 returns the value and whether it fits in an int64.
func (i Integer) Int64() (int64, bool) {
	if i.v == nil {
		return 0, true
	}
	if !i.v.IsInt64() {
		return 0, false
	}
	return i.v.Int64(), true
}

// Float64 returns the nearest float64.
func (i Integer) Float64() float64 {
	if i.v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(i.v).Float64()
	return f
}

// Sign returns -1, 0 or +1.
func (i Integer) Sign() int {
	if i.v == nil {
		return 0
	}
	return i.v.Sign()
}

func (Integer) Head() string { return HeadInteger }

func (i Integer) String() string {
	if i.v == nil {
		return "0"
	}
	return i.v.String()
}

func (i Integer) Equal(other Expr) bool {
	o, ok := other.(Integer)
	if !ok {
		return false
	}
	return i.Big().Cmp(o.Big()) == 0
}

// Real is a machine-precision real number.
type Real struct {
	v float64
}

// NewReal returns the Real f.
func NewReal(f float64) Real { return Real{v: f} }

// Float64 returns the value.
func (r Real) Float64() float64 { return r.v }

func (Real) Head() string { return HeadReal }

func (r Real) String() string { return formatReal(r.v) }

func (r Real) Equal(other Expr) bool {
	o, ok := other.(Real)
	return ok && o.v == r.v
}

// Complex is a complex number with machine-precision parts.
type Complex struct {
	v complex128
}

// NewComplex returns re + im I.
func NewComplex(re, im float64) Complex { return Complex{v: complex(re, im)} }

// Re returns the real part.
func (c Complex) Re() float64 { return real(c.v) }

// Im returns the imaginary part.
func (c Complex) Im() float64 { return imag(c.v) }

// Complex128 returns the value.
func (c Complex) Complex128() complex128 { return c.v }

func (Complex) Head() string { return HeadComplex }

func (c Complex) String() string {
	re, im := real(c.v), imag(c.v)
	if im < 0 {
		return formatReal(re) + " - " + formatReal(-im) + " I"
	}
	return formatReal(re) + " + " + formatReal(im) + " I"
}

func (c Complex) Equal(other Expr) bool {
	o, ok := other.(Complex)
	return ok && o.v == c.v
}

// String is a string atom.
type String struct {
	v string
}

// NewString returns the String s.
func NewString(s string) String { return String{v: s} }

// Value returns the Go string.
func (s String) Value() string { return s.v }

func (String) Head() string { return HeadString }

func (s String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.v {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (s String) Equal(other Expr) bool {
	o, ok := other.(String)
	return ok && o.v == s.v
}

// Symbol is a named symbol.
type Symbol struct {
	name string
}

// NewSymbol returns the symbol called name.
func NewSymbol(name string) Symbol { return Symbol{name: name} }

// Name returns the symbol name.
func (s Symbol) Name() string { return s.name }

func (Symbol) Head() string { return HeadSymbol }

func (s Symbol) String() string { return s.name }

func (s Symbol) Equal(other Expr) bool {
	o, ok := other.(Symbol)
	return ok && o.name == s.name
}

// Expression is a compound expression head[leaves...].
type Expression struct {
	head   Expr
	leaves []Expr
}

// New returns the expression name[leaves...] with a symbol head.
func New(name string, leaves ...Expr) Expression {
	return NewExpression(NewSymbol(name), leaves...)
}

// NewExpression returns head[leaves...]. The leaves slice is copied.
func NewExpression(head Expr, leaves ...Expr) Expression {
	cp := make([]Expr, len(leaves))
	copy(cp, leaves)
	return Expression{head: head, leaves: cp}
}

// List returns {leaves...}.
func List(leaves ...Expr) Expression { return New(HeadList, leaves...) }

// Rule returns lhs -> rhs.
func Rule(lhs, rhs Expr) Expression { return New(HeadRule, lhs, rhs) }

// HeadExpr returns the head expression.
func (e Expression) HeadExpr() Expr { return e.head }

// Leaves returns the leaves. Callers must not modify the returned slice.
func (e Expression) Leaves() []Expr { return e.leaves }

// Len returns the number of leaves.
func (e Expression) Len() int { return len(e.leaves) }

// Leaf returns leaf i.
func (e Expression) Leaf(i int) Expr { return e.leaves[i] }

func (e Expression) Head() string {
	if s, ok := e.head.(Symbol); ok {
		return s.name
	}
	if e.head == nil {
		return ""
	}
	return e.head.String()
}

func (e Expression) String() string {
	switch {
	case e.Head() == HeadList:
		return "{" + joinLeaves(e.leaves) + "}"
	case e.Head() == HeadRule && len(e.leaves) == 2:
		return e.leaves[0].String() + " -> " + e.leaves[1].String()
	case e.Head() == HeadSet && len(e.leaves) == 2:
		return e.leaves[0].String() + " = " + e.leaves[1].String()
	}
	head := ""
	if e.head != nil {
		head = e.head.String()
	}
	return head + "[" + joinLeaves(e.leaves) + "]"
}

func (e Expression) Equal(other Expr) bool {
	o, ok := other.(Expression)
	if !ok || len(o.leaves) != len(e.leaves) {
		return false
	}
	if !Equal(e.head, o.head) {
		return false
	}
	for i := range e.leaves {
		if !Equal(e.leaves[i], o.leaves[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b are structurally equal. Two nil values are equal.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func joinLeaves(leaves []Expr) string {
	parts := make([]string, len(leaves))
	for i, l := range leaves {
		if l == nil {
			parts[i] = "Null"
			continue
		}
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}
