package expr

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputForm(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name string
		in   Expr
		want string
	}{
		{"integer", NewInteger(-42), "-42"},
		{"big integer", NewBigInteger(huge), "123456789012345678901234567890"},
		{"zero value integer", Integer{}, "0"},
		{"real", NewReal(0.25), "0.25"},
		{"integral real", NewReal(2), "2."},
		{"real exponent", NewReal(1e21), "1.*^21"},
		{"complex", NewComplex(1.5, 2), "1.5 + 2. I"},
		{"complex negative imaginary", NewComplex(1, -0.5), "1. - 0.5 I"},
		{"string", NewString(`say "hi"`), `"say \"hi\""`},
		{"symbol", NewSymbol("x"), "x"},
		{"list", List(NewInteger(1), NewInteger(-1)), "{1, -1}"},
		{"empty list", List(), "{}"},
		{"rule", Rule(List(NewInteger(1)), List(NewSymbol("a"))), "{1} -> {a}"},
		{
			"call",
			New("RandomReal", List(NewInteger(0), NewInteger(1)), List(NewInteger(1), NewInteger(-1))),
			"RandomReal[{0, 1}, {1, -1}]",
		},
		{"set", New(HeadSet, NewSymbol("$RandomState"), NewInteger(42)), "$RandomState = 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := List(NewInteger(1), NewReal(1), NewString("1"))
	b := List(NewInteger(1), NewReal(1), NewString("1"))

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(NewInteger(1), NewReal(1)))
	assert.False(t, Equal(List(NewInteger(1)), New("Hold", NewInteger(1))))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Null))
}

func TestIntegerCopiesInput(t *testing.T) {
	n := big.NewInt(7)
	i := NewBigInteger(n)
	n.SetInt64(8)

	assert.Equal(t, "7", i.String())

	out := i.Big()
	out.SetInt64(9)
	assert.Equal(t, "7", i.String())
}

func TestNumberPredicates(t *testing.T) {
	f, ok := AsRealNumber(NewInteger(3))
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = AsRealNumber(NewComplex(1, 1))
	assert.False(t, ok)

	c, ok := AsComplex(NewReal(2.5))
	require.True(t, ok)
	assert.Equal(t, complex(2.5, 0), c)

	_, ok = AsComplex(NewSymbol("x"))
	assert.False(t, ok)

	assert.True(t, IsNumber(NewComplex(0, 1)))
	assert.False(t, IsNumber(NewString("1")))

	lhs, rhs, ok := AsRule(Rule(NewSymbol("a"), NewSymbol("b")))
	require.True(t, ok)
	assert.Equal(t, "a", lhs.String())
	assert.Equal(t, "b", rhs.String())

	_, ok = AsList(NewSymbol("a"))
	assert.False(t, ok)
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"integer", `12345678901234567890123`, "12345678901234567890123"},
		{"negative integer", `-3`, "-3"},
		{"real", `0.5`, "0.5"},
		{"real exponent", `1e3`, "1000."},
		{"string", `"Mathics"`, `"Mathics"`},
		{"list", `[0, [1, 2]]`, "{0, {1, 2}}"},
		{"symbol", `{"symbol": "x"}`, "x"},
		{"complex", `{"complex": [1, 1]}`, "1. + 1. I"},
		{"call", `{"head": "RandomInteger", "args": [[0, 9], [2, 3]]}`, "RandomInteger[{0, 9}, {2, 3}]"},
		{"rule", `{"head": "Rule", "args": [[1, 2], [{"symbol": "a"}, {"symbol": "b"}]]}`, "{1, 2} -> {a, b}"},
		{"null", `null`, "Null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseJSON([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.String())
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	for _, in := range []string{
		``, `{}`, `{"symbol": ""}`, `{"complex": [1]}`, `{"bogus": 1}`, `[1,`,
		`nope`, `nul`, `null 1`, `5 6`, `-`, `truex`,
		`{"symbol": "x", "head": "f"}`,
		`{"symbol": "x", "complex": [1, 2]}`,
		`{"args": [1]}`,
		`{"symbol": "x"} {"symbol": "y"}`,
		`[1, nonsense]`,
	} {
		_, err := ParseJSON([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestJSONKeepsKinds(t *testing.T) {
	in := New("RandomComplex",
		List(NewComplex(1, 1), NewComplex(5, 5)),
		List(NewInteger(2), NewReal(2)),
	)

	data, err := json.Marshal(JSON{Expr: in})
	require.NoError(t, err)

	var out JSON
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, Equal(in, out.Expr), "got %s", out.Expr)
}
