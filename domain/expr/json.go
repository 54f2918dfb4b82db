package expr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// JSON wraps an Expr so it can be embedded in request and response bodies.
//
// Integer literals decode to Integer with arbitrary precision, other numbers to
// Real, strings to String and arrays to List. Objects carry the remaining
// kinds: {"symbol": name}, {"complex": [re, im]} and {"head": name, "args": [...]}.
type JSON struct {
	Expr Expr
}

type jsonObject struct {
	Symbol  *string           `json:"symbol,omitempty"`
	Complex []json.Number     `json:"complex,omitempty"`
	Head    *string           `json:"head,omitempty"`
	Args    []json.RawMessage `json:"args,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (j JSON) MarshalJSON() ([]byte, error) {
	v, err := toJSONValue(j.Expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSON) UnmarshalJSON(data []byte) error {
	e, err := ParseJSON(data)
	if err != nil {
		return err
	}
	j.Expr = e
	return nil
}

// ParseJSON decodes one expression from its JSON form.
func ParseJSON(data []byte) (Expr, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode string: %w", err)
		}
		return NewString(s), nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		leaves, err := parseAll(raw)
		if err != nil {
			return nil, err
		}
		return List(leaves...), nil
	case '{':
		return parseObject(data)
	case 'n':
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode null: %w", err)
		}
		if v != nil {
			return nil, fmt.Errorf("unexpected value %s", data)
		}
		return Null, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode bool: %w", err)
		}
		if b {
			return NewSymbol("True"), nil
		}
		return NewSymbol("False"), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode number: %w", err)
	}
	return parseNumber(n)
}

func parseObject(data []byte) (Expr, error) {
	var obj jsonObject
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after object")
	}

	kinds := 0
	for _, set := range []bool{obj.Symbol != nil, obj.Complex != nil, obj.Head != nil} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return nil, fmt.Errorf("object must set only one of symbol, complex or head")
	}
	if obj.Args != nil && obj.Head == nil {
		return nil, fmt.Errorf("args given without a head")
	}

	switch {
	case obj.Symbol != nil:
		if *obj.Symbol == "" {
			return nil, fmt.Errorf("empty symbol name")
		}
		return NewSymbol(*obj.Symbol), nil
	case obj.Complex != nil:
		if len(obj.Complex) != 2 {
			return nil, fmt.Errorf("complex needs [re, im], got %d parts", len(obj.Complex))
		}
		re, err := obj.Complex[0].Float64()
		if err != nil {
			return nil, fmt.Errorf("complex real part: %w", err)
		}
		im, err := obj.Complex[1].Float64()
		if err != nil {
			return nil, fmt.Errorf("complex imaginary part: %w", err)
		}
		return NewComplex(re, im), nil
	case obj.Head != nil:
		if *obj.Head == "" {
			return nil, fmt.Errorf("empty head")
		}
		leaves, err := parseAll(obj.Args)
		if err != nil {
			return nil, err
		}
		return New(*obj.Head, leaves...), nil
	}
	return nil, fmt.Errorf("object needs one of symbol, complex or head")
}

func parseAll(raw []json.RawMessage) ([]Expr, error) {
	leaves := make([]Expr, len(raw))
	for i, r := range raw {
		e, err := ParseJSON(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		leaves[i] = e
	}
	return leaves, nil
}

func parseNumber(n json.Number) (Expr, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("decode real %q: %w", s, err)
		}
		return NewReal(f), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("decode integer %q", s)
	}
	return Integer{v: v}, nil
}

func toJSONValue(e Expr) (any, error) {
	switch v := e.(type) {
	case nil:
		return nil, nil
	case Integer:
		return json.Number(v.String()), nil
	case Real:
		s, err := realJSON(v.v)
		if err != nil {
			return nil, err
		}
		return json.Number(s), nil
	case Complex:
		re, err := realJSON(v.Re())
		if err != nil {
			return nil, err
		}
		im, err := realJSON(v.Im())
		if err != nil {
			return nil, err
		}
		return map[string]any{"complex": []json.Number{json.Number(re), json.Number(im)}}, nil
	case String:
		return v.v, nil
	case Symbol:
		return map[string]any{"symbol": v.name}, nil
	case Expression:
		args := make([]any, len(v.leaves))
		for i, l := range v.leaves {
			a, err := toJSONValue(l)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		if v.Head() == HeadList {
			return args, nil
		}
		return map[string]any{"head": v.Head(), "args": args}, nil
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

// realJSON keeps a decimal point on integral reals so they decode back to Real.
func realJSON(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("non-finite real %v has no JSON form", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}
