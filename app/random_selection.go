package app

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal/shape"
	"symrand/ports"
)

const randomChoiceDoc = "`RandomChoice[{e1, e2, ...}]` gives a pseudorandom choice of one of the elements.\n\n" +
	"`RandomChoice[list, n]` gives a list of *n* pseudorandom choices.\n\n" +
	"`RandomChoice[list, {n1, n2, ...}]` gives a nested list of pseudorandom choices.\n\n" +
	"`RandomChoice[{w1, w2, ...} -> {e1, e2, ...}]` chooses element *ei* with probability proportional to *wi*.\n\n" +
	"Elements may be chosen more than once.\n"

const randomSampleDoc = "`RandomSample[{e1, e2, ...}]` gives a pseudorandom choice of one of the elements.\n\n" +
	"`RandomSample[list, n]` gives a pseudorandom sample of *n* of the elements.\n\n" +
	"`RandomSample[{w1, w2, ...} -> {e1, e2, ...}, n]` samples with weights *wi*.\n\n" +
	"No element is taken more than once, so at most as many elements as the list holds can be requested.\n"

// selection is the parsed domain of a choice or sample call.
type selection struct {
	elements []expr.Expr
	weights  []float64 // nil for uniform weights
}

// positive counts the elements that can be drawn at all.
func (s selection) positive() int {
	if s.weights == nil {
		return len(s.elements)
	}
	n := 0
	for _, w := range s.weights {
		if w > 0 {
			n++
		}
	}
	return n
}

// drawable lists the elements that carry positive weight.
func (s selection) drawable() expr.Expr {
	if s.weights == nil {
		return expr.List(s.elements...)
	}
	var out []expr.Expr
	for i, w := range s.weights {
		if w > 0 {
			out = append(out, s.elements[i])
		}
	}
	return expr.List(out...)
}

// randomSelection implements RandomChoice (with replacement) and
// RandomSample (without).
type randomSelection struct {
	*Sampler
	name    string
	doc     string
	replace bool
}

// NewRandomChoice creates the RandomChoice builtin
func NewRandomChoice(s *Sampler) Builtin {
	return randomSelection{Sampler: s, name: "RandomChoice", doc: randomChoiceDoc, replace: true}
}

// NewRandomSample creates the RandomSample builtin
func NewRandomSample(s *Sampler) Builtin {
	return randomSelection{Sampler: s, name: "RandomSample", doc: randomSampleDoc, replace: false}
}

func (b randomSelection) Name() string { return b.name }
func (b randomSelection) Doc() string  { return b.doc }

func (b randomSelection) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, argCountDiagnostic(b.name, len(args), 1, 2)
	}
	call := expr.New(b.name, args...)

	sel, err := b.parseDomain(args[0], call)
	if err != nil {
		return nil, err
	}

	// Without a count both builtins draw a single element.
	var dims []int
	scalar := len(args) == 1
	if !scalar {
		size := normaliseShape(args[1])
		var ok bool
		if dims, ok = parseShape(size); !ok {
			return nil, newDiagnostic(b.name, "array", size, call)
		}
	}

	count := shape.Size(dims)
	if count > 0 {
		if (b.replace || scalar) && sel.positive() == 0 {
			return nil, newDiagnostic(b.name, "list")
		}
		if !b.replace && count > sel.positive() {
			return nil, newDiagnostic(b.name, "smplen", expr.NewInteger(int64(count)), sel.drawable())
		}
	}

	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		idxs, err := g.WeightedIndices(len(sel.elements), count, b.replace, sel.weights)
		if err != nil {
			if core.IsSampleSizeError(err) {
				return nil, newDiagnostic(b.name, "smplen", expr.NewInteger(int64(count)), sel.drawable())
			}
			return nil, err
		}
		b.logger.Trace("%s drew %d of %d elements", b.name, len(idxs), len(sel.elements))

		if scalar {
			return sel.elements[idxs[0]], nil
		}
		a, err := shape.NewArray(dims, idxs)
		if err != nil {
			return nil, err
		}
		return shape.BuildScalar(a, func(i int) expr.Expr { return sel.elements[i] })
	})
}

// parseDomain accepts {e1, ...} or {w1, ...} -> {e1, ...}. Weights are
// normalised on a copy so they sum to one.
func (b randomSelection) parseDomain(domain, call expr.Expr) (selection, error) {
	if elements, ok := expr.AsList(domain); ok {
		return selection{elements: elements}, nil
	}

	lhs, rhs, ok := expr.AsRule(domain)
	if !ok {
		return selection{}, newDiagnostic(b.name, "list")
	}
	rawWeights, ok := expr.AsList(lhs)
	if !ok {
		return selection{}, newDiagnostic(b.name, "weights", lhs, call)
	}
	weights := make([]float64, len(rawWeights))
	for i, w := range rawWeights {
		v, ok := expr.AsRealNumber(w)
		if !ok || v < 0 || !finite(v) {
			return selection{}, newDiagnostic(b.name, "weights", lhs, call)
		}
		weights[i] = v
	}

	elements, ok := expr.AsList(rhs)
	if !ok {
		return selection{}, newDiagnostic(b.name, "list")
	}
	if len(weights) != len(elements) {
		return selection{}, newDiagnostic(b.name, "lengths", domain)
	}

	if len(weights) > 0 {
		total := floats.Sum(weights)
		if total <= 0 {
			return selection{}, newDiagnostic(b.name, "weights", lhs, call)
		}
		floats.Scale(1/total, weights)
	}
	return selection{elements: elements, weights: weights}, nil
}
