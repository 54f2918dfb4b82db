package app

import (
	"context"
	"errors"
	"sort"

	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal"
	apperrors "symrand/internal/errors"
	"symrand/internal/randstate"
	"symrand/ports"
)

// Kernel dispatches expressions to the sampling builtins. It evaluates one
// expression at a time; callers that share a kernel across goroutines must
// serialise Evaluate.
type Kernel struct {
	builtins map[string]Builtin
	state    RandomState
	logger   *internal.Logger
}

// NewKernel creates a kernel with every sampling builtin registered on gen.
func NewKernel(gen ports.GeneratorPort, logger *internal.Logger) *Kernel {
	s := NewSampler(gen, logger)
	k := &Kernel{
		builtins: make(map[string]Builtin),
		state:    RandomState{Sampler: s},
		logger:   s.logger,
	}
	k.Register(RandomInteger{Sampler: s})
	k.Register(RandomReal{Sampler: s})
	k.Register(RandomComplex{Sampler: s})
	k.Register(NewRandomChoice(s))
	k.Register(NewRandomSample(s))
	k.Register(SeedRandom{Sampler: s})
	k.Register(k.state)
	return k
}

// Register adds b, replacing any builtin of the same name.
func (k *Kernel) Register(b Builtin) {
	k.builtins[b.Name()] = b
}

// Lookup returns the builtin registered under name.
func (k *Kernel) Lookup(name string) (Builtin, bool) {
	b, ok := k.builtins[name]
	return b, ok
}

// Builtins returns the registered builtins ordered by name.
func (k *Kernel) Builtins() []Builtin {
	out := make([]Builtin, 0, len(k.builtins))
	for _, b := range k.builtins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Docs returns the registered builtins as documentation entries.
func (k *Kernel) Docs() []ports.Builtin {
	builtins := k.Builtins()
	out := make([]ports.Builtin, len(builtins))
	for i, b := range builtins {
		out[i] = b
	}
	return out
}

// Evaluate evaluates e against ev. Arguments are evaluated before the call.
// Diagnostics are reported through ev and leave the call unevaluated; any
// other error aborts the evaluation. Aborting errors always carry a code:
// INVALID_INPUT for rejected generator arguments, INTERNAL_ERROR for
// anything not already coded.
func (k *Kernel) Evaluate(ctx context.Context, ev ports.Evaluation, e expr.Expr) (expr.Expr, error) {
	switch x := e.(type) {
	case expr.Symbol:
		if x.Name() == randstate.StateName {
			return k.state.Apply(ctx, ev, nil)
		}
		return x, nil

	case expr.Expression:
		if x.Head() == expr.HeadSet && x.Len() == 2 {
			if lhs, ok := x.Leaf(0).(expr.Symbol); ok && lhs.Name() == randstate.StateName {
				rhs, err := k.Evaluate(ctx, ev, x.Leaf(1))
				if err != nil {
					return nil, err
				}
				return k.state.Assign(ev, rhs), nil
			}
		}

		args := make([]expr.Expr, x.Len())
		for i, leaf := range x.Leaves() {
			v, err := k.Evaluate(ctx, ev, leaf)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		call := expr.NewExpression(x.HeadExpr(), args...)

		b, ok := k.builtins[x.Head()]
		if !ok || x.Head() == randstate.StateName {
			return call, nil
		}
		return k.apply(ctx, ev, b, call, args)
	}
	return e, nil
}

func (k *Kernel) apply(ctx context.Context, ev ports.Evaluation, b Builtin, call expr.Expr, args []expr.Expr) (expr.Expr, error) {
	result, err := b.Apply(ctx, ev, args)
	if err == nil {
		return result, nil
	}

	var d *Diagnostic
	if errors.As(err, &d) {
		k.logger.Info("%s left unevaluated: %s", call, d.Error())
		ev.Message(d.Message())
		return call, nil
	}
	k.logger.Error("%s failed: %v", b.Name(), err)

	// Uncoded errors get a code so callers can map them.
	switch {
	case apperrors.IsAppError(err):
	case core.IsValidationError(err):
		err = apperrors.WithCode(apperrors.CodeInvalidInput, err)
	default:
		err = apperrors.Wrapf(err, "%s failed", b.Name())
	}
	return nil, err
}
