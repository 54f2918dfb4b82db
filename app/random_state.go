package app

import (
	"context"

	"symrand/domain/expr"
	"symrand/internal/randstate"
	"symrand/ports"
)

const randomStateDoc = "`$RandomState` is a long number representing the internal state of the pseudorandom number generator.\n\n" +
	"It changes with every draw and cannot be assigned: `$RandomState = x` reports a message and evaluates to *x*.\n"

// RandomState exposes the Random State Value read-only.
type RandomState struct {
	*Sampler
}

func (RandomState) Name() string { return randstate.StateName }
func (RandomState) Doc() string  { return randomStateDoc }

// Apply reads the current state. The symbol takes no arguments.
func (b RandomState) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	if len(args) != 0 {
		return nil, argCountDiagnostic(b.Name(), len(args), 0, 0)
	}
	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		state, err := g.State()
		if err != nil {
			return nil, err
		}
		return expr.NewBigInteger(randstate.Encode(state)), nil
	})
}

// Assign rejects an assignment to $RandomState. The assigned value is
// returned as the value of the assignment; the state is untouched.
func (b RandomState) Assign(ev ports.Evaluation, value expr.Expr) expr.Expr {
	d := newDiagnostic(b.Name(), "rndst")
	b.logger.Info("%s", d.Error())
	ev.Message(d.Message())
	return value
}
