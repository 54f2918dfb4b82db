package app

import (
	"context"

	"symrand/domain/expr"
	"symrand/internal"
	"symrand/internal/randstate"
	"symrand/ports"
)

// Builtin is a host function backed by the sampling engine.
type Builtin interface {
	ports.Builtin

	// Apply evaluates a call of the builtin with already evaluated
	// arguments. Recoverable failures are returned as *Diagnostic.
	Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error)
}

// Sampler carries what every sampling builtin shares: the one generator and
// a logger.
type Sampler struct {
	gen    ports.GeneratorPort
	logger *internal.Logger
}

// NewSampler creates a sampler around gen
func NewSampler(gen ports.GeneratorPort, logger *internal.Logger) *Sampler {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	return &Sampler{gen: gen, logger: logger}
}

// withState runs body inside a Scoped State Session on the evaluation's
// definitions.
func withState[T any](ctx context.Context, s *Sampler, ev ports.Evaluation, body func(ports.GeneratorPort) (T, error)) (T, error) {
	return randstate.Run(ctx, s.gen, ev.Definitions(), s.logger, body)
}
