package testkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"symrand/adapters/generator"
	"symrand/adapters/memory"
	"symrand/app"
	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal"
	"symrand/internal/evaluation"
	"symrand/ports"
)

// TestKit wires a kernel to an in-memory store for tests
type TestKit struct {
	Generator *generator.MersenneTwister
	Repo      *memory.Repository
	Kernel    *app.Kernel
	Logger    *internal.Logger
}

// NewTestKit creates a kit with a fresh generator and empty store
func NewTestKit() *TestKit {
	logger := internal.NewDiscardLogger()
	gen := generator.NewMersenneTwister()
	return &TestKit{
		Generator: gen,
		Repo:      memory.NewRepository(),
		Kernel:    app.NewKernel(gen, logger),
		Logger:    logger,
	}
}

// NewEvaluation starts an evaluation in a new session
func (k *TestKit) NewEvaluation() *evaluation.Evaluation {
	id := core.NewSessionID()
	return evaluation.New(id, k.Repo.Scoped(id), k.Logger)
}

// Store returns the store of a session
func (k *TestKit) Store(id core.SessionID) ports.ConfigStore {
	return k.Repo.Scoped(id)
}

// MustEval evaluates e and fails the test on a non-diagnostic error
func (k *TestKit) MustEval(t testing.TB, ev ports.Evaluation, e expr.Expr) expr.Expr {
	t.Helper()
	result, err := k.Kernel.Evaluate(context.Background(), ev, e)
	require.NoError(t, err)
	return result
}

// Call builds name[args...]
func Call(name string, args ...expr.Expr) expr.Expr {
	return expr.New(name, args...)
}

// Ints builds a list of integers
func Ints(values ...int64) expr.Expr {
	leaves := make([]expr.Expr, len(values))
	for i, v := range values {
		leaves[i] = expr.NewInteger(v)
	}
	return expr.List(leaves...)
}

// MustParse parses the JSON expression form
func MustParse(t testing.TB, data string) expr.Expr {
	t.Helper()
	e, err := expr.ParseJSON([]byte(data))
	require.NoError(t, err)
	return e
}
