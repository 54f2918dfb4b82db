package app

import (
	"context"
	"math/big"

	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/ports"
)

const seedRandomDoc = "`SeedRandom[n]` resets the pseudorandom generator with seed *n*.\n\n" +
	"`SeedRandom[\"s\"]` seeds with the MD5 digest of the string, the same on every platform.\n\n" +
	"`SeedRandom[]` seeds from the operating system's entropy source.\n\n" +
	"Seeding twice with the same value reproduces the same subsequent draws.\n"

// SeedRandom reseeds the generator and persists the fresh state.
type SeedRandom struct {
	*Sampler
}

func (SeedRandom) Name() string { return "SeedRandom" }
func (SeedRandom) Doc() string  { return seedRandomDoc }

func (b SeedRandom) Apply(ctx context.Context, ev ports.Evaluation, args []expr.Expr) (expr.Expr, error) {
	if len(args) > 1 {
		return nil, argCountDiagnostic(b.Name(), len(args), 0, 1)
	}

	var seed *big.Int
	if len(args) == 1 {
		switch x := args[0].(type) {
		case expr.Integer:
			seed = x.Big()
		case expr.String:
			seed = core.StringSeed(x.Value())
		default:
			return nil, newDiagnostic(b.Name(), "seed", x)
		}
	}

	return withState(ctx, b.Sampler, ev, func(g ports.GeneratorPort) (expr.Expr, error) {
		if seed == nil {
			b.logger.Debug("seeding from entropy")
		} else {
			b.logger.Debug("seeding with %d bit value", seed.BitLen())
		}
		g.Seed(seed)
		return expr.Null, nil
	})
}
