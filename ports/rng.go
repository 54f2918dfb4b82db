package ports

import (
	"math/big"
)

// GeneratorPort is the one uniform pseudorandom generator behind every
// sampling builtin. Its state is opaque to callers except through State and
// SetState, which must commute with draws: restoring a captured state and
// repeating the same draws reproduces the same outputs.
type GeneratorPort interface {
	// Seed replaces the state entirely. A nil seed draws one from ambient
	// entropy. Every integer, including negative and very large ones, is a
	// valid seed.
	Seed(seed *big.Int)

	// Integers draws n integers uniformly from the inclusive range [lo, hi].
	// Callers must ensure lo <= hi.
	Integers(lo, hi *big.Int, n int) []*big.Int

	// Reals draws n reals uniformly from the half-open range [lo, hi).
	// lo == hi always yields lo. Callers must ensure lo <= hi.
	Reals(lo, hi float64, n int) []float64

	// WeightedIndices draws count indices from [0, n). Without replacement
	// no index repeats within one call. weights, when non-nil, has length n
	// and holds non-negative probabilities summing to one.
	WeightedIndices(n, count int, replace bool, weights []float64) ([]int, error)

	// State captures the full generator state.
	State() ([]byte, error)

	// SetState installs a state previously returned by State.
	SetState(state []byte) error
}
