// Package generator implements ports.GeneratorPort on top of the 32 bit
// Mersenne Twister from gonum.
package generator

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/big"
	"math/rand/v2"
	"os"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"

	"symrand/domain/core"
	"symrand/ports"
)

const (
	mtWords = 624

	// StateSize is the length of a captured state: the 624 state words
	// followed by the position index, all big-endian uint32.
	StateSize = (mtWords + 1) * 4

	entropyWords = 8
)

var one = big.NewInt(1)

var _ ports.GeneratorPort = (*MersenneTwister)(nil)

// MersenneTwister owns exactly one MT19937 instance. It is not safe for
// concurrent use; callers serialise access around a state session.
type MersenneTwister struct {
	src     *prng.MT19937
	rnd     *rand.Rand
	entropy io.Reader
}

// Option configures a MersenneTwister.
type Option func(*MersenneTwister)

// WithEntropy replaces crypto/rand as the source of ambient entropy.
func WithEntropy(r io.Reader) Option {
	return func(g *MersenneTwister) { g.entropy = r }
}

// NewMersenneTwister returns a generator seeded from ambient entropy.
func NewMersenneTwister(opts ...Option) *MersenneTwister {
	src := prng.NewMT19937()
	g := &MersenneTwister{
		src:     src,
		rnd:     rand.New(src),
		entropy: crand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.Seed(nil)
	return g
}

// NewSeeded returns a generator seeded with seed.
func NewSeeded(seed int64) *MersenneTwister {
	g := NewMersenneTwister()
	g.Seed(big.NewInt(seed))
	return g
}

// Seed re-initialises the generator. Negative and arbitrarily large seeds are
// accepted: the seed is zig-zag mapped onto the non-negative integers and
// split into 32-bit key words, so distinct seeds give distinct key vectors.
func (g *MersenneTwister) Seed(seed *big.Int) {
	if seed == nil {
		g.src.SeedFromKeys(g.entropyKeys())
		return
	}
	g.src.SeedFromKeys(seedKeys(seed))
}

// Integers draws n integers from [lo, hi].
func (g *MersenneTwister) Integers(lo, hi *big.Int, n int) []*big.Int {
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, one)

	out := make([]*big.Int, n)
	for i := range out {
		v := g.below(span)
		out[i] = v.Add(v, lo)
	}
	return out
}

// Reals draws n reals from [lo, hi).
func (g *MersenneTwister) Reals(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if lo == hi {
		for i := range out {
			out[i] = lo
		}
		return out
	}

	// hi-lo overflows for finite endpoints near ±MaxFloat64, so interpolate
	// between the endpoints instead of scaling the span.
	unit := distuv.Uniform{Min: 0, Max: 1, Src: g.src}
	for i := range out {
		r := unit.Rand()
		v := (1-r)*lo + r*hi
		switch {
		case v < lo:
			v = lo
		case v >= hi:
			v = math.Nextafter(hi, lo)
		}
		out[i] = v
	}
	return out
}

// WeightedIndices draws count indices from [0, n).
func (g *MersenneTwister) WeightedIndices(n, count int, replace bool, weights []float64) ([]int, error) {
	if n < 0 || count < 0 {
		return nil, fmt.Errorf("%w: n=%d count=%d", core.ErrUnsupportedArgument, n, count)
	}
	if weights != nil && len(weights) != n {
		return nil, fmt.Errorf("%w: %d weights for %d elements", core.ErrInvalidWeights, len(weights), n)
	}
	idxs := make([]int, count)
	if count == 0 {
		return idxs, nil
	}
	if n == 0 {
		return nil, core.ErrEmptyPopulation
	}
	if !replace && count > n {
		return nil, core.NewSampleSizeError(count, n)
	}

	if weights == nil {
		if !replace {
			sampleuv.WithoutReplacement(idxs, n, g.src)
			return idxs, nil
		}
		for i := range idxs {
			idxs[i] = g.rnd.IntN(n)
		}
		return idxs, nil
	}

	w := sampleuv.NewWeighted(weights, g.src)
	for i := range idxs {
		idx, ok := w.Take()
		if !ok {
			if replace {
				return nil, fmt.Errorf("%w: weights sum to zero", core.ErrInvalidWeights)
			}
			return nil, fmt.Errorf("%w: requested %d", core.ErrInsufficientWeight, count)
		}
		if replace {
			w.Reweight(idx, weights[idx])
		}
		idxs[i] = idx
	}
	return idxs, nil
}

// State returns the binary MT19937 state.
func (g *MersenneTwister) State() ([]byte, error) {
	return g.src.MarshalBinary()
}

// SetState installs a state captured by State.
func (g *MersenneTwister) SetState(state []byte) error {
	if len(state) != StateSize {
		return core.NewInvalidStateError(fmt.Sprintf("expected %d bytes, got %d", StateSize, len(state)))
	}
	if pos := binary.BigEndian.Uint32(state[mtWords*4:]); pos > mtWords {
		return core.NewInvalidStateError(fmt.Sprintf("position %d out of range", pos))
	}
	if err := g.src.UnmarshalBinary(state); err != nil {
		return core.NewInvalidStateError(err.Error())
	}
	return nil
}

// below returns a uniform integer in [0, span). span must be positive.
func (g *MersenneTwister) below(span *big.Int) *big.Int {
	if span.IsUint64() {
		return new(big.Int).SetUint64(g.rnd.Uint64N(span.Uint64()))
	}

	nbits := new(big.Int).Sub(span, one).BitLen()
	nwords := (nbits + 63) / 64
	buf := make([]byte, nwords*8)
	v := new(big.Int)
	for {
		for w := 0; w < nwords; w++ {
			binary.BigEndian.PutUint64(buf[w*8:], g.rnd.Uint64())
		}
		excess := nwords*64 - nbits
		i := 0
		for ; excess >= 8; excess -= 8 {
			buf[i] = 0
			i++
		}
		buf[i] &= 0xff >> excess

		v.SetBytes(buf)
		if v.Cmp(span) < 0 {
			return v
		}
	}
}

func (g *MersenneTwister) entropyKeys() []uint32 {
	var buf [entropyWords * 4]byte
	if _, err := io.ReadFull(g.entropy, buf[:]); err != nil {
		binary.BigEndian.PutUint64(buf[0:], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(buf[8:], uint64(os.Getpid()))
	}
	keys := make([]uint32, entropyWords)
	for i := range keys {
		keys[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return keys
}

// seedKeys maps x to 2x for x >= 0 and -2x-1 for x < 0, then splits the
// result into little-endian 32-bit words.
func seedKeys(seed *big.Int) []uint32 {
	z := new(big.Int).Lsh(seed, 1)
	if seed.Sign() < 0 {
		z.Neg(z)
		z.Sub(z, one)
	}

	b := z.Bytes()
	keys := make([]uint32, 0, (len(b)+3)/4)
	for end := len(b); end > 0; end -= 4 {
		start := max(end-4, 0)
		var w uint32
		for _, c := range b[start:end] {
			w = w<<8 | uint32(c)
		}
		keys = append(keys, w)
	}
	if len(keys) == 0 {
		keys = append(keys, 0)
	}
	return keys
}
