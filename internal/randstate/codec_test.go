package randstate

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symrand/adapters/generator"
	"symrand/domain/core"
)

func TestCodecRoundTripsReachableStates(t *testing.T) {
	for seed := int64(-25); seed < 25; seed++ {
		g := generator.NewSeeded(seed)
		g.Reals(0, 1, int(seed+30)) // vary the position index

		state, err := g.State()
		require.NoError(t, err)

		encoded := Encode(state)
		require.True(t, encoded.Sign() > 0)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.True(t, bytes.Equal(state, decoded), "seed %d did not round-trip", seed)
	}
}

func TestCodecKeepsLeadingZeros(t *testing.T) {
	for _, blob := range [][]byte{{}, {0}, {0, 0, 7}, {0xff, 0}} {
		decoded, err := Decode(Encode(blob))
		require.NoError(t, err)
		assert.Equal(t, blob, decoded)
	}
}

func TestDecodeRejectsForeignIntegers(t *testing.T) {
	for _, v := range []*big.Int{nil, big.NewInt(0), big.NewInt(-5), big.NewInt(2), big.NewInt(0x0200)} {
		_, err := Decode(v)
		assert.True(t, errors.Is(err, core.ErrInvalidState), "value %v", v)
	}
}

func TestEncodedStateGrowsWithBlob(t *testing.T) {
	short := Encode(make([]byte, 4))
	long := Encode(make([]byte, generator.StateSize))

	assert.Less(t, short.BitLen(), long.BitLen())
	assert.Equal(t, 8*generator.StateSize+1, long.BitLen())
}
