// Package randstate moves the generator state between the Generator Adapter
// and the evaluator's configuration store.
package randstate

import (
	"math/big"

	"symrand/domain/core"
)

// StateName is the configuration slot holding the Random State Value.
const StateName = "$RandomState"

// marker leads every encoded state so leading zero bytes of the blob survive
// the trip through an integer.
const marker byte = 0x01

// Encode turns a generator state of any length into a non-negative integer.
func Encode(state []byte) *big.Int {
	buf := make([]byte, 0, len(state)+1)
	buf = append(buf, marker)
	buf = append(buf, state...)
	return new(big.Int).SetBytes(buf)
}

// Decode inverts Encode. Integers never produced by Encode fail with
// core.ErrInvalidState.
func Decode(v *big.Int) ([]byte, error) {
	if v == nil || v.Sign() <= 0 {
		return nil, core.NewInvalidStateError("state must be a positive integer")
	}
	b := v.Bytes()
	if b[0] != marker {
		return nil, core.NewInvalidStateError("missing state marker")
	}
	return b[1:], nil
}
