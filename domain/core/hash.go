package core

import (
	"crypto/md5"
	"math/big"
)

// StringSeed maps a string to a generator seed: the MD5 digest of its UTF-8
// bytes read as a big-endian integer. The mapping does not depend on the
// platform, the process or the Go version.
func StringSeed(s string) *big.Int {
	sum := md5.Sum([]byte(s))
	return new(big.Int).SetBytes(sum[:])
}
