package bignum

import (
	"encoding/binary"
	"math/big"
)

// Uint64LE returns the 8 byte little-endian encoding of x.
func Uint64LE(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// MinimalLE returns the shortest little-endian encoding of x, with no
// trailing zero bytes. Zero is encoded as a single zero byte.
func MinimalLE(x uint64) []byte {
	if x == 0 {
		return []byte{0}
	}
	b := Uint64LE(x)
	n := len(b)
	for n > 1 && b[n-1] == 0 {
		n--
	}
	return b[:n]
}

// FromLE interprets b as an unsigned little-endian integer.
func FromLE(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}
