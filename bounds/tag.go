package bounds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/zeebo/blake3"

	"github.com/greco-zk/greco/utils/bignum"
)

// ComputeTag returns the tag binding a proof to its parameters. It hashes with blake3,
// in order: the degree and the bound a as 8-byte little-endian integers, each modulus
// as an 8-byte little-endian integer, then size and twice the number of moduli in
// their minimal little-endian encoding. The digest, read as a little-endian integer,
// is reduced modulo the product of the moduli.
func ComputeTag(degree int, a *big.Int, moduli []uint64, size uint64) (*big.Int, error) {

	if !a.IsUint64() {
		return nil, fmt.Errorf("cannot ComputeTag: bound a=%s does not fit 64 bits", a)
	}

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, uint64(degree))
	binary.Write(buf, binary.LittleEndian, a.Uint64())
	for _, qi := range moduli {
		binary.Write(buf, binary.LittleEndian, qi)
	}
	buf.Write(bignum.MinimalLE(size))
	buf.Write(bignum.MinimalLE(uint64(2 * len(moduli))))

	hasher := blake3.New()
	hasher.Write(buf.Bytes())
	digest := hasher.Sum(nil)

	return new(big.Int).Mod(bignum.FromLE(digest), bignum.Product(moduli)), nil
}
