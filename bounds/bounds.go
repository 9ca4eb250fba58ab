// Package bounds implements the derivation of the coefficient bounds that the witness
// vectors of a ciphertext validity proof must satisfy, their binding tag and the
// constraint checker that validates witness vectors against them.
package bounds

import (
	"fmt"
	"math/big"

	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/utils/bignum"
)

// Bounds stores the bounds of the witness vectors for a parameter set at a given level.
// Bounds indexed by component follow the order of the moduli.
type Bounds struct {
	Degree           int
	Level            int
	PlaintextModulus uint64
	Moduli           []uint64

	// SK and E bound the coefficients of the secret and of the error.
	SK *big.Int
	E  *big.Int
	// A bounds the coefficients of the public polynomial a, centered modulo the first modulus.
	A *big.Int

	R1Low []*big.Int
	R1Up  []*big.Int
	R2    []*big.Int
	// K0 stores (-t)^{-1} mod qi for each component.
	K0 []*big.Int

	// QModT is Q mod t centered, with Q the product of the moduli.
	QModT *big.Int
	// Size is the number of coefficients committed by the proof.
	Size uint64
	Tag  *big.Int

	// GaussianTailLog2 is log2 of an upper bound on the probability that a
	// sampled secret or error coefficient falls outside of [-E, E].
	GaussianTailLog2 float64
}

// PlaintextRange returns the range [low, high] of the centered plaintext coefficients.
// high = floor((t-1)/2) and low = -high for odd t, low = floor(-(t-1)/2) - 1 for even t.
func PlaintextRange(t uint64) (low, high *big.Int) {
	tm1 := new(big.Int).SetUint64(t - 1)
	high = bignum.FloorDiv(tm1, big.NewInt(2))
	if t&1 == 1 {
		low = new(big.Int).Neg(high)
	} else {
		low = bignum.FloorDiv(new(big.Int).Neg(tm1), big.NewInt(2))
		low.Sub(low, big.NewInt(1))
	}
	return
}

// Compute derives the bounds of the witness vectors for the moduli of the given level.
func Compute(params parameters.Parameters, level int) (*Bounds, error) {

	moduli, err := params.ModuliAtLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cannot Compute: %w", err)
	}

	N := params.N()
	L := len(moduli)
	t := new(big.Int).SetUint64(params.PlaintextModulus())
	B := params.GaussianBound()

	ptxtLow, ptxtHigh := PlaintextRange(params.PlaintextModulus())

	b := &Bounds{
		Degree:           N,
		Level:            level,
		PlaintextModulus: params.PlaintextModulus(),
		Moduli:           moduli,
		SK:               new(big.Int).Set(B),
		E:                new(big.Int).Set(B),
		R1Low:            make([]*big.Int, L),
		R1Up:             make([]*big.Int, L),
		R2:               make([]*big.Int, L),
		K0:               make([]*big.Int, L),
	}

	// (N*B + 2) bounds the l1-norm of pk0*sk + e relative to qi/2.
	nb2 := new(big.Int).Mul(big.NewInt(int64(N)), B)
	nb2.Add(nb2, big.NewInt(2))

	negT := new(big.Int).Neg(t)

	for i, q := range moduli {

		qi := new(big.Int).SetUint64(q)

		qiBound := new(big.Int).Rsh(new(big.Int).Sub(qi, big.NewInt(1)), 1)

		k0, err := bignum.ModInverse(negT, qi)
		if err != nil {
			return nil, fmt.Errorf("cannot Compute: k0 for q[%d]: %w", i, err)
		}
		k0Abs := new(big.Int).Abs(k0)

		noise := new(big.Int).Mul(nb2, qiBound)
		noise.Add(noise, B)

		low := new(big.Int).Mul(ptxtLow, k0Abs)
		low.Sub(low, noise)

		up := new(big.Int).Mul(ptxtHigh, k0Abs)
		up.Add(up, noise)

		b.R1Low[i] = bignum.FloorDiv(low, qi)
		b.R1Up[i] = bignum.FloorDiv(up, qi)
		b.R2[i] = qiBound
		b.K0[i] = k0
	}

	b.A = new(big.Int).Set(b.R2[0])

	Q := bignum.Product(moduli)
	b.QModT = bignum.Center(Q, t)

	b.Size = uint64((10*N-4)*L + 4*N)

	if b.Tag, err = ComputeTag(N, b.A, moduli, b.Size); err != nil {
		return nil, fmt.Errorf("cannot Compute: %w", err)
	}

	if b.GaussianTailLog2, err = GaussianTailLog2(N, params.Variance(), B); err != nil {
		return nil, fmt.Errorf("cannot Compute: %w", err)
	}

	return b, nil
}

// NumModuli returns the number of components.
func (b *Bounds) NumModuli() int {
	return len(b.Moduli)
}

// Equal returns true if b and other store the same bounds.
func (b *Bounds) Equal(other *Bounds) bool {

	if b.Degree != other.Degree || b.Level != other.Level || b.PlaintextModulus != other.PlaintextModulus || b.Size != other.Size {
		return false
	}

	if len(b.Moduli) != len(other.Moduli) {
		return false
	}

	for i := range b.Moduli {
		if b.Moduli[i] != other.Moduli[i] ||
			b.R1Low[i].Cmp(other.R1Low[i]) != 0 ||
			b.R1Up[i].Cmp(other.R1Up[i]) != 0 ||
			b.R2[i].Cmp(other.R2[i]) != 0 ||
			b.K0[i].Cmp(other.K0[i]) != 0 {
			return false
		}
	}

	return b.SK.Cmp(other.SK) == 0 &&
		b.E.Cmp(other.E) == 0 &&
		b.A.Cmp(other.A) == 0 &&
		b.QModT.Cmp(other.QModT) == 0 &&
		b.Tag.Cmp(other.Tag) == 0
}
