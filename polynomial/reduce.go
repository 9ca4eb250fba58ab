package polynomial

import (
	"math/big"

	"github.com/greco-zk/greco/utils/bignum"
)

// Center returns the centered representative of x modulo m, see bignum.Center.
func Center(x, m *big.Int) *big.Int {
	return bignum.Center(x, m)
}

// ReduceAndCenterCoefficients returns a new slice with every coefficient centered modulo m.
func ReduceAndCenterCoefficients(coeffs []*big.Int, m *big.Int) []*big.Int {
	res := make([]*big.Int, len(coeffs))
	for i := range coeffs {
		res[i] = bignum.Center(coeffs[i], m)
	}
	return res
}

// ReduceInRing reduces coeffs modulo the cyclotomic polynomial and then centers
// the result modulo m. The output has exactly deg(cyclo) coefficients.
func ReduceInRing(coeffs []*big.Int, cyclo Poly, m *big.Int) ([]*big.Int, error) {
	r, err := New(coeffs).ReduceByCyclotomic(cyclo)
	if err != nil {
		return nil, err
	}
	return ReduceAndCenterCoefficients(r.coeffs, m), nil
}

// ReduceCoefficients returns a new slice with every coefficient reduced into [0, p).
func ReduceCoefficients(coeffs []*big.Int, p *big.Int) []*big.Int {
	res := make([]*big.Int, len(coeffs))
	for i := range coeffs {
		res[i] = bignum.Mod(coeffs[i], p)
	}
	return res
}

// ReduceCoefficients2D applies ReduceCoefficients on each row.
func ReduceCoefficients2D(coeffs [][]*big.Int, p *big.Int) [][]*big.Int {
	res := make([][]*big.Int, len(coeffs))
	for i := range coeffs {
		res[i] = ReduceCoefficients(coeffs[i], p)
	}
	return res
}

// RangeCheckCentered returns true if every coefficient lies in [lower, upper].
func RangeCheckCentered(coeffs []*big.Int, lower, upper *big.Int) bool {
	for _, c := range coeffs {
		if c.Cmp(lower) < 0 || c.Cmp(upper) > 0 {
			return false
		}
	}
	return true
}

// RangeCheckStandard returns true if every coefficient, given in [0, p),
// encodes a value of [-bound, bound], that is lies in [0, bound] or in [p-bound, p).
func RangeCheckStandard(coeffs []*big.Int, bound, p *big.Int) bool {
	lower := new(big.Int).Neg(bound)
	return RangeCheckStandard2Bounds(coeffs, lower, bound, p)
}

// RangeCheckStandard2Bounds returns true if every coefficient, given in [0, p),
// encodes a value of [lower, upper] with lower <= 0, that is lies in [0, upper]
// or in [p+lower, p).
func RangeCheckStandard2Bounds(coeffs []*big.Int, lower, upper, p *big.Int) bool {
	low := new(big.Int).Add(p, lower)
	for _, c := range coeffs {
		if c.Sign() < 0 || c.Cmp(p) >= 0 {
			return false
		}
		if c.Cmp(upper) <= 0 {
			continue
		}
		if c.Cmp(low) < 0 {
			return false
		}
	}
	return true
}
