// Package bignum implements the arbitrary precision integer helpers used by the
// witness and bound computations.
package bignum

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNoModularInverse is returned by ModInverse when x and m are not coprime.
var ErrNoModularInverse = errors.New("modular inverse does not exist")

// NewInts allocates a slice of *big.Int from a slice of uint64.
func NewInts(x []uint64) (y []*big.Int) {
	y = make([]*big.Int, len(x))
	for i := range x {
		y[i] = new(big.Int).SetUint64(x[i])
	}
	return
}

// Copy returns a deep copy of x.
func Copy(x []*big.Int) (y []*big.Int) {
	y = make([]*big.Int, len(x))
	for i := range x {
		y[i] = new(big.Int).Set(x[i])
	}
	return
}

// FloorDiv returns floor(a/b) for b > 0.
func FloorDiv(a, b *big.Int) *big.Int {
	// Euclidean division rounds towards -inf when the divisor is positive.
	return new(big.Int).Div(a, b)
}

// Mod returns a mod m in [0, m).
func Mod(a, m *big.Int) *big.Int {
	return new(big.Int).Mod(a, m)
}

// Center returns the representative of x modulo m in
// [-(m-1)/2, (m-1)/2] for odd m and in [-m/2, m/2-1] for even m.
func Center(x, m *big.Int) *big.Int {
	r := new(big.Int).Mod(x, m)
	half := new(big.Int).Rsh(m, 1)
	if m.Bit(0) == 1 {
		if r.Cmp(half) > 0 {
			r.Sub(r, m)
		}
	} else if r.Cmp(half) >= 0 {
		r.Sub(r, m)
	}
	return r
}

// ModInverse returns x^{-1} mod m in [0, m).
func ModInverse(x, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(new(big.Int).Mod(x, m), m)
	if inv == nil {
		return nil, fmt.Errorf("%w: %s mod %s", ErrNoModularInverse, x, m)
	}
	return inv, nil
}

// Product returns the product of the values.
func Product(values []uint64) *big.Int {
	p := big.NewInt(1)
	for _, v := range values {
		p.Mul(p, new(big.Int).SetUint64(v))
	}
	return p
}

// MaxAbs returns the largest absolute value of the slice, or zero if empty.
func MaxAbs(x []*big.Int) *big.Int {
	m := new(big.Int)
	for i := range x {
		if x[i].CmpAbs(m) > 0 {
			m.Abs(x[i])
		}
	}
	return m
}
