package bounds

import (
	"fmt"
	"math/big"

	"github.com/greco-zk/greco/polynomial"
	"github.com/greco-zk/greco/vectors"
)

// CheckConstraints verifies that every coefficient of vecs lies within its bound, both
// for the centered representation and for the standard representation modulo p, p being
// the modulus of the proof system. It returns an error wrapping vectors.ErrMalformedInput
// if vecs does not match the degree and number of moduli of b, and a
// *vectors.InvariantViolation for the first coefficient out of bound.
func (b *Bounds) CheckConstraints(vecs *vectors.Vectors, p *big.Int) error {

	L := b.NumModuli()

	if err := vecs.CheckCorrectLengths(L, b.Degree); err != nil {
		return fmt.Errorf("cannot CheckConstraints: %w", err)
	}

	std := vecs.StandardForm(p)

	type check struct {
		field     string
		component int
		centered  []*big.Int
		standard  []*big.Int
		low, up   *big.Int
	}

	neg := func(x *big.Int) *big.Int {
		return new(big.Int).Neg(x)
	}

	checks := []check{
		{"sk", -1, vecs.SK, std.SK, neg(b.SK), b.SK},
		{"e", -1, vecs.E, std.E, neg(b.E), b.E},
	}

	for i := 0; i < L; i++ {
		r2 := b.R2[i]
		checks = append(checks,
			check{"pk0is", i, vecs.Pk0is[i], std.Pk0is[i], neg(r2), r2},
			check{"pk1is", i, vecs.Pk1is[i], std.Pk1is[i], neg(r2), r2},
			check{"ct0is", i, vecs.Ct0is[i], nil, neg(r2), r2},
			check{"ct1is", i, vecs.Ct1is[i], nil, neg(r2), r2},
			check{"r2is", i, vecs.R2is[i], std.R2is[i], neg(r2), r2},
			check{"r1is", i, vecs.R1is[i], std.R1is[i], b.R1Low[i], b.R1Up[i]},
		)
	}

	for _, c := range checks {

		if !polynomial.RangeCheckCentered(c.centered, c.low, c.up) {
			return violation(c.component, c.field, c.low, c.up, firstOutOfRange(c.centered, c.low, c.up))
		}

		if c.standard != nil && !polynomial.RangeCheckStandard2Bounds(c.standard, c.low, c.up, p) {
			return violation(c.component, c.field+" (mod p)", c.low, c.up, firstOutOfRange(c.centered, c.low, c.up))
		}
	}

	return nil
}

func violation(component int, field string, low, up, actual *big.Int) error {
	v := &vectors.InvariantViolation{
		Component: component,
		Check:     vectors.CheckBoundExceeded,
		Field:     field,
		Expected:  fmt.Sprintf("[%s, %s]", low, up),
		Actual:    "nil",
	}
	if actual != nil {
		v.Actual = actual.String()
	}
	return v
}

func firstOutOfRange(coeffs []*big.Int, low, up *big.Int) *big.Int {
	for _, c := range coeffs {
		if c.Cmp(low) < 0 || c.Cmp(up) > 0 {
			return c
		}
	}
	return nil
}
