package vectors

import (
	"context"
	"fmt"
	"math/big"

	"github.com/tuneinsight/lattigo/v5/ring"

	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/polynomial"
	"github.com/greco-zk/greco/utils"
	"github.com/greco-zk/greco/utils/bignum"
	"github.com/greco-zk/greco/utils/concurrency"
)

// component is the witness of a single RNS component.
type component struct {
	pk0, pk1, ct0, ct1, r1, r2 []*big.Int
}

// Compute decomposes the encryption ct = (pk0*sk + e, pk1) into its witness
// vectors, see ComputeContext.
func Compute(sk, e ring.Poly, ct, pk [2]ring.Poly, params parameters.Parameters, level int) (*Vectors, error) {
	return ComputeContext(context.Background(), sk, e, ct, pk, params, level)
}

// ComputeContext decomposes the encryption ct = (pk0*sk + e, pk1) into its witness vectors.
//
// Inputs are RNS polynomials in the coefficient domain with at least one row per modulus
// of the given level. For each modulus qi, the first ciphertext component is written
// over Z as
//
//	ct0i = pk0i*sk + e + r1i*qi + r2i*(x^N+1)
//
// with every polynomial centered modulo qi. Components are computed concurrently and
// merged by index. A returned *InvariantViolation means the inputs are not an
// encryption under the given parameters.
func ComputeContext(ctx context.Context, sk, e ring.Poly, ct, pk [2]ring.Poly, params parameters.Parameters, level int) (*Vectors, error) {

	moduli, err := params.ModuliAtLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cannot Compute: %w", err)
	}

	N := params.N()
	L := len(moduli)

	for _, p := range []struct {
		name string
		poly ring.Poly
	}{
		{"sk", sk},
		{"e", e},
		{"ct0", ct[0]},
		{"ct1", ct[1]},
		{"pk0", pk[0]},
		{"pk1", pk[1]},
	} {
		if len(p.poly.Coeffs) < L {
			return nil, fmt.Errorf("cannot Compute: %w: %s has %d rows but level %d requires %d", ErrMalformedInput, p.name, len(p.poly.Coeffs), level, L)
		}
		for i := 0; i < L; i++ {
			if len(p.poly.Coeffs[i]) != N {
				return nil, fmt.Errorf("cannot Compute: %w: %s[%d] has %d coefficients but expected %d", ErrMalformedInput, p.name, i, len(p.poly.Coeffs[i]), N)
			}
		}
	}

	// The secret and the error are small, so their first row centered
	// modulo q0 is their representation over Z.
	q0 := new(big.Int).SetUint64(moduli[0])
	skCoeffs := centeredRow(sk.Coeffs[0], q0)
	eCoeffs := centeredRow(e.Coeffs[0], q0)

	skPoly := polynomial.New(skCoeffs)
	ePoly := polynomial.New(eCoeffs)
	cyclo := polynomial.NewCyclotomic(N)

	components, err := concurrency.Map(ctx, L, 0, func(i int) (*component, error) {
		qi := new(big.Int).SetUint64(moduli[i])
		return decompose(i, N, qi, cyclo, skPoly, ePoly,
			centeredRow(pk[0].Coeffs[i], qi),
			centeredRow(pk[1].Coeffs[i], qi),
			centeredRow(ct[0].Coeffs[i], qi),
			centeredRow(ct[1].Coeffs[i], qi))
	})

	if err != nil {
		return nil, fmt.Errorf("cannot Compute: %w", err)
	}

	v := &Vectors{
		Pk0is: make([][]*big.Int, L),
		Pk1is: make([][]*big.Int, L),
		Ct0is: make([][]*big.Int, L),
		Ct1is: make([][]*big.Int, L),
		R1is:  make([][]*big.Int, L),
		R2is:  make([][]*big.Int, L),
		SK:    skCoeffs,
		E:     eCoeffs,
	}

	for i, c := range components {
		v.Pk0is[i], v.Pk1is[i] = c.pk0, c.pk1
		v.Ct0is[i], v.Ct1is[i] = c.ct0, c.ct1
		v.R1is[i], v.R2is[i] = c.r1, c.r2
	}

	return v, nil
}

// centeredRow returns the coefficients of row, highest degree first, centered modulo q.
func centeredRow(row []uint64, q *big.Int) []*big.Int {
	return polynomial.ReduceAndCenterCoefficients(utils.ReverseSlice(bignum.NewInts(row)), q)
}

func decompose(i, N int, qi *big.Int, cyclo, sk, e polynomial.Poly, pk0, pk1, ct0, ct1 []*big.Int) (*component, error) {

	violation := func(check Check, field string, expected, actual interface{}) error {
		return &InvariantViolation{
			Component: i,
			Check:     check,
			Field:     field,
			Expected:  digest(fmt.Sprint(expected)),
			Actual:    digest(fmt.Sprint(actual)),
		}
	}

	ct0Poly := polynomial.New(ct0)

	ct0hat := polynomial.New(pk0).Mul(sk).Add(e)
	if ct0hat.Degree() != 2*(N-1) {
		return nil, violation(CheckDegree, "ct0hat", 2*(N-1), ct0hat.Degree())
	}

	reduced, err := polynomial.ReduceInRing(ct0hat.Coefficients(), cyclo, qi)
	if err != nil {
		return nil, err
	}

	if !polynomial.New(reduced).Equal(ct0Poly) {
		return nil, violation(CheckCiphertextMismatch, "ct0", polynomial.New(reduced), ct0Poly)
	}

	diff := ct0Poly.Sub(ct0hat)
	diffCentered := diff.ReduceAndCenter(qi)

	r2, rem, err := diffCentered.Div(cyclo)
	if err != nil {
		return nil, err
	}

	if !rem.IsZero() {
		return nil, violation(CheckNonZeroRemainder, "r2", 0, rem)
	}

	if r2.Degree() != N-2 {
		return nil, violation(CheckDegree, "r2", N-2, r2.Degree())
	}

	r2Times := cyclo.Mul(r2)
	if !r2Times.ReduceAndCenter(qi).Equal(diffCentered) {
		return nil, violation(CheckCyclotomicMultiple, "r2", diffCentered, r2Times)
	}

	r1, rem, err := diff.Sub(r2Times).Div(polynomial.Constant(qi))
	if err != nil {
		return nil, err
	}

	if !rem.IsZero() {
		return nil, violation(CheckNonZeroRemainder, "r1", 0, rem)
	}

	if r1.Degree() != 2*(N-1) {
		return nil, violation(CheckDegree, "r1", 2*(N-1), r1.Degree())
	}

	lhs := ct0hat.Add(r1.ScalarMul(qi)).Add(r2Times).TrimLeadingZeros()
	if !lhs.Equal(ct0Poly) {
		return nil, violation(CheckIdentity, "ct0", ct0Poly, lhs)
	}

	ct1Poly := polynomial.New(ct1)
	if !ct1Poly.Equal(polynomial.New(pk1)) {
		return nil, violation(CheckSecondComponent, "ct1", polynomial.New(pk1), ct1Poly)
	}

	return &component{
		pk0: pk0,
		pk1: pk1,
		ct0: ct0,
		ct1: ct1,
		r1:  r1.Coefficients(),
		r2:  r2.Coefficients(),
	}, nil
}
