// Package polynomial implements dense polynomials with arbitrary precision integer
// coefficients and the modular reductions needed to decompose ring equations over Z.
//
// Coefficients are stored from the highest degree down to the constant term.
// All operations return new polynomials and never alias their operands.
package polynomial

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/greco-zk/greco/utils/bignum"
)

var (
	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero polynomial")
	// ErrInvalidDivisor is returned when the leading coefficient of a divisor is zero.
	ErrInvalidDivisor = errors.New("divisor has a zero leading coefficient")
)

// Poly is a polynomial with *big.Int coefficients, highest degree first.
type Poly struct {
	coeffs []*big.Int
}

// New returns a polynomial with a copy of the given coefficients, highest degree first.
// An empty slice yields the zero polynomial of degree 0.
func New(coeffs []*big.Int) Poly {
	if len(coeffs) == 0 {
		return Zero(0)
	}
	return Poly{coeffs: bignum.Copy(coeffs)}
}

// NewFromInt64 returns a polynomial from int64 coefficients, highest degree first.
func NewFromInt64(coeffs ...int64) Poly {
	if len(coeffs) == 0 {
		return Zero(0)
	}
	p := Poly{coeffs: make([]*big.Int, len(coeffs))}
	for i := range coeffs {
		p.coeffs[i] = big.NewInt(coeffs[i])
	}
	return p
}

// Zero returns the zero polynomial with degree+1 coefficients.
func Zero(degree int) Poly {
	p := Poly{coeffs: make([]*big.Int, degree+1)}
	for i := range p.coeffs {
		p.coeffs[i] = new(big.Int)
	}
	return p
}

// Constant returns the degree 0 polynomial c.
func Constant(c *big.Int) Poly {
	return Poly{coeffs: []*big.Int{new(big.Int).Set(c)}}
}

// NewCyclotomic returns x^n + 1.
func NewCyclotomic(n int) Poly {
	p := Zero(n)
	p.coeffs[0].SetInt64(1)
	p.coeffs[n].SetInt64(1)
	return p
}

// Coefficients returns a copy of the coefficients, highest degree first.
func (p Poly) Coefficients() []*big.Int {
	return bignum.Copy(p.coeffs)
}

// Coeff returns a copy of the coefficient of x^i.
func (p Poly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p.coeffs) {
		return new(big.Int)
	}
	return new(big.Int).Set(p.coeffs[len(p.coeffs)-1-i])
}

// Len returns the number of stored coefficients.
func (p Poly) Len() int {
	return len(p.coeffs)
}

// Degree returns the number of stored coefficients minus one.
// Leading zeros are counted, see TrimLeadingZeros.
func (p Poly) Degree() int {
	return len(p.coeffs) - 1
}

// IsZero returns true if all coefficients are zero.
func (p Poly) IsZero() bool {
	for _, c := range p.coeffs {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// TrimLeadingZeros returns a copy of p without its leading zero coefficients.
// At least one coefficient is kept.
func (p Poly) TrimLeadingZeros() Poly {
	i := 0
	for i < len(p.coeffs)-1 && p.coeffs[i].Sign() == 0 {
		i++
	}
	return New(p.coeffs[i:])
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	return New(p.coeffs)
}

// Equal returns true if p and other represent the same polynomial.
// Leading zeros are ignored.
func (p Poly) Equal(other Poly) bool {
	a, b := p.TrimLeadingZeros().coeffs, other.TrimLeadingZeros().coeffs
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// String returns a textual representation of p, mostly used for diagnostics.
func (p Poly) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p.coeffs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Add returns p + other.
func (p Poly) Add(other Poly) Poly {
	n := max(len(p.coeffs), len(other.coeffs))
	res := Zero(n - 1)
	for i := 0; i < n; i++ {
		if j := len(p.coeffs) - n + i; j >= 0 {
			res.coeffs[i].Add(res.coeffs[i], p.coeffs[j])
		}
		if j := len(other.coeffs) - n + i; j >= 0 {
			res.coeffs[i].Add(res.coeffs[i], other.coeffs[j])
		}
	}
	return res
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	res := Poly{coeffs: make([]*big.Int, len(p.coeffs))}
	for i := range p.coeffs {
		res.coeffs[i] = new(big.Int).Neg(p.coeffs[i])
	}
	return res
}

// Sub returns p - other.
func (p Poly) Sub(other Poly) Poly {
	return p.Add(other.Neg())
}

// ScalarMul returns c * p.
func (p Poly) ScalarMul(c *big.Int) Poly {
	res := Poly{coeffs: make([]*big.Int, len(p.coeffs))}
	for i := range p.coeffs {
		res.coeffs[i] = new(big.Int).Mul(p.coeffs[i], c)
	}
	return res
}

// Mul returns the product p * other computed by schoolbook convolution.
// The result has degree deg(p) + deg(other), with zero coefficients if either
// operand is zero.
func (p Poly) Mul(other Poly) Poly {

	res := Zero(p.Degree() + other.Degree())

	if p.IsZero() || other.IsZero() {
		return res
	}

	tmp := new(big.Int)
	for i, a := range p.coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range other.coeffs {
			res.coeffs[i+j].Add(res.coeffs[i+j], tmp.Mul(a, b))
		}
	}
	return res
}

// Div returns the quotient and the remainder of the long division of p by divisor.
// The quotient coefficients are obtained by truncated integer division by the
// leading coefficient of the divisor, so the division is exact over Z only when
// that coefficient divides every intermediate leading term.
// If deg(p) < deg(divisor), the quotient is zero and the remainder is p.
// The remainder is returned without leading zeros.
func (p Poly) Div(divisor Poly) (quo, rem Poly, err error) {

	if divisor.IsZero() {
		return Poly{}, Poly{}, ErrDivisionByZero
	}

	lead := divisor.coeffs[0]
	if lead.Sign() == 0 {
		return Poly{}, Poly{}, fmt.Errorf("%w: %s", ErrInvalidDivisor, divisor)
	}

	n, d := p.Degree(), divisor.Degree()

	if n < d {
		return Zero(0), p.Clone(), nil
	}

	quo = Zero(n - d)
	r := bignum.Copy(p.coeffs)

	tmp := new(big.Int)
	for i := 0; i <= n-d; i++ {
		q := quo.coeffs[i].Quo(r[i], lead)
		if q.Sign() == 0 {
			continue
		}
		for j, c := range divisor.coeffs {
			r[i+j].Sub(r[i+j], tmp.Mul(q, c))
		}
	}

	rem = New(r[n-d+1:]).TrimLeadingZeros()

	return quo, rem, nil
}

// ReduceByCyclotomic returns p mod cyclo as a polynomial with exactly
// deg(cyclo) coefficients, the remainder being right-aligned.
func (p Poly) ReduceByCyclotomic(cyclo Poly) (Poly, error) {

	_, rem, err := p.Div(cyclo)
	if err != nil {
		return Poly{}, fmt.Errorf("cannot ReduceByCyclotomic: %w", err)
	}

	n := cyclo.Degree()
	rem = rem.TrimLeadingZeros()
	if rem.Len() > n {
		return Poly{}, fmt.Errorf("cannot ReduceByCyclotomic: remainder has %d coefficients for %d slots", rem.Len(), n)
	}

	res := Zero(n - 1)
	for i, c := range rem.coeffs {
		res.coeffs[n-rem.Len()+i].Set(c)
	}
	return res, nil
}

// ReduceAndCenter returns p with every coefficient centered modulo m, see Center.
func (p Poly) ReduceAndCenter(m *big.Int) Poly {
	return Poly{coeffs: ReduceAndCenterCoefficients(p.coeffs, m)}
}

// Evaluate returns p(x) using Horner's method.
func (p Poly) Evaluate(x *big.Int) *big.Int {
	res := new(big.Int)
	for _, c := range p.coeffs {
		res.Mul(res, x)
		res.Add(res, c)
	}
	return res
}
