// Package parameters implements the ring parameter sets from which bounds
// and witness vectors are derived.
package parameters

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/greco-zk/greco/utils"
	"github.com/greco-zk/greco/utils/bignum"
)

var (
	// ErrInvalidParameters is returned when a ParametersLiteral cannot be turned into Parameters.
	ErrInvalidParameters = errors.New("invalid parameters")
	// ErrInvalidLevel is returned when a level does not select a non-empty prefix of the moduli.
	ErrInvalidLevel = errors.New("invalid level")
)

// DefaultLiteral is the default parameter set: a single 54-bit modulus
// for N=2048 and a NTT-friendly plaintext modulus.
var DefaultLiteral = ParametersLiteral{
	Degree:           2048,
	PlaintextModulus: 1032193,
	Moduli:           []uint64{18014398492704769},
	Variance:         10,
}

// ParametersLiteral is a literal representation of a ring parameter set. It has public
// fields and is used to express unchecked user-defined parameters literally into Go programs.
// The NewParametersFromLiteral function is used to generate the actual checked parameters
// from the literal representation.
type ParametersLiteral struct {
	Degree           int
	PlaintextModulus uint64
	Moduli           []uint64
	Variance         uint64
}

// Parameters represents a checked parameter set. Its fields are private and immutable.
// See ParametersLiteral for user-specified parameters.
type Parameters struct {
	degree           int
	plaintextModulus uint64
	moduli           []uint64
	variance         uint64
}

// NewParametersFromLiteral instantiates a set of Parameters from a ParametersLiteral.
// It returns the empty parameters Parameters{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(pl ParametersLiteral) (p Parameters, err error) {

	if !utils.IsPowerOfTwo(pl.Degree) || pl.Degree < 2 {
		return Parameters{}, fmt.Errorf("%w: degree must be a power of two greater than one but is %d", ErrInvalidParameters, pl.Degree)
	}

	if pl.PlaintextModulus < 2 {
		return Parameters{}, fmt.Errorf("%w: plaintext modulus must be at least 2 but is %d", ErrInvalidParameters, pl.PlaintextModulus)
	}

	if len(pl.Moduli) == 0 {
		return Parameters{}, fmt.Errorf("%w: moduli chain is empty", ErrInvalidParameters)
	}

	for i, qi := range pl.Moduli {
		if qi < 2 {
			return Parameters{}, fmt.Errorf("%w: modulus q[%d]=%d must be at least 2", ErrInvalidParameters, i, qi)
		}
	}

	if len(utils.GetDistincts(pl.Moduli)) != len(pl.Moduli) {
		return Parameters{}, fmt.Errorf("%w: moduli must be distinct", ErrInvalidParameters)
	}

	if pl.Variance == 0 {
		return Parameters{}, fmt.Errorf("%w: variance must be positive", ErrInvalidParameters)
	}

	moduli := make([]uint64, len(pl.Moduli))
	copy(moduli, pl.Moduli)

	return Parameters{
		degree:           pl.Degree,
		plaintextModulus: pl.PlaintextModulus,
		moduli:           moduli,
		variance:         pl.Variance,
	}, nil
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	moduli := make([]uint64, len(p.moduli))
	copy(moduli, p.moduli)
	return ParametersLiteral{
		Degree:           p.degree,
		PlaintextModulus: p.plaintextModulus,
		Moduli:           moduli,
		Variance:         p.variance,
	}
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.degree
}

// PlaintextModulus returns the plaintext modulus t.
func (p Parameters) PlaintextModulus() uint64 {
	return p.plaintextModulus
}

// Moduli returns a copy of the full moduli chain.
func (p Parameters) Moduli() []uint64 {
	moduli := make([]uint64, len(p.moduli))
	copy(moduli, p.moduli)
	return moduli
}

// ModuliCount returns the number of moduli of the full chain.
func (p Parameters) ModuliCount() int {
	return len(p.moduli)
}

// Variance returns the variance of the noise distribution.
func (p Parameters) Variance() uint64 {
	return p.variance
}

// Sigma returns the standard deviation of the noise distribution.
func (p Parameters) Sigma() float64 {
	return math.Sqrt(float64(p.variance))
}

// GaussianBound returns ceil(6 * sqrt(variance)), the bound on the
// coefficients of the secret and error polynomials.
func (p Parameters) GaussianBound() *big.Int {
	v := bignum.NewFloat(p.variance, 128)
	return bignum.Ceil(new(big.Float).Mul(bignum.NewFloat(6, 128), new(big.Float).Sqrt(v)))
}

// ModuliAtLevel returns the moduli used at the given level: the first
// L-level moduli of the chain. It returns ErrInvalidLevel if the level
// is negative or leaves no modulus.
func (p Parameters) ModuliAtLevel(level int) ([]uint64, error) {
	if level < 0 || level >= len(p.moduli) {
		return nil, fmt.Errorf("%w: level %d with %d moduli", ErrInvalidLevel, level, len(p.moduli))
	}
	moduli := make([]uint64, len(p.moduli)-level)
	copy(moduli, p.moduli)
	return moduli, nil
}

// Equal compares two sets of parameters for equality.
func (p Parameters) Equal(other *Parameters) bool {
	if p.degree != other.degree || p.plaintextModulus != other.plaintextModulus || p.variance != other.variance {
		return false
	}
	if len(p.moduli) != len(other.moduli) {
		return false
	}
	for i := range p.moduli {
		if p.moduli[i] != other.moduli[i] {
			return false
		}
	}
	return true
}

// MarshalJSON returns a JSON representation of this parameter set. See `Marshal` from the `encoding/json` package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See `Unmarshal` from the `encoding/json` package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var pl ParametersLiteral
	if err = json.Unmarshal(data, &pl); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(pl)
	return
}

// String returns a short description of the parameter set, mostly used to name tests.
func (p Parameters) String() string {
	return fmt.Sprintf("N=%d/t=%d/L=%d", p.degree, p.plaintextModulus, len(p.moduli))
}
