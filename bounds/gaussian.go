package bounds

import (
	"fmt"
	"math/big"

	"github.com/greco-zk/greco/utils/bignum"
)

const tailPrec = 256

// GaussianTailLog2 returns log2(4n * exp(-bound^2 / (2 * variance))), a union bound
// on the probability that one of the 2n coefficients of the secret and of the error
// sampled from a centered Gaussian of the given variance exceeds bound in absolute value.
func GaussianTailLog2(n int, variance uint64, bound *big.Int) (float64, error) {

	if variance == 0 {
		return 0, fmt.Errorf("cannot GaussianTailLog2: variance is zero")
	}

	b := bignum.NewFloat(bound, tailPrec)
	exponent := new(big.Float).Mul(b, b)
	exponent.Quo(exponent, bignum.NewFloat(2*variance, tailPrec))
	exponent.Neg(exponent)

	p := bignum.Exp(exponent)
	p.Mul(p, bignum.NewFloat(4*n, tailPrec))

	log2, _ := bignum.Log2(p).Float64()
	return log2, nil
}
