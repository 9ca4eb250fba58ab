package serialization

import (
	"fmt"
	"io"
	"math/big"

	"github.com/BurntSushi/toml"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/greco-zk/greco/vectors"
)

// BN254Modulus returns the scalar field modulus of BN254, the default proof modulus.
func BN254Modulus() *big.Int {
	return ecc.BN254.ScalarField()
}

// FieldEncoder maps an integer to the decimal representation of its class modulo the
// proof modulus.
type FieldEncoder func(x *big.Int) string

// NewFieldEncoder returns the FieldEncoder of modulus p. The BN254 scalar field is
// encoded through its native field arithmetic.
func NewFieldEncoder(p *big.Int) FieldEncoder {

	if p.Cmp(fr.Modulus()) == 0 {
		return func(x *big.Int) string {
			var e fr.Element
			e.SetBigInt(x)
			// fr.Element.String prints small negative classes with a minus sign.
			return e.BigInt(new(big.Int)).String()
		}
	}

	return func(x *big.Int) string {
		return new(big.Int).Mod(x, p).String()
	}
}

// CoefficientsTable is a single polynomial of the prover inputs.
type CoefficientsTable struct {
	Coefficients []string `toml:"coefficients"`
}

// ProverInputs is the layout of the Prover.toml file.
type ProverInputs struct {
	Ct0is []CoefficientsTable `toml:"ct0is"`
	Ct1is []CoefficientsTable `toml:"ct1is"`
	Pk0is []CoefficientsTable `toml:"pk0is"`
	Pk1is []CoefficientsTable `toml:"pk1is"`
	R1is  []CoefficientsTable `toml:"r1is"`
	R2is  []CoefficientsTable `toml:"r2is"`
	SK    CoefficientsTable   `toml:"sk"`
	E     CoefficientsTable   `toml:"e"`
}

// NewProverInputs encodes the vectors as elements of the field of modulus p.
func NewProverInputs(vecs *vectors.Vectors, p *big.Int) *ProverInputs {

	encode := NewFieldEncoder(p)

	table := func(v []*big.Int) CoefficientsTable {
		s := make([]string, len(v))
		for i := range v {
			s[i] = encode(v[i])
		}
		return CoefficientsTable{Coefficients: s}
	}

	tables := func(v [][]*big.Int) []CoefficientsTable {
		t := make([]CoefficientsTable, len(v))
		for i := range v {
			t[i] = table(v[i])
		}
		return t
	}

	return &ProverInputs{
		Ct0is: tables(vecs.Ct0is),
		Ct1is: tables(vecs.Ct1is),
		Pk0is: tables(vecs.Pk0is),
		Pk1is: tables(vecs.Pk1is),
		R1is:  tables(vecs.R1is),
		R2is:  tables(vecs.R2is),
		SK:    table(vecs.SK),
		E:     table(vecs.E),
	}
}

// WriteProverTOML writes the prover inputs of the vectors, encoded modulo p, in TOML.
func WriteProverTOML(w io.Writer, vecs *vectors.Vectors, p *big.Int) error {
	if err := toml.NewEncoder(w).Encode(NewProverInputs(vecs, p)); err != nil {
		return fmt.Errorf("cannot WriteProverTOML: %w", err)
	}
	return nil
}
