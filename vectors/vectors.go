// Package vectors implements the witness vectors of a ciphertext validity proof and
// their computation from an RLWE encryption instance.
package vectors

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/greco-zk/greco/polynomial"
	"github.com/greco-zk/greco/utils/bignum"
)

// Vectors stores the witness of a public-key encryption, one row per RNS component
// for the component-specific vectors. Coefficients are stored highest degree first.
//
// For a ring of degree N, the pk, ct, sk and e vectors have N coefficients, the
// r1 vectors 2N-1 and the r2 vectors N-1.
type Vectors struct {
	Pk0is [][]*big.Int
	Pk1is [][]*big.Int
	Ct0is [][]*big.Int
	Ct1is [][]*big.Int
	R1is  [][]*big.Int
	R2is  [][]*big.Int
	SK    []*big.Int
	E     []*big.Int
}

// New returns zero-filled vectors for numModuli components of degree n.
func New(numModuli, n int) *Vectors {

	zeros := func(size int) []*big.Int {
		return polynomial.Zero(size - 1).Coefficients()
	}

	rows := func(size int) [][]*big.Int {
		m := make([][]*big.Int, numModuli)
		for i := range m {
			m[i] = zeros(size)
		}
		return m
	}

	return &Vectors{
		Pk0is: rows(n),
		Pk1is: rows(n),
		Ct0is: rows(n),
		Ct1is: rows(n),
		R1is:  rows(2*(n-1) + 1),
		R2is:  rows(n - 1),
		SK:    zeros(n),
		E:     zeros(n),
	}
}

// NumModuli returns the number of RNS components.
func (v *Vectors) NumModuli() int {
	return len(v.Ct0is)
}

// Clone returns a deep copy of v.
func (v *Vectors) Clone() *Vectors {

	rows := func(m [][]*big.Int) [][]*big.Int {
		c := make([][]*big.Int, len(m))
		for i := range m {
			c[i] = bignum.Copy(m[i])
		}
		return c
	}

	return &Vectors{
		Pk0is: rows(v.Pk0is),
		Pk1is: rows(v.Pk1is),
		Ct0is: rows(v.Ct0is),
		Ct1is: rows(v.Ct1is),
		R1is:  rows(v.R1is),
		R2is:  rows(v.R2is),
		SK:    bignum.Copy(v.SK),
		E:     bignum.Copy(v.E),
	}
}

// StandardForm returns a copy of v with every coefficient reduced into [0, p).
func (v *Vectors) StandardForm(p *big.Int) *Vectors {
	return &Vectors{
		Pk0is: polynomial.ReduceCoefficients2D(v.Pk0is, p),
		Pk1is: polynomial.ReduceCoefficients2D(v.Pk1is, p),
		Ct0is: polynomial.ReduceCoefficients2D(v.Ct0is, p),
		Ct1is: polynomial.ReduceCoefficients2D(v.Ct1is, p),
		R1is:  polynomial.ReduceCoefficients2D(v.R1is, p),
		R2is:  polynomial.ReduceCoefficients2D(v.R2is, p),
		SK:    polynomial.ReduceCoefficients(v.SK, p),
		E:     polynomial.ReduceCoefficients(v.E, p),
	}
}

// CheckCorrectLengths returns an error wrapping ErrMalformedInput if v does not
// have numModuli rows of the expected length for degree n.
func (v *Vectors) CheckCorrectLengths(numModuli, n int) error {

	for _, f := range []struct {
		name string
		rows [][]*big.Int
		size int
	}{
		{"pk0is", v.Pk0is, n},
		{"pk1is", v.Pk1is, n},
		{"ct0is", v.Ct0is, n},
		{"ct1is", v.Ct1is, n},
		{"r1is", v.R1is, 2*(n-1) + 1},
		{"r2is", v.R2is, n - 1},
	} {
		if len(f.rows) != numModuli {
			return fmt.Errorf("%w: %s has %d rows but expected %d", ErrMalformedInput, f.name, len(f.rows), numModuli)
		}
		for i := range f.rows {
			if len(f.rows[i]) != f.size {
				return fmt.Errorf("%w: %s[%d] has %d coefficients but expected %d", ErrMalformedInput, f.name, i, len(f.rows[i]), f.size)
			}
		}
	}

	if len(v.SK) != n {
		return fmt.Errorf("%w: sk has %d coefficients but expected %d", ErrMalformedInput, len(v.SK), n)
	}

	if len(v.E) != n {
		return fmt.Errorf("%w: e has %d coefficients but expected %d", ErrMalformedInput, len(v.E), n)
	}

	return nil
}

type vectorsJSON struct {
	Pk0is [][]string `json:"pk0is"`
	Pk1is [][]string `json:"pk1is"`
	SK    []string   `json:"sk"`
	E     []string   `json:"e"`
	R2is  [][]string `json:"r2is"`
	R1is  [][]string `json:"r1is"`
	Ct0is [][]string `json:"ct0is"`
	Ct1is [][]string `json:"ct1is"`
}

func toStrings(v []*big.Int) []string {
	s := make([]string, len(v))
	for i := range v {
		s[i] = v[i].String()
	}
	return s
}

func toStrings2D(v [][]*big.Int) [][]string {
	s := make([][]string, len(v))
	for i := range v {
		s[i] = toStrings(v[i])
	}
	return s
}

func fromStrings(s []string) ([]*big.Int, error) {
	v := make([]*big.Int, len(s))
	for i := range s {
		var ok bool
		if v[i], ok = new(big.Int).SetString(s[i], 10); !ok {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrMalformedInput, s[i])
		}
	}
	return v, nil
}

func fromStrings2D(s [][]string) (v [][]*big.Int, err error) {
	v = make([][]*big.Int, len(s))
	for i := range s {
		if v[i], err = fromStrings(s[i]); err != nil {
			return nil, err
		}
	}
	return
}

// MarshalJSON encodes v with every coefficient as a decimal string.
func (v *Vectors) MarshalJSON() ([]byte, error) {
	return json.Marshal(vectorsJSON{
		Pk0is: toStrings2D(v.Pk0is),
		Pk1is: toStrings2D(v.Pk1is),
		SK:    toStrings(v.SK),
		E:     toStrings(v.E),
		R2is:  toStrings2D(v.R2is),
		R1is:  toStrings2D(v.R1is),
		Ct0is: toStrings2D(v.Ct0is),
		Ct1is: toStrings2D(v.Ct1is),
	})
}

// UnmarshalJSON decodes the output of MarshalJSON.
func (v *Vectors) UnmarshalJSON(data []byte) (err error) {

	var aux vectorsJSON
	if err = json.Unmarshal(data, &aux); err != nil {
		return
	}

	var res Vectors
	for _, f := range []struct {
		dst *[][]*big.Int
		src [][]string
	}{
		{&res.Pk0is, aux.Pk0is},
		{&res.Pk1is, aux.Pk1is},
		{&res.Ct0is, aux.Ct0is},
		{&res.Ct1is, aux.Ct1is},
		{&res.R1is, aux.R1is},
		{&res.R2is, aux.R2is},
	} {
		if *f.dst, err = fromStrings2D(f.src); err != nil {
			return
		}
	}

	if res.SK, err = fromStrings(aux.SK); err != nil {
		return
	}

	if res.E, err = fromStrings(aux.E); err != nil {
		return
	}

	*v = res
	return
}
