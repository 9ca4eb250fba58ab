package bounds

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greco-zk/greco/encryption"
	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/vectors"
)

// bn254 is the scalar field modulus of BN254.
var bn254, _ = new(big.Int).SetString("21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

func name(op string, params parameters.Parameters, level int) string {
	return fmt.Sprintf("%s/%s/lvl=%d", op, params, level)
}

func TestPlaintextRange(t *testing.T) {

	for _, tc := range []struct {
		t         uint64
		low, high int64
	}{
		{2, -2, 0},
		{7, -3, 3},
		{8, -5, 3},
		{257, -128, 128},
		{1024, -513, 511},
		{1032193, -516096, 516096},
	} {
		low, high := PlaintextRange(tc.t)
		require.Equal(t, tc.low, low.Int64(), "t=%d", tc.t)
		require.Equal(t, tc.high, high.Int64(), "t=%d", tc.t)
	}

	for t0 := uint64(2); t0 < 64; t0++ {
		low, high := PlaintextRange(t0)
		width := new(big.Int).Sub(high, low).Uint64()
		if t0&1 == 1 {
			require.Equal(t, t0-1, width)
		} else {
			require.Equal(t, t0, width)
		}
	}
}

func TestCompute(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		params, err := parameters.NewParametersFromLiteral(parameters.DefaultLiteral)
		require.NoError(t, err)

		b, err := Compute(params, 0)
		require.NoError(t, err)

		qiBound, _ := new(big.Int).SetString("9007199246352384", 10)
		require.Equal(t, int64(19), b.SK.Int64())
		require.Equal(t, int64(19), b.E.Int64())
		require.Zero(t, qiBound.Cmp(b.R2[0]))
		require.Zero(t, qiBound.Cmp(b.A))
		require.Equal(t, int64(-481796), b.R1Low[0].Int64())
		require.Equal(t, int64(481795), b.R1Up[0].Int64())
		require.Equal(t, int64(16137970277882884), b.K0[0].Int64())
		require.Equal(t, int64(-246259), b.QModT.Int64())
		require.Equal(t, uint64(28668), b.Size)
		require.True(t, b.Tag.Sign() >= 0 && b.Tag.Cmp(new(big.Int).SetUint64(params.Moduli()[0])) < 0)
		require.InDelta(t, -13.0406, b.GaussianTailLog2, 1e-3)
	})

	t.Run("Deterministic", func(t *testing.T) {
		params, err := parameters.NewParametersFromLiteral(parameters.TestParametersLiteral[1])
		require.NoError(t, err)
		b0, err := Compute(params, 0)
		require.NoError(t, err)
		b1, err := Compute(params, 0)
		require.NoError(t, err)
		require.True(t, b0.Equal(b1))
	})

	t.Run("TagBinding", func(t *testing.T) {
		pl := parameters.TestParametersLiteral[1]
		params, err := parameters.NewParametersFromLiteral(pl)
		require.NoError(t, err)
		ref, err := Compute(params, 0)
		require.NoError(t, err)

		// Level
		b, err := Compute(params, 1)
		require.NoError(t, err)
		require.NotZero(t, ref.Tag.Cmp(b.Tag))

		// Degree
		pl.Degree = 128
		params, err = parameters.NewParametersFromLiteral(pl)
		require.NoError(t, err)
		b, err = Compute(params, 0)
		require.NoError(t, err)
		require.NotZero(t, ref.Tag.Cmp(b.Tag))

		// Moduli order
		pl = parameters.TestParametersLiteral[1]
		pl.Moduli = []uint64{pl.Moduli[1], pl.Moduli[0], pl.Moduli[2]}
		params, err = parameters.NewParametersFromLiteral(pl)
		require.NoError(t, err)
		b, err = Compute(params, 0)
		require.NoError(t, err)
		require.NotZero(t, ref.Tag.Cmp(b.Tag))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		params, err := parameters.NewParametersFromLiteral(parameters.TestParametersLiteral[0])
		require.NoError(t, err)
		_, err = Compute(params, 1)
		require.ErrorIs(t, err, parameters.ErrInvalidLevel)
		_, err = Compute(params, -1)
		require.ErrorIs(t, err, parameters.ErrInvalidLevel)
	})

	t.Run("Levels", func(t *testing.T) {
		params, err := parameters.NewParametersFromLiteral(parameters.TestParametersLiteral[1])
		require.NoError(t, err)
		for level := 0; level < params.ModuliCount(); level++ {
			b, err := Compute(params, level)
			require.NoError(t, err)
			L := params.ModuliCount() - level
			require.Len(t, b.R1Low, L)
			require.Equal(t, uint64((10*params.N()-4)*L+4*params.N()), b.Size)
			for i := 0; i < L; i++ {
				require.True(t, b.R1Low[i].Sign() < 0)
				require.True(t, b.R1Up[i].Sign() > 0)
			}
		}
	})
}

func TestGaussianTailLog2(t *testing.T) {
	v, err := GaussianTailLog2(1024, 1, big.NewInt(6))
	require.NoError(t, err)
	require.InDelta(t, 12-18/0.6931471805599453, v, 1e-9)

	_, err = GaussianTailLog2(1024, 0, big.NewInt(6))
	require.Error(t, err)
}

func TestCheckConstraints(t *testing.T) {

	for _, pl := range parameters.TestParametersLiteral {

		params, err := parameters.NewParametersFromLiteral(pl)
		require.NoError(t, err)

		for level := 0; level < params.ModuliCount(); level++ {

			s, err := encryption.NewSampler(params, level, []byte("bounds"))
			require.NoError(t, err)
			inst := s.Sample()

			vecs, err := vectors.Compute(inst.SecretKey, inst.Error, inst.Ciphertext, inst.PublicKey, params, level)
			require.NoError(t, err)

			b, err := Compute(params, level)
			require.NoError(t, err)

			t.Run(name("Valid", params, level), func(t *testing.T) {
				require.NoError(t, b.CheckConstraints(vecs, bn254))
			})

			t.Run(name("SecretKeyOutOfBound", params, level), func(t *testing.T) {
				bad := vecs.Clone()
				bad.SK[0] = new(big.Int).Add(b.SK, big.NewInt(1))
				err := b.CheckConstraints(bad, bn254)
				require.ErrorIs(t, err, vectors.ErrInvariantViolation)
				var violation *vectors.InvariantViolation
				require.True(t, errors.As(err, &violation))
				require.Equal(t, "sk", violation.Field)
				require.Equal(t, -1, violation.Component)
			})

			t.Run(name("PublicKeyOutOfBound", params, level), func(t *testing.T) {
				bad := vecs.Clone()
				bad.Pk1is[0][1] = new(big.Int).Neg(new(big.Int).Add(b.R2[0], big.NewInt(1)))
				var violation *vectors.InvariantViolation
				require.True(t, errors.As(b.CheckConstraints(bad, bn254), &violation))
				require.Equal(t, "pk1is", violation.Field)
				require.Equal(t, 0, violation.Component)
				require.Equal(t, vectors.CheckBoundExceeded, violation.Check)
			})

			t.Run(name("R1OutOfBound", params, level), func(t *testing.T) {
				last := len(vecs.R1is) - 1
				bad := vecs.Clone()
				bad.R1is[last][3] = new(big.Int).Sub(b.R1Low[last], big.NewInt(1))
				var violation *vectors.InvariantViolation
				require.True(t, errors.As(b.CheckConstraints(bad, bn254), &violation))
				require.Equal(t, "r1is", violation.Field)
				require.Equal(t, last, violation.Component)
				require.Equal(t, vectors.CheckBoundExceeded, violation.Check)
			})

			t.Run(name("Malformed", params, level), func(t *testing.T) {
				bad := vecs.Clone()
				bad.R2is[0] = bad.R2is[0][1:]
				require.ErrorIs(t, b.CheckConstraints(bad, bn254), vectors.ErrMalformedInput)
			})
		}
	}
}
