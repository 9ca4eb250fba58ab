package serialization

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"

	"github.com/greco-zk/greco/bounds"
	"github.com/greco-zk/greco/encryption"
	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/vectors"
)

func testContext(t *testing.T) (*bounds.Bounds, *vectors.Vectors) {

	params, err := parameters.NewParametersFromLiteral(parameters.TestParametersLiteral[1])
	require.NoError(t, err)

	s, err := encryption.NewSampler(params, 0, []byte("serialization"))
	require.NoError(t, err)
	inst := s.Sample()

	vecs, err := vectors.Compute(inst.SecretKey, inst.Error, inst.Ciphertext, inst.PublicKey, params, 0)
	require.NoError(t, err)

	b, err := bounds.Compute(params, 0)
	require.NoError(t, err)

	return b, vecs
}

func TestWriteConstants(t *testing.T) {

	b, _ := testContext(t)

	t.Run("PkTRBFV", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteConstants(buf, b, CircuitPkTRBFV))
		out := buf.String()
		require.Contains(t, out, "pub global N: u32 = 64;\n")
		require.Contains(t, out, "pub global L: u32 = 3;\n")
		require.Contains(t, out, "pub global EEK_BOUND: u64 = 19;\n")
		require.Contains(t, out, "pub global SK_BOUND: u64 = 19;\n")
		require.Contains(t, out, "pub global R1_LOW_BOUNDS: [i64; 3] = ["+b.R1Low[0].String()+", ")
		require.Contains(t, out, "pub global QIS: [Field; 3] = [35184376545281, 34359214081, 34362359809];\n")
		require.Contains(t, out, "pub global TAG: Field = "+b.Tag.String()+";\n")
		require.NotContains(t, out, "N_PARTIES")
	})

	t.Run("PkPVW", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, WriteConstants(buf, b, CircuitPkPVW))
		out := buf.String()
		require.Contains(t, out, "pub global E_BOUND: u64 = 19;\n")
		require.Contains(t, out, "pub global N_PARTIES: u32 = 3;\n")
		require.NotContains(t, out, "EEK_BOUND")
	})

	t.Run("UnknownCircuit", func(t *testing.T) {
		require.ErrorIs(t, WriteConstants(new(bytes.Buffer), b, Circuit("sk_shares")), ErrUnknownCircuit)
		_, err := ParseCircuit("pk")
		require.ErrorIs(t, err, ErrUnknownCircuit)
	})

	t.Run("Overflow", func(t *testing.T) {
		bad := *b
		bad.R1Low = []*big.Int{new(big.Int).Lsh(big.NewInt(-1), 70), b.R1Low[1], b.R1Low[2]}
		require.ErrorIs(t, WriteConstants(new(bytes.Buffer), &bad, CircuitPkTRBFV), ErrOverflow)
	})
}

func TestWriteProverTOML(t *testing.T) {

	_, vecs := testContext(t)

	p := BN254Modulus()

	buf := new(bytes.Buffer)
	require.NoError(t, WriteProverTOML(buf, vecs, p))
	require.True(t, strings.Contains(buf.String(), "[[ct0is]]"))

	var inputs ProverInputs
	_, err := toml.Decode(buf.String(), &inputs)
	require.NoError(t, err)

	require.Len(t, inputs.R1is, vecs.NumModuli())
	require.Len(t, inputs.R1is[0].Coefficients, len(vecs.R1is[0]))
	require.Len(t, inputs.SK.Coefficients, len(vecs.SK))

	std := vecs.StandardForm(p)
	for i := range std.R2is {
		for j := range std.R2is[i] {
			require.Equal(t, std.R2is[i][j].String(), inputs.R2is[i].Coefficients[j])
		}
	}
	for j := range std.E {
		require.Equal(t, std.E[j].String(), inputs.E.Coefficients[j])
	}
}

func TestFieldEncoder(t *testing.T) {
	for _, p := range []*big.Int{BN254Modulus(), big.NewInt(1000003)} {
		encode := NewFieldEncoder(p)
		require.Equal(t, new(big.Int).Sub(p, big.NewInt(5)).String(), encode(big.NewInt(-5)))
		require.Equal(t, new(big.Int).Sub(p, big.NewInt(1)).String(), encode(big.NewInt(-1)))
		require.NotContains(t, encode(big.NewInt(-1)), "-")
		require.Equal(t, "7", encode(big.NewInt(7)))
		require.Equal(t, "0", encode(p))
	}
}

func TestWriteJSON(t *testing.T) {

	_, vecs := testContext(t)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteJSON(buf, vecs))

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &keys))
	require.Contains(t, keys, "ct1is")

	var r1is [][]string
	require.NoError(t, json.Unmarshal(keys["r1is"], &r1is))
	require.Equal(t, vecs.R1is[0][0].String(), r1is[0][0])
}
