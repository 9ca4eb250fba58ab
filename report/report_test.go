package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greco-zk/greco/bounds"
	"github.com/greco-zk/greco/encryption"
	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/vectors"
)

func TestReport(t *testing.T) {

	params, err := parameters.NewParametersFromLiteral(parameters.TestParametersLiteral[1])
	require.NoError(t, err)

	s, err := encryption.NewSampler(params, 0, []byte("report"))
	require.NoError(t, err)
	inst := s.Sample()

	vecs, err := vectors.Compute(inst.SecretKey, inst.Error, inst.Ciphertext, inst.PublicKey, params, 0)
	require.NoError(t, err)

	b, err := bounds.Compute(params, 0)
	require.NoError(t, err)

	r, err := Summarize(vecs, b)
	require.NoError(t, err)
	require.Len(t, r.Components, params.ModuliCount())
	require.LessOrEqual(t, r.SKUsage, 1.0)
	require.LessOrEqual(t, r.EUsage, 1.0)

	for _, c := range r.Components {
		require.Greater(t, c.R1Usage, 0.0)
		require.LessOrEqual(t, c.R1Usage, 1.0)
		require.LessOrEqual(t, c.R2Usage, 1.0)
		require.GreaterOrEqual(t, c.R1StdDev, 0.0)
		require.GreaterOrEqual(t, r.MaxUsage, c.R1Usage)
		require.GreaterOrEqual(t, r.MaxUsage, c.R2Usage)
	}

	require.GreaterOrEqual(t, r.MaxUsage, r.SKUsage)
	require.LessOrEqual(t, r.MaxUsage, 1.0)

	t.Run("HTML", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, r.WriteHTML(buf))
		require.Contains(t, buf.String(), "Witness bound usage")
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Summarize(vectors.New(1, params.N()), b)
		require.ErrorIs(t, err, vectors.ErrMalformedInput)
	})
}
