package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/serialization"
)

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.Parameters = parameters.TestParametersLiteral[1]
	cfg.Seed = []byte("generator")
	cfg.OutputDir = t.TempDir()
	return cfg
}

func TestRun(t *testing.T) {

	t.Run("Files", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.GenerateJSON = true
		cfg.GenerateReport = true

		logs := new(bytes.Buffer)
		res, err := Run(context.Background(), cfg, zerolog.New(logs))
		require.NoError(t, err)
		require.Len(t, res.Files, 4)
		require.NotNil(t, res.Report)

		for _, name := range []string{ConstantsFile, ProverFile, VectorsFile, ReportFile} {
			_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
			require.NoError(t, err, name)
		}

		constants, err := os.ReadFile(filepath.Join(cfg.OutputDir, ConstantsFile))
		require.NoError(t, err)
		require.Contains(t, string(constants), "pub global TAG: Field = "+res.Bounds.Tag.String()+";")

		require.True(t, strings.Contains(logs.String(), `"message":"witness satisfies its bounds"`))
	})

	t.Run("NoTOML", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.GenerateTOML = false
		res, err := Run(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		require.Len(t, res.Files, 1)
		_, err = os.Stat(filepath.Join(cfg.OutputDir, ProverFile))
		require.True(t, os.IsNotExist(err))
	})

	t.Run("Deterministic", func(t *testing.T) {
		cfg := testConfig(t)
		r0, err := Run(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		p0, err := os.ReadFile(filepath.Join(cfg.OutputDir, ProverFile))
		require.NoError(t, err)

		cfg.OutputDir = t.TempDir()
		r1, err := Run(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		p1, err := os.ReadFile(filepath.Join(cfg.OutputDir, ProverFile))
		require.NoError(t, err)

		require.Equal(t, r0.Seed, r1.Seed)
		require.Equal(t, p0, p1)
	})

	t.Run("InvalidParameters", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Parameters.Degree = 100
		_, err := Run(context.Background(), cfg, zerolog.Nop())
		require.ErrorIs(t, err, parameters.ErrInvalidParameters)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Level = 3
		_, err := Run(context.Background(), cfg, zerolog.Nop())
		require.ErrorIs(t, err, parameters.ErrInvalidLevel)
	})

	t.Run("UnknownCircuit", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Circuit = "sk_shares"
		_, err := Run(context.Background(), cfg, zerolog.Nop())
		require.ErrorIs(t, err, serialization.ErrUnknownCircuit)
	})

	t.Run("Default", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipped in -short mode")
		}
		cfg := DefaultConfig()
		cfg.OutputDir = t.TempDir()
		res, err := Run(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, int64(19), res.Bounds.SK.Int64())
	})
}
