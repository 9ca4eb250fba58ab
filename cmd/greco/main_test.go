package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greco-zk/greco/serialization"
)

func TestParseConfig(t *testing.T) {

	t.Run("Defaults", func(t *testing.T) {
		cfg, verbose, err := parseConfig(nil)
		require.NoError(t, err)
		require.False(t, verbose)
		require.Equal(t, 2048, cfg.Parameters.Degree)
		require.Equal(t, uint64(1032193), cfg.Parameters.PlaintextModulus)
		require.Equal(t, []uint64{18014398492704769}, cfg.Parameters.Moduli)
		require.Equal(t, serialization.CircuitPkTRBFV, cfg.Circuit)
		require.True(t, cfg.GenerateTOML)
		require.Nil(t, cfg.Seed)
	})

	t.Run("Flags", func(t *testing.T) {
		cfg, verbose, err := parseConfig([]string{
			"-degree", "64",
			"-moduli", "35184376545281, 34359214081",
			"-level", "1",
			"-seed", "0a0b",
			"-circuit", "pk_pvw",
			"-no-toml",
			"-report",
			"-verbose",
		})
		require.NoError(t, err)
		require.True(t, verbose)
		require.Equal(t, 64, cfg.Parameters.Degree)
		require.Equal(t, []uint64{35184376545281, 34359214081}, cfg.Parameters.Moduli)
		require.Equal(t, 1, cfg.Level)
		require.Equal(t, []byte{0x0a, 0x0b}, cfg.Seed)
		require.Equal(t, serialization.CircuitPkPVW, cfg.Circuit)
		require.False(t, cfg.GenerateTOML)
		require.True(t, cfg.GenerateReport)
	})

	t.Run("Params", func(t *testing.T) {
		cfg, _, err := parseConfig([]string{"-params", `{"Degree":16,"PlaintextModulus":65537,"Moduli":[34359214081],"Variance":3}`})
		require.NoError(t, err)
		require.Equal(t, 16, cfg.Parameters.Degree)
		require.Equal(t, uint64(3), cfg.Parameters.Variance)
	})

	for _, args := range [][]string{
		{"-degree", "100"},
		{"-moduli", "12,abc"},
		{"-seed", "xyz"},
		{"-circuit", "sk_shares"},
		{"-params", "{"},
	} {
		t.Run("Invalid/"+args[0], func(t *testing.T) {
			_, _, err := parseConfig(args)
			require.Error(t, err)
		})
	}
}
