// Package generator implements the end-to-end generation of the proof inputs: it samples
// an encryption instance, computes its witness and bounds, checks the witness against
// the bounds and writes the circuit files.
package generator

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/greco-zk/greco/bounds"
	"github.com/greco-zk/greco/encryption"
	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/report"
	"github.com/greco-zk/greco/serialization"
	"github.com/greco-zk/greco/vectors"
)

// Names of the generated files.
const (
	ConstantsFile = "constants.nr"
	ProverFile    = "Prover.toml"
	VectorsFile   = "vectors.json"
	ReportFile    = "report.html"
)

// Config configures a generation run.
type Config struct {
	Parameters parameters.ParametersLiteral
	Level      int
	// Seed of the sampled instance, a random seed is used if nil.
	Seed      []byte
	OutputDir string
	Circuit   serialization.Circuit

	GenerateTOML   bool
	GenerateJSON   bool
	GenerateReport bool

	// ProofModulus is the modulus of the proof system field, BN254 if nil.
	ProofModulus *big.Int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Parameters:   parameters.DefaultLiteral,
		OutputDir:    "output",
		Circuit:      serialization.CircuitPkTRBFV,
		GenerateTOML: true,
	}
}

// Results stores the outputs of a generation run.
type Results struct {
	Seed    []byte
	Bounds  *bounds.Bounds
	Vectors *vectors.Vectors
	Report  *report.Report
	Files   []string
}

// Run executes the generation described by cfg. Nothing is written unless the
// witness satisfies its bounds.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) (res *Results, err error) {

	params, err := parameters.NewParametersFromLiteral(cfg.Parameters)
	if err != nil {
		return nil, err
	}

	if _, err = serialization.ParseCircuit(string(cfg.Circuit)); err != nil {
		return nil, err
	}

	p := cfg.ProofModulus
	if p == nil {
		p = serialization.BN254Modulus()
	}

	logger.Info().
		Int("degree", params.N()).
		Uint64("plaintext_modulus", params.PlaintextModulus()).
		Uints64("moduli", params.Moduli()).
		Int("level", cfg.Level).
		Str("circuit", string(cfg.Circuit)).
		Msg("generating")

	start := time.Now()

	sampler, err := encryption.NewSampler(params, cfg.Level, cfg.Seed)
	if err != nil {
		return nil, err
	}

	inst := sampler.Sample()
	logger.Debug().Hex("seed", sampler.Seed()).Dur("elapsed", time.Since(start)).Msg("sampled encryption")

	start = time.Now()
	vecs, err := vectors.ComputeContext(ctx, inst.SecretKey, inst.Error, inst.Ciphertext, inst.PublicKey, params, cfg.Level)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("components", vecs.NumModuli()).Dur("elapsed", time.Since(start)).Msg("computed witness")

	b, err := bounds.Compute(params, cfg.Level)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("tag", b.Tag.String()).
		Uint64("size", b.Size).
		Float64("gaussian_tail_log2", b.GaussianTailLog2).
		Msg("computed bounds")

	if err = b.CheckConstraints(vecs, p); err != nil {
		return nil, err
	}

	logger.Info().Msg("witness satisfies its bounds")

	res = &Results{
		Seed:    sampler.Seed(),
		Bounds:  b,
		Vectors: vecs,
	}

	if cfg.GenerateReport {
		if res.Report, err = report.Summarize(vecs, b); err != nil {
			return nil, err
		}
		for i, c := range res.Report.Components {
			logger.Info().
				Int("component", i).
				Float64("r1_usage", c.R1Usage).
				Float64("r2_usage", c.R2Usage).
				Float64("r1_stddev", c.R1StdDev).
				Msg("bound usage")
		}
		logger.Info().Float64("max_usage", res.Report.MaxUsage).Msg("report summarized")
	}

	if err = os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output directory: %w", err)
	}

	outputs := []struct {
		enabled bool
		name    string
		write   func(w io.Writer) error
	}{
		{true, ConstantsFile, func(w io.Writer) error { return serialization.WriteConstants(w, b, cfg.Circuit) }},
		{cfg.GenerateTOML, ProverFile, func(w io.Writer) error { return serialization.WriteProverTOML(w, vecs, p) }},
		{cfg.GenerateJSON, VectorsFile, func(w io.Writer) error { return serialization.WriteJSON(w, vecs) }},
		{cfg.GenerateReport, ReportFile, func(w io.Writer) error { return res.Report.WriteHTML(w) }},
	}

	for _, out := range outputs {

		if !out.enabled {
			continue
		}

		path := filepath.Join(cfg.OutputDir, out.name)
		if err = writeFile(path, out.write); err != nil {
			return nil, err
		}

		res.Files = append(res.Files, path)
		logger.Info().Str("path", path).Msg("wrote file")
	}

	return res, nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", path, cerr)
		}
	}()

	return write(f)
}
