// Greco generates the constants and prover inputs of a ciphertext validity proof.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/greco-zk/greco/generator"
	"github.com/greco-zk/greco/parameters"
	"github.com/greco-zk/greco/serialization"
	"github.com/greco-zk/greco/utils"
)

func parseModuli(s string) ([]uint64, error) {
	fields := strings.Split(s, ",")
	moduli := make([]uint64, len(fields))
	for i := range fields {
		qi, err := strconv.ParseUint(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid moduli: %w", err)
		}
		moduli[i] = qi
	}
	return moduli, nil
}

func parseConfig(args []string) (cfg generator.Config, verbose bool, err error) {

	def := generator.DefaultConfig()

	fs := flag.NewFlagSet("greco", flag.ContinueOnError)

	degree := fs.Int("degree", def.Parameters.Degree, "degree of the cyclotomic polynomial (power of two)")
	plaintextModulus := fs.Uint64("plaintext-modulus", def.Parameters.PlaintextModulus, "plaintext modulus")
	moduli := fs.String("moduli", strconv.FormatUint(def.Parameters.Moduli[0], 10), "ciphertext moduli (comma-separated)")
	variance := fs.Uint64("variance", def.Parameters.Variance, "variance of the error distribution")
	paramsJSON := fs.String("params", "", "parameters as a JSON string, overrides -degree, -plaintext-modulus, -moduli and -variance")
	level := fs.Int("level", 0, "level of the ciphertext")
	seed := fs.String("seed", "", "hex encoded seed of the sampled encryption, random if empty")
	circuit := fs.String("circuit", string(def.Circuit), "circuit of the constants file (pk_trbfv or pk_pvw)")
	outputDir := fs.String("output-dir", def.OutputDir, "output directory of the generated files")
	noTOML := fs.Bool("no-toml", false, "skip the generation of Prover.toml")
	writeJSON := fs.Bool("json", false, "also write the witness vectors as JSON")
	writeReport := fs.Bool("report", false, "also write an HTML report of the bound usage")
	fs.BoolVar(&verbose, "verbose", false, "enable debug logs")

	if err = fs.Parse(args); err != nil {
		return
	}

	if !utils.IsPowerOfTwo(*degree) {
		return cfg, verbose, fmt.Errorf("degree must be a power of two but is %d", *degree)
	}

	cfg = def
	cfg.Parameters = parameters.ParametersLiteral{
		Degree:           *degree,
		PlaintextModulus: *plaintextModulus,
		Variance:         *variance,
	}

	if cfg.Parameters.Moduli, err = parseModuli(*moduli); err != nil {
		return
	}

	if *paramsJSON != "" {
		var pl parameters.ParametersLiteral
		if err = json.Unmarshal([]byte(*paramsJSON), &pl); err != nil {
			return cfg, verbose, fmt.Errorf("invalid params: %w", err)
		}
		cfg.Parameters = pl
	}

	if *seed != "" {
		if cfg.Seed, err = hex.DecodeString(*seed); err != nil {
			return cfg, verbose, fmt.Errorf("invalid seed: %w", err)
		}
	}

	if cfg.Circuit, err = serialization.ParseCircuit(*circuit); err != nil {
		return
	}

	cfg.Level = *level
	cfg.OutputDir = *outputDir
	cfg.GenerateTOML = !*noTOML
	cfg.GenerateJSON = *writeJSON
	cfg.GenerateReport = *writeReport

	return cfg, verbose, nil
}

func main() {

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, verbose, err := parseConfig(os.Args[1:])
	if err != nil {
		logger.Error().Err(err).Msg("invalid arguments")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)

	res, err := generator.Run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("generation failed")
		os.Exit(1)
	}

	logger.Info().Hex("seed", res.Seed).Strs("files", res.Files).Msg("done")
}
