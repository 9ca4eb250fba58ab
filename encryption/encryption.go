// Package encryption samples RLWE encryption instances (secret, error, public key and
// ciphertext) from which witness vectors are computed.
package encryption

import (
	"crypto/rand"
	"fmt"

	"github.com/tuneinsight/lattigo/v5/ring"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
	"golang.org/x/crypto/blake2b"

	"github.com/greco-zk/greco/parameters"
)

// SeedSize is the size in bytes of a freshly generated seed.
const SeedSize = 32

// Instance is an encryption ct = (pk0*s + e, pk1) with pk = (-a, a), all
// polynomials being in the coefficient domain.
type Instance struct {
	SecretKey  ring.Poly
	Error      ring.Poly
	PublicKey  [2]ring.Poly
	Ciphertext [2]ring.Poly
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithTernarySecret samples the secret in {-1, 0, 1} with probabilities [p/2, 1-p, p/2]
// instead of the discrete Gaussian used for the error.
func WithTernarySecret(p float64) Option {
	return func(s *Sampler) {
		s.secretDist = ring.Ternary{P: p}
	}
}

// Sampler samples encryption instances for a parameter set at a given level.
// Instances are a deterministic function of the seed.
type Sampler struct {
	params     parameters.Parameters
	level      int
	seed       []byte
	ringQ      *ring.Ring
	secretDist ring.DistributionParameters
	errorDist  ring.DiscreteGaussian

	uniform ring.Sampler
	secret  ring.Sampler
	noise   ring.Sampler
}

// NewSampler creates a new Sampler over the moduli of the given level. A nil seed
// is replaced by SeedSize random bytes, see Seed.
func NewSampler(params parameters.Parameters, level int, seed []byte, opts ...Option) (s *Sampler, err error) {

	moduli, err := params.ModuliAtLevel(level)
	if err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}

	if seed == nil {
		seed = make([]byte, SeedSize)
		if _, err = rand.Read(seed); err != nil {
			return nil, fmt.Errorf("cannot NewSampler: %w", err)
		}
	}

	bound, _ := params.GaussianBound().Float64()
	gaussian := ring.DiscreteGaussian{Sigma: params.Sigma(), Bound: bound}

	s = &Sampler{
		params:     params,
		level:      level,
		seed:       append([]byte{}, seed...),
		secretDist: gaussian,
		errorDist:  gaussian,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.ringQ, err = ring.NewRing(params.N(), moduli); err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}

	prng := func(label string) (*sampling.KeyedPRNG, error) {
		key := blake2b.Sum256(append(append([]byte{}, s.seed...), label...))
		return sampling.NewKeyedPRNG(key[:])
	}

	var prngA, prngS, prngE *sampling.KeyedPRNG
	if prngA, err = prng("a"); err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}
	if prngS, err = prng("s"); err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}
	if prngE, err = prng("e"); err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}

	s.uniform = ring.NewUniformSampler(prngA, s.ringQ)

	if s.secret, err = ring.NewSampler(prngS, s.ringQ, s.secretDist, false); err != nil {
		return nil, fmt.Errorf("cannot NewSampler: %w", err)
	}

	s.noise = ring.NewGaussianSampler(prngE, s.ringQ, s.errorDist, false)

	return s, nil
}

// Seed returns the seed from which the instances are derived.
func (s *Sampler) Seed() []byte {
	return append([]byte{}, s.seed...)
}

// Level returns the level of the sampled instances.
func (s *Sampler) Level() int {
	return s.level
}

// Sample returns the next encryption instance of the stream.
func (s *Sampler) Sample() *Instance {

	r := s.ringQ

	a := s.uniform.ReadNew()
	sk := s.secret.ReadNew()
	e := s.noise.ReadNew()

	// a*s is computed in the NTT domain.
	aNTT := r.NewPoly()
	r.NTT(a, aNTT)
	r.MForm(aNTT, aNTT)

	as := r.NewPoly()
	r.NTT(sk, as)
	r.MulCoeffsMontgomery(aNTT, as, as)
	r.INTT(as, as)

	ct0 := r.NewPoly()
	r.Sub(e, as, ct0)

	pk0 := r.NewPoly()
	r.Neg(a, pk0)

	return &Instance{
		SecretKey:  sk,
		Error:      e,
		PublicKey:  [2]ring.Poly{pk0, s.clone(a)},
		Ciphertext: [2]ring.Poly{ct0, s.clone(a)},
	}
}

func (s *Sampler) clone(p ring.Poly) ring.Poly {
	c := s.ringQ.NewPoly()
	for i := range p.Coeffs {
		copy(c.Coeffs[i], p.Coeffs[i])
	}
	return c
}
