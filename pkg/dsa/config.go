package dsa

import (
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
)

// Range is a half-open interval [Min, Max) of candidate magnitudes.
type Range struct {
	Min *big.Int
	Max *big.Int
}

// NewRange returns the range [min, max).
func NewRange(min, max int64) Range {
	return Range{Min: big.NewInt(min), Max: big.NewInt(max)}
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v)", r.Min, r.Max)
}

func (r Range) valid() bool {
	return r.Min != nil && r.Max != nil && r.Min.Cmp(r.Max) < 0
}

// ParameterConfig configures domain parameter generation.
type ParameterConfig struct {
	// QRange is the range q is drawn from
	QRange Range

	// PRange is the range p is drawn from
	PRange Range

	// PrimeAttempts bounds the candidates drawn for a single prime
	PrimeAttempts int

	// ModulusAttempts bounds the primes p drawn while looking for q | p-1
	ModulusAttempts int

	// WitnessAttempts bounds the scan for a generator witness h
	WitnessAttempts int

	// Rounds is how many times a fresh q is drawn before giving up
	Rounds int

	// NumWorkers controls parallelization of the p search (0 = auto-detect)
	NumWorkers int

	// MillerRabinRounds is the primality test strength (0 = default)
	MillerRabinRounds int
}

// DefaultParameterConfig returns the configuration of the reference demo:
// q in [1000, 5000) and p in [1000, 60000).
func DefaultParameterConfig() ParameterConfig {
	return ParameterConfig{
		QRange:            NewRange(1000, 5000),
		PRange:            NewRange(1000, 60000),
		PrimeAttempts:     prime.DefaultMaxAttempts,
		ModulusAttempts:   1 << 14,
		WitnessAttempts:   1 << 20,
		Rounds:            16,
		NumWorkers:        0, // Auto-detect
		MillerRabinRounds: prime.DefaultRounds,
	}
}

// withDefaults fills zero-valued budgets from DefaultParameterConfig.
func (c ParameterConfig) withDefaults() ParameterConfig {
	d := DefaultParameterConfig()
	if c.PrimeAttempts <= 0 {
		c.PrimeAttempts = d.PrimeAttempts
	}
	if c.ModulusAttempts <= 0 {
		c.ModulusAttempts = d.ModulusAttempts
	}
	if c.WitnessAttempts <= 0 {
		c.WitnessAttempts = d.WitnessAttempts
	}
	if c.Rounds <= 0 {
		c.Rounds = d.Rounds
	}
	if c.MillerRabinRounds <= 0 {
		c.MillerRabinRounds = d.MillerRabinRounds
	}
	return c
}

// Validate checks that the ranges can produce parameters at all.
func (c ParameterConfig) Validate() error {
	if !c.QRange.valid() {
		return errorf("Validate", "%w: q range %s", ErrInvalidConfig, c.QRange)
	}
	if !c.PRange.valid() {
		return errorf("Validate", "%w: p range %s", ErrInvalidConfig, c.PRange)
	}
	if c.QRange.Min.Cmp(big.NewInt(2)) < 0 {
		return errorf("Validate", "%w: q range must start at 2 or above", ErrInvalidConfig)
	}
	if c.PRange.Min.Cmp(big.NewInt(3)) < 0 {
		return errorf("Validate", "%w: p range must start at 3 or above", ErrInvalidConfig)
	}
	// p-1 must be a multiple of q, so p > q is required
	if c.PRange.Max.Cmp(new(big.Int).Add(c.QRange.Min, big.NewInt(1))) <= 0 {
		return errorf("Validate", "%w: p range %s cannot exceed q range %s", ErrInvalidConfig, c.PRange, c.QRange)
	}
	if c.NumWorkers < 0 {
		return errorf("Validate", "%w: negative worker count", ErrInvalidConfig)
	}
	return nil
}

func (c ParameterConfig) primeOptions() prime.Options {
	return prime.Options{MaxAttempts: c.PrimeAttempts, Rounds: c.MillerRabinRounds}
}
