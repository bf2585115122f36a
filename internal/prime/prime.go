// Package prime implements primality testing and bounded random prime search.
package prime

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// DefaultRounds is the number of Miller-Rabin rounds used when none is given.
// With 20 rounds the error probability is below 2^-40; below 2^64 the
// Baillie-PSW step makes the test exact.
const DefaultRounds = 20

// DefaultMaxAttempts bounds the number of candidates drawn by GeneratePrime.
const DefaultMaxAttempts = 1 << 16

var (
	// ErrNoPrimeInRange is returned when no prime was found within the attempt budget.
	ErrNoPrimeInRange = errors.New("no prime found in range")

	// ErrInvalidRange is returned when min >= max or a bound is missing.
	ErrInvalidRange = errors.New("invalid range")
)

// IsPrime reports whether n is prime using rounds Miller-Rabin rounds
// followed by a Baillie-PSW test.
func IsPrime(n *big.Int, rounds int) bool {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return n.ProbablyPrime(rounds)
}

// TrialDivision is the exact reference test: n is prime iff no integer in
// [2, floor(sqrt(n))] divides it. Only practical for small n.
func TrialDivision(n *big.Int) bool {
	if n == nil || n.Cmp(big.NewInt(2)) < 0 {
		return false
	}

	limit := new(big.Int).Sqrt(n)
	d := big.NewInt(2)
	rem := new(big.Int)
	for d.Cmp(limit) <= 0 {
		if rem.Mod(n, d).Sign() == 0 {
			return false
		}
		d.Add(d, big.NewInt(1))
	}
	return true
}

// Options controls GeneratePrime.
type Options struct {
	// MaxAttempts is the number of candidates drawn before giving up (0 = default)
	MaxAttempts int

	// Rounds is the Miller-Rabin round count (0 = default)
	Rounds int
}

// RandomInRange draws a uniform integer in [min, max).
func RandomInRange(rng io.Reader, min, max *big.Int) (*big.Int, error) {
	if min == nil || max == nil || min.Cmp(max) >= 0 {
		return nil, ErrInvalidRange
	}
	if rng == nil {
		rng = rand.Reader
	}

	width := new(big.Int).Sub(max, min)
	n, err := rand.Int(rng, width)
	if err != nil {
		return nil, fmt.Errorf("failed to read randomness: %w", err)
	}
	return n.Add(n, min), nil
}

// GeneratePrime repeatedly draws a uniform integer in [min, max) and returns
// the first one that passes IsPrime. It fails with ErrNoPrimeInRange once
// opts.MaxAttempts candidates have been rejected.
func GeneratePrime(rng io.Reader, min, max *big.Int, opts Options) (*big.Int, error) {
	if min == nil || max == nil || min.Cmp(max) >= 0 {
		return nil, ErrInvalidRange
	}

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	for i := 0; i < attempts; i++ {
		candidate, err := RandomInRange(rng, min, max)
		if err != nil {
			return nil, err
		}
		if IsPrime(candidate, opts.Rounds) {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: [%s, %s) after %d attempts", ErrNoPrimeInRange, min, max, attempts)
}
