package dsa

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/mahdiidarabi/subgroup-dsa/internal/arith"
	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
	"github.com/mahdiidarabi/subgroup-dsa/internal/search"
	"github.com/mahdiidarabi/subgroup-dsa/pkg/logging"
)

var one = big.NewInt(1)

// GenerateParameters derives fresh domain parameters (p, q, g).
//
// Each round draws a prime q from cfg.QRange, then draws primes p from
// cfg.PRange until q divides p-1, then picks the first witness h with
// h^((p-1)/q) mod p > 1 and sets g to that value. q stays fixed for the whole
// p search of a round. A round that exhausts its budget is retried with a new
// q, up to cfg.Rounds times.
func GenerateParameters(ctx context.Context, rng io.Reader, cfg ParameterConfig) (*Parameters, error) {
	return generateParameters(ctx, rng, cfg, logging.Discard())
}

func generateParameters(ctx context.Context, rng io.Reader, cfg ParameterConfig, logger logging.Logger) (*Parameters, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng = lockReader(rng)

	for round := 1; round <= cfg.Rounds; round++ {
		params, err := deriveParameters(ctx, rng, cfg, logger.With("round", round))
		if err == nil {
			return params, nil
		}
		if !errors.Is(err, ErrParameterGeneration) {
			return nil, err
		}
		logger.Debug(ctx, "parameter round failed", "round", round, "error", err)
	}

	return nil, errorf("GenerateParameters", "%w: no parameters after %d rounds", ErrParameterGeneration, cfg.Rounds)
}

func deriveParameters(ctx context.Context, rng io.Reader, cfg ParameterConfig, logger logging.Logger) (*Parameters, error) {
	q, err := prime.GeneratePrime(rng, cfg.QRange.Min, cfg.QRange.Max, cfg.primeOptions())
	if err != nil {
		return nil, opError("GenerateParameters", fmt.Errorf("q: %w", err))
	}
	logger.Debug(ctx, "drew subgroup order", "q", q)

	p, stats, err := search.Run(ctx, search.Config{
		MaxAttempts: cfg.ModulusAttempts,
		NumWorkers:  cfg.NumWorkers,
	}, func(int) (*big.Int, bool, error) {
		p, err := prime.GeneratePrime(rng, cfg.PRange.Min, cfg.PRange.Max, cfg.primeOptions())
		if err != nil {
			return nil, false, err
		}
		pm1 := new(big.Int).Sub(p, one)
		return p, pm1.Mod(pm1, q).Sign() == 0, nil
	})
	if errors.Is(err, search.ErrExhausted) {
		return nil, errorf("GenerateParameters", "%w: no p with q=%s dividing p-1 after %d draws", ErrParameterGeneration, q, stats.Attempts)
	}
	if err != nil {
		return nil, opError("GenerateParameters", fmt.Errorf("p: %w", err))
	}
	logger.Debug(ctx, "found modulus", "p", p, "draws", stats.Attempts, "workers", stats.Workers)

	h, g, err := findGenerator(ctx, p, q, cfg.WitnessAttempts)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "found generator", "h", h, "g", g)

	return &Parameters{P: p, Q: q, G: g}, nil
}

// findGenerator scans h = 1, 2, ..., p-2 and returns the first witness with
// g = h^((p-1)/q) mod p > 1, together with g.
func findGenerator(ctx context.Context, p, q *big.Int, maxAttempts int) (*big.Int, *big.Int, error) {
	e := new(big.Int).Sub(p, one)
	e.Div(e, q)

	last := new(big.Int).Sub(p, big.NewInt(2))
	h := big.NewInt(1)
	for attempt := 0; h.Cmp(last) <= 0 && attempt < maxAttempts; attempt++ {
		if attempt%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, opError("GenerateParameters", err)
			}
		}

		g, err := arith.ModPow(h, e, p)
		if err != nil {
			return nil, nil, opError("GenerateParameters", err)
		}
		if g.Cmp(one) > 0 {
			return new(big.Int).Set(h), g, nil
		}
		h.Add(h, one)
	}

	return nil, nil, errorf("GenerateParameters", "%w: no generator witness for p=%s q=%s", ErrParameterGeneration, p, q)
}

// Validate checks every invariant of the domain parameters: p and q prime,
// q | p-1, 1 < g < p and g^q mod p = 1.
func (params *Parameters) Validate() error {
	if !params.wellFormed() {
		return opError("Validate", ErrInvalidParameters)
	}
	if !prime.IsPrime(params.P, prime.DefaultRounds) {
		return errorf("Validate", "%w: p is not prime", ErrInvalidParameters)
	}
	if !prime.IsPrime(params.Q, prime.DefaultRounds) {
		return errorf("Validate", "%w: q is not prime", ErrInvalidParameters)
	}

	pm1 := new(big.Int).Sub(params.P, one)
	if pm1.Mod(pm1, params.Q).Sign() != 0 {
		return errorf("Validate", "%w: q does not divide p-1", ErrInvalidParameters)
	}

	gq, err := arith.ModPow(params.G, params.Q, params.P)
	if err != nil || gq.Cmp(one) != 0 {
		return errorf("Validate", "%w: g does not have order q", ErrInvalidParameters)
	}
	return nil
}

// wellFormed is the cheap shape check run before every sign and verify:
// no nil fields, p >= 3 and odd, 2 <= q < p, 1 < g < p.
func (params *Parameters) wellFormed() bool {
	if params == nil || params.P == nil || params.Q == nil || params.G == nil {
		return false
	}
	if params.P.Cmp(big.NewInt(3)) < 0 || params.P.Bit(0) == 0 {
		return false
	}
	if params.Q.Cmp(big.NewInt(2)) < 0 || params.Q.Cmp(params.P) >= 0 {
		return false
	}
	return params.G.Cmp(one) > 0 && params.G.Cmp(params.P) < 0
}

// lockedReader serializes reads so one random source can feed several
// search workers.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}

func lockReader(rng io.Reader) io.Reader {
	if rng == nil || rng == rand.Reader {
		return rand.Reader
	}
	if _, ok := rng.(*lockedReader); ok {
		return rng
	}
	return &lockedReader{r: rng}
}
