package dsa

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	mrand "math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
)

// fixturesDir returns the repository fixtures directory.
func fixturesDir() string {
	return filepath.Join("..", "..", "fixtures")
}

// loadTestKeys reads the hand-computed key pair from fixtures/test_params.json
// (p=23, q=11, g=4, x=3, y=18).
func loadTestKeys() (*PrivateKey, *PublicKey, error) {
	file, err := os.Open(filepath.Join(fixturesDir(), "test_params.json"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var raw map[string]string
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, nil, err
	}

	values := make(map[string]*big.Int, len(raw))
	for _, name := range []string{"p", "q", "g", "x", "y"} {
		v, err := ParseInt(raw[name])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", name, err)
		}
		values[name] = v
	}

	params := Parameters{P: values["p"], Q: values["q"], G: values["g"]}
	return &PrivateKey{Parameters: params, X: values["x"]},
		&PublicKey{Parameters: params, Y: values["y"]},
		nil
}

// testRand returns a seeded, reproducible random source.
func testRand(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// smallParameterConfig keeps parameter generation fast in tests.
func smallParameterConfig() ParameterConfig {
	cfg := DefaultParameterConfig()
	cfg.QRange = NewRange(100, 400)
	cfg.PRange = NewRange(1000, 20000)
	cfg.NumWorkers = 2
	return cfg
}

// largeTestParameters builds parameters whose q is the secp256k1 group
// order, so accidental verification of a tampered signature is out of reach.
// p is the first prime of the form k*q + 1 with even k.
func largeTestParameters(t *testing.T) *Parameters {
	t.Helper()

	q := new(big.Int).Set(secp256k1.S256().N)
	for k := int64(2); k < 20000; k += 2 {
		p := new(big.Int).Mul(q, big.NewInt(k))
		p.Add(p, one)
		if !prime.IsPrime(p, prime.DefaultRounds) {
			continue
		}

		_, g, err := findGenerator(context.Background(), p, q, 1000)
		if err != nil {
			t.Fatalf("findGenerator failed: %v", err)
		}
		return &Parameters{P: p, Q: q, G: g}
	}

	t.Fatal("no prime modulus found for the secp256k1 order")
	return nil
}

// fixedNonces replays a fixed list of nonces.
type fixedNonces []int64

func (f fixedNonces) Name() string { return "fixed" }

func (f fixedNonces) Stream(*PrivateKey, []byte) NonceStream {
	return &fixedStream{values: f}
}

type fixedStream struct {
	values []int64
	next   int
}

func (s *fixedStream) Next() (*big.Int, error) {
	if s.next >= len(s.values) {
		return nil, fmt.Errorf("fixed nonces exhausted")
	}
	k := big.NewInt(s.values[s.next])
	s.next++
	return k, nil
}
