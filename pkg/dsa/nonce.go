package dsa

import (
	"io"
	"math/big"

	"github.com/mahdiidarabi/subgroup-dsa/internal/nonce"
	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
)

// NonceSource supplies the per-signature nonces k.
// Implement this interface to plug in a custom nonce strategy.
type NonceSource interface {
	// Stream returns the candidate nonces for signing digest with key.
	// The signer pulls a new candidate whenever one yields a degenerate
	// signature.
	Stream(key *PrivateKey, digest []byte) NonceStream

	// Name returns a human-readable name for this source.
	Name() string
}

// NonceStream yields successive nonce candidates in [1, q-1].
type NonceStream interface {
	Next() (*big.Int, error)
}

// RandomNonces draws every k uniformly from [1, q-1].
type RandomNonces struct {
	Rand io.Reader // nil uses crypto/rand
}

// Name returns the name of this source.
func (RandomNonces) Name() string {
	return "random"
}

// Stream implements NonceSource.
func (n RandomNonces) Stream(key *PrivateKey, _ []byte) NonceStream {
	return &randomStream{rng: n.Rand, q: key.Q}
}

type randomStream struct {
	rng io.Reader
	q   *big.Int
}

func (s *randomStream) Next() (*big.Int, error) {
	return prime.RandomInRange(s.rng, one, s.q)
}

// DeterministicNonces derives k from the private key and the digest as in
// RFC 6979, so signing the same message twice gives the same signature.
type DeterministicNonces struct {
	Hash Hash // HMAC hash, SHA-256 by default
}

// Name returns the name of this source.
func (n DeterministicNonces) Name() string {
	return "rfc6979-" + n.Hash.String()
}

// Stream implements NonceSource.
func (n DeterministicNonces) Stream(key *PrivateKey, digest []byte) NonceStream {
	return &deterministicStream{gen: nonce.NewGenerator(key.Q, key.X, n.Hash.New, digest)}
}

type deterministicStream struct {
	gen *nonce.Generator
}

func (s *deterministicStream) Next() (*big.Int, error) {
	return s.gen.Next(), nil
}
