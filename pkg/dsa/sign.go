package dsa

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/mahdiidarabi/subgroup-dsa/internal/arith"
)

// DefaultSignAttempts bounds the nonces tried for one signature.
const DefaultSignAttempts = 64

// Signer produces signatures. The zero value signs with SHA-256 and random
// nonces from crypto/rand.
type Signer struct {
	Hash        Hash        // Message digest
	Nonces      NonceSource // Nonce strategy (nil = RandomNonces)
	MaxAttempts int         // Nonce attempts per signature (0 = DefaultSignAttempts)
}

// Sign signs message with key using SHA-256 and random nonces drawn from rng.
func Sign(rng io.Reader, key *PrivateKey, message []byte) (*Signature, error) {
	s := &Signer{Nonces: RandomNonces{Rand: rng}}
	return s.Sign(key, message)
}

// Sign hashes message and signs the digest.
func (s *Signer) Sign(key *PrivateKey, message []byte) (*Signature, error) {
	h1 := s.Hash.Sum(message)
	sig, _, err := s.sign(key, new(big.Int).SetBytes(h1), h1)
	return sig, err
}

// SignDigest signs a precomputed digest z.
func (s *Signer) SignDigest(key *PrivateKey, z *big.Int) (*Signature, error) {
	if z == nil || z.Sign() < 0 {
		return nil, errorf("Sign", "digest must be non-negative")
	}
	sig, _, err := s.sign(key, z, z.Bytes())
	return sig, err
}

// sign computes
//
//	r = (g^k mod p) mod q
//	s = k^-1 (z + x*r) mod q
//
// drawing a new k whenever k has no inverse or r or s is zero. It also
// returns the number of nonces consumed.
func (s *Signer) sign(key *PrivateKey, z *big.Int, h1 []byte) (*Signature, int, error) {
	if err := key.validate(); err != nil {
		return nil, 0, err
	}

	source := s.Nonces
	if source == nil {
		source = RandomNonces{}
	}
	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultSignAttempts
	}

	q := key.Q
	stream := source.Stream(key, h1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		k, err := stream.Next()
		if err != nil {
			return nil, attempt, opError("Sign", err)
		}
		if k == nil || k.Sign() <= 0 || k.Cmp(q) >= 0 {
			continue
		}

		r, err := arith.ModPowSecret(key.G, k, key.P)
		if err != nil {
			return nil, attempt, opError("Sign", err)
		}
		r.Mod(r, q)
		if r.Sign() == 0 {
			continue
		}

		kInv, err := arith.ModInverse(k, q)
		if errors.Is(err, arith.ErrNoInverse) {
			continue
		}
		if err != nil {
			return nil, attempt, opError("Sign", err)
		}

		sv := new(big.Int).Mul(key.X, r)
		sv.Add(sv, z)
		sv.Mul(sv, kInv)
		sv.Mod(sv, q)
		if sv.Sign() == 0 {
			continue
		}

		return &Signature{R: r, S: sv}, attempt, nil
	}

	return nil, maxAttempts, opError("Sign", fmt.Errorf("%w: no usable nonce after %d attempts", ErrSigningFailed, maxAttempts))
}
