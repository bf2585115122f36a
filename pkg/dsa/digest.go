package dsa

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hash selects the 256-bit hash function used to digest messages.
type Hash int

const (
	SHA256 Hash = iota
	SHA3_256
	BLAKE2b_256
)

// New returns a fresh hash.Hash.
func (h Hash) New() hash.Hash {
	switch h {
	case SHA3_256:
		return sha3.New256()
	case BLAKE2b_256:
		// New256 only fails for keys longer than 64 bytes
		d, _ := blake2b.New256(nil)
		return d
	default:
		return sha256.New()
	}
}

func (h Hash) String() string {
	switch h {
	case SHA3_256:
		return "sha3-256"
	case BLAKE2b_256:
		return "blake2b-256"
	default:
		return "sha256"
	}
}

// ParseHash maps a name such as "sha256", "sha3-256" or "blake2b-256" to a Hash.
func ParseHash(name string) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sha256", "sha-256":
		return SHA256, nil
	case "sha3-256", "sha3_256":
		return SHA3_256, nil
	case "blake2b-256", "blake2b_256", "blake2b":
		return BLAKE2b_256, nil
	default:
		return SHA256, fmt.Errorf("%w: unknown hash %q", ErrInvalidConfig, name)
	}
}

// Sum hashes message.
func (h Hash) Sum(message []byte) []byte {
	d := h.New()
	d.Write(message)
	return d.Sum(nil)
}

// Digest hashes message with h and interprets the output as a big-endian
// unsigned integer. The value is not reduced modulo q.
func Digest(h Hash, message []byte) *big.Int {
	return new(big.Int).SetBytes(h.Sum(message))
}
