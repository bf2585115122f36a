package dsa

import (
	"context"
	"io"

	"github.com/mahdiidarabi/subgroup-dsa/internal/arith"
	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
	"github.com/mahdiidarabi/subgroup-dsa/pkg/logging"
)

// GenerateKeyPair generates fresh domain parameters and a key pair over them.
// Both keys share the same Parameters value.
func GenerateKeyPair(ctx context.Context, rng io.Reader, cfg ParameterConfig) (*PrivateKey, *PublicKey, error) {
	return generateKeyPair(ctx, rng, cfg, logging.Discard())
}

func generateKeyPair(ctx context.Context, rng io.Reader, cfg ParameterConfig, logger logging.Logger) (*PrivateKey, *PublicKey, error) {
	params, err := generateParameters(ctx, rng, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return NewKeyPair(rng, params)
}

// NewKeyPair draws x uniformly from [1, q-1] and computes y = g^x mod p.
func NewKeyPair(rng io.Reader, params *Parameters) (*PrivateKey, *PublicKey, error) {
	if !params.wellFormed() {
		return nil, nil, opError("NewKeyPair", ErrInvalidParameters)
	}

	x, err := prime.RandomInRange(rng, one, params.Q)
	if err != nil {
		return nil, nil, opError("NewKeyPair", err)
	}

	priv := &PrivateKey{Parameters: *params, X: x}
	pub, err := priv.public()
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

// Public returns the public key y = g^x mod p, or nil for a malformed key.
func (k *PrivateKey) Public() *PublicKey {
	pub, err := k.public()
	if err != nil {
		return nil
	}
	return pub
}

func (k *PrivateKey) public() (*PublicKey, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	y, err := arith.ModPowSecret(k.G, k.X, k.P)
	if err != nil {
		return nil, opError("Public", err)
	}
	return &PublicKey{Parameters: k.Parameters, Y: y}, nil
}

// validate checks 0 < x < q over well-formed parameters.
func (k *PrivateKey) validate() error {
	if k == nil || !k.Parameters.wellFormed() || k.X == nil {
		return opError("PrivateKey", ErrInvalidKey)
	}
	if k.X.Sign() <= 0 || k.X.Cmp(k.Q) >= 0 {
		return errorf("PrivateKey", "%w: x out of range", ErrInvalidKey)
	}
	return nil
}

// wellFormed reports whether the key can be used for verification:
// well-formed parameters and 0 < y < p.
func (k *PublicKey) wellFormed() bool {
	if k == nil || !k.Parameters.wellFormed() || k.Y == nil {
		return false
	}
	return k.Y.Sign() > 0 && k.Y.Cmp(k.P) < 0
}

// Equal reports whether both public keys carry the same parameters and y.
func (k *PublicKey) Equal(other *PublicKey) bool {
	if !k.wellFormed() || !other.wellFormed() {
		return false
	}
	return k.P.Cmp(other.P) == 0 && k.Q.Cmp(other.Q) == 0 &&
		k.G.Cmp(other.G) == 0 && k.Y.Cmp(other.Y) == 0
}
