package dsa

import "math/big"

// Parameters are the shared domain parameters (p, q, g) of a key pair.
type Parameters struct {
	P *big.Int // Prime modulus
	Q *big.Int // Prime divisor of P-1, order of the subgroup
	G *big.Int // Generator of the order-Q subgroup
}

// PrivateKey is a secret scalar X with 0 < X < Q.
type PrivateKey struct {
	Parameters
	X *big.Int
}

// PublicKey is Y = G^X mod P for the paired private key.
type PublicKey struct {
	Parameters
	Y *big.Int
}

// Signature is the pair (r, s). It is only meaningful together with the
// message and public key it is verified against.
type Signature struct {
	R *big.Int
	S *big.Int
}

// VerifyResult is the outcome of verifying one record of a signature file.
type VerifyResult struct {
	Index  int      // Position of the record in the source
	Valid  bool     // Whether the signature verified
	Digest *big.Int // Digest the signature was checked against
}
