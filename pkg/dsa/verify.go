package dsa

import (
	"math/big"

	"github.com/mahdiidarabi/subgroup-dsa/internal/arith"
)

// Verifier checks signatures. The zero value uses SHA-256.
type Verifier struct {
	Hash Hash
}

// Verify reports whether sig is a valid SHA-256 signature of message under key.
func Verify(key *PublicKey, message []byte, sig *Signature) bool {
	return Verifier{}.Verify(key, message, sig)
}

// Verify hashes message and checks sig against the digest.
func (v Verifier) Verify(key *PublicKey, message []byte, sig *Signature) bool {
	return v.VerifyDigest(key, Digest(v.Hash, message), sig)
}

// VerifyDigest checks sig against a precomputed digest z:
//
//	w  = s^-1 mod q
//	u1 = z*w mod q
//	u2 = r*w mod q
//	v  = (g^u1 * y^u2 mod p) mod q
//
// and accepts iff v = r. Malformed keys or signatures, and r or s outside
// [1, q-1], are rejected.
func (v Verifier) VerifyDigest(key *PublicKey, z *big.Int, sig *Signature) bool {
	if !key.wellFormed() || z == nil || z.Sign() < 0 {
		return false
	}
	if sig == nil || sig.R == nil || sig.S == nil {
		return false
	}

	q := key.Q
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(q) >= 0 {
		return false
	}

	w, err := arith.ModInverse(sig.S, q)
	if err != nil {
		return false
	}

	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, w)
	u2.Mod(u2, q)

	gu1, err := arith.ModPow(key.G, u1, key.P)
	if err != nil {
		return false
	}
	yu2, err := arith.ModPow(key.Y, u2, key.P)
	if err != nil {
		return false
	}

	check := gu1.Mul(gu1, yu2)
	check.Mod(check, key.P)
	check.Mod(check, q)

	return check.Cmp(sig.R) == 0
}
