// Package nonce derives deterministic per-signature nonces as described in
// RFC 6979, section 3.2.
package nonce

import (
	"crypto/hmac"
	"hash"
	"math/big"
)

// Generator yields the sequence of candidate nonces k in [1, q-1] for one
// (key, digest) pair. Successive calls to Next continue the HMAC-DRBG, which
// is what RFC 6979 prescribes when a candidate is rejected.
type Generator struct {
	q     *big.Int
	qlen  int
	rlen  int
	alg   func() hash.Hash
	k     []byte
	v     []byte
	first bool
}

// NewGenerator seeds the generator from the private scalar x and the message
// digest h1 (raw hash output).
func NewGenerator(q, x *big.Int, alg func() hash.Hash, h1 []byte) *Generator {
	qlen := q.BitLen()
	rlen := (qlen + 7) >> 3
	holen := alg().Size()

	bx := append(int2octets(x, rlen), bits2octets(h1, q, qlen, rlen)...)

	v := make([]byte, holen)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, holen)

	k = mac(alg, k, v, []byte{0x00}, bx)
	v = mac(alg, k, v)
	k = mac(alg, k, v, []byte{0x01}, bx)
	v = mac(alg, k, v)

	return &Generator{q: q, qlen: qlen, rlen: rlen, alg: alg, k: k, v: v, first: true}
}

// Next returns the next candidate nonce.
func (g *Generator) Next() *big.Int {
	if !g.first {
		g.k = mac(g.alg, g.k, g.v, []byte{0x00})
		g.v = mac(g.alg, g.k, g.v)
	}
	g.first = false

	for {
		var t []byte
		for len(t) < g.rlen {
			g.v = mac(g.alg, g.k, g.v)
			t = append(t, g.v...)
		}

		secret := bits2int(t, g.qlen)
		if secret.Sign() > 0 && secret.Cmp(g.q) < 0 {
			return secret
		}

		g.k = mac(g.alg, g.k, g.v, []byte{0x00})
		g.v = mac(g.alg, g.k, g.v)
	}
}

func mac(alg func() hash.Hash, k []byte, parts ...[]byte) []byte {
	m := hmac.New(alg, k)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

// bits2int interprets in as a big-endian integer truncated to qlen bits.
func bits2int(in []byte, qlen int) *big.Int {
	v := new(big.Int).SetBytes(in)
	if vlen := len(in) * 8; vlen > qlen {
		v.Rsh(v, uint(vlen-qlen))
	}
	return v
}

func int2octets(v *big.Int, rlen int) []byte {
	out := v.Bytes()
	if len(out) < rlen {
		padded := make([]byte, rlen)
		copy(padded[rlen-len(out):], out)
		return padded
	}
	if len(out) > rlen {
		return out[len(out)-rlen:]
	}
	return out
}

func bits2octets(in []byte, q *big.Int, qlen, rlen int) []byte {
	z1 := bits2int(in, qlen)
	z2 := new(big.Int).Sub(z1, q)
	if z2.Sign() < 0 {
		return int2octets(z1, rlen)
	}
	return int2octets(z2, rlen)
}
