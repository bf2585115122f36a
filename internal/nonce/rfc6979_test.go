package nonce

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok, "bad hex %q", s)
	return v
}

// RFC 6979, appendix A.1.2.
func TestGenerator_RFCExample(t *testing.T) {
	q := mustHex(t, "4000000000000000000020108A2E0CC0D99F8A5EF")
	x := mustHex(t, "09A4D6792295A7F730FC3F2B49CBC0F62E862272F")
	h1 := sha256.Sum256([]byte("sample"))

	k := NewGenerator(q, x, sha256.New, h1[:]).Next()
	assert.Equal(t, "23af4074c90a02b3fe61d286d5c87f425e6bdd81b", k.Text(16))
}

func TestGenerator_Deterministic(t *testing.T) {
	q := big.NewInt(4813)
	x := big.NewInt(1234)
	h1 := sha256.Sum256([]byte("Hello World!"))

	g1 := NewGenerator(q, x, sha256.New, h1[:])
	g2 := NewGenerator(q, x, sha256.New, h1[:])

	for i := 0; i < 20; i++ {
		k1, k2 := g1.Next(), g2.Next()
		assert.Equal(t, 0, k1.Cmp(k2))
		assert.True(t, k1.Sign() > 0 && k1.Cmp(q) < 0, "k=%s out of range", k1)
	}
}

func TestGenerator_DependsOnInputs(t *testing.T) {
	q := mustHex(t, "4000000000000000000020108A2E0CC0D99F8A5EF")
	x := mustHex(t, "09A4D6792295A7F730FC3F2B49CBC0F62E862272F")
	a := sha256.Sum256([]byte("sample"))
	b := sha256.Sum256([]byte("test"))

	ka := NewGenerator(q, x, sha256.New, a[:]).Next()
	kb := NewGenerator(q, x, sha256.New, b[:]).Next()
	assert.NotEqual(t, 0, ka.Cmp(kb))

	kx := NewGenerator(q, new(big.Int).Add(x, big.NewInt(1)), sha256.New, a[:]).Next()
	assert.NotEqual(t, 0, ka.Cmp(kx))
}

func TestGenerator_SuccessiveCandidatesDiffer(t *testing.T) {
	q := mustHex(t, "4000000000000000000020108A2E0CC0D99F8A5EF")
	x := big.NewInt(42)
	h1 := sha256.Sum256([]byte("sample"))

	g := NewGenerator(q, x, sha256.New, h1[:])
	first := g.Next()
	second := g.Next()
	assert.NotEqual(t, 0, first.Cmp(second))
}
