package prime

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime_MatchesTrialDivision(t *testing.T) {
	for i := int64(-5); i < 5000; i++ {
		n := big.NewInt(i)
		require.Equal(t, TrialDivision(n), IsPrime(n, DefaultRounds), "n=%d", i)
	}
}

func TestIsPrime_KnownValues(t *testing.T) {
	primes := []int64{2, 3, 4999, 49991, 1000003}
	for _, p := range primes {
		assert.True(t, IsPrime(big.NewInt(p), 0), "%d should be prime", p)
	}

	composites := []int64{0, 1, 4, 561, 1105, 49995, 1000001}
	for _, c := range composites {
		assert.False(t, IsPrime(big.NewInt(c), 0), "%d should be composite", c)
	}

	assert.False(t, IsPrime(nil, 0))
}

func TestIsPrime_Secp256k1Constants(t *testing.T) {
	params := secp256k1.S256().Params()

	assert.True(t, IsPrime(params.P, DefaultRounds), "field prime")
	assert.True(t, IsPrime(params.N, DefaultRounds), "group order")

	pMinusOne := new(big.Int).Sub(params.P, big.NewInt(1))
	assert.False(t, IsPrime(pMinusOne, DefaultRounds))
}

func TestGeneratePrime_InRange(t *testing.T) {
	rng := mrand.New(mrand.NewSource(1))
	min, max := big.NewInt(1000), big.NewInt(5000)

	for i := 0; i < 50; i++ {
		p, err := GeneratePrime(rng, min, max, Options{})
		require.NoError(t, err)
		assert.True(t, p.Cmp(min) >= 0 && p.Cmp(max) < 0, "p=%s out of range", p)
		assert.True(t, TrialDivision(p), "p=%s not prime", p)
	}
}

func TestGeneratePrime_NoPrimeInRange(t *testing.T) {
	// 24..28 contains no prime
	_, err := GeneratePrime(mrand.New(mrand.NewSource(1)), big.NewInt(24), big.NewInt(29), Options{MaxAttempts: 100})
	assert.ErrorIs(t, err, ErrNoPrimeInRange)
}

func TestGeneratePrime_InvalidRange(t *testing.T) {
	_, err := GeneratePrime(nil, big.NewInt(10), big.NewInt(10), Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GeneratePrime(nil, nil, big.NewInt(10), Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRandomInRange(t *testing.T) {
	rng := mrand.New(mrand.NewSource(7))
	min, max := big.NewInt(5), big.NewInt(8)
	seen := map[int64]bool{}

	for i := 0; i < 200; i++ {
		n, err := RandomInRange(rng, min, max)
		require.NoError(t, err)
		seen[n.Int64()] = true
	}

	assert.Equal(t, map[int64]bool{5: true, 6: true, 7: true}, seen)
}
