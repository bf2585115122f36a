package dsa

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		priv, pub, err := GenerateKeyPair(ctx, testRand(int64(100+i)), smallParameterConfig())
		if err != nil {
			t.Fatalf("GenerateKeyPair failed: %v", err)
		}

		if priv.X.Sign() <= 0 || priv.X.Cmp(priv.Q) >= 0 {
			t.Errorf("x=%s not in (0, q)", priv.X)
		}

		y := new(big.Int).Exp(pub.G, priv.X, pub.P)
		if y.Cmp(pub.Y) != 0 {
			t.Errorf("y=%s, want g^x mod p = %s", pub.Y, y)
		}

		if priv.P != pub.P || priv.Q != pub.Q || priv.G != pub.G {
			t.Error("private and public key should share the same parameters")
		}
		checkParameterInvariants(t, &pub.Parameters)
	}
}

func TestPrivateKey_Public(t *testing.T) {
	priv, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	derived := priv.Public()
	if derived == nil {
		t.Fatal("Public() returned nil")
	}
	if !derived.Equal(pub) {
		t.Errorf("derived y=%s, want %s", derived.Y, pub.Y)
	}
}

func TestPrivateKey_PublicInvalid(t *testing.T) {
	priv, _, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	for _, x := range []int64{0, 11, -1} {
		bad := &PrivateKey{Parameters: priv.Parameters, X: big.NewInt(x)}
		if bad.Public() != nil {
			t.Errorf("x=%d: expected nil public key", x)
		}
	}

	var nilKey *PrivateKey
	if nilKey.Public() != nil {
		t.Error("nil key: expected nil public key")
	}
}

func TestNewKeyPair_InvalidParameters(t *testing.T) {
	_, _, err := NewKeyPair(testRand(1), &Parameters{P: big.NewInt(23), Q: big.NewInt(11)})
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestNewKeyPair_ReusesParameters(t *testing.T) {
	_, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	rng := testRand(5)
	for i := 0; i < 20; i++ {
		priv, pub2, err := NewKeyPair(rng, &pub.Parameters)
		if err != nil {
			t.Fatalf("NewKeyPair failed: %v", err)
		}
		if priv.X.Sign() <= 0 || priv.X.Cmp(big.NewInt(11)) >= 0 {
			t.Errorf("x=%s not in [1, 10]", priv.X)
		}
		want := new(big.Int).Exp(big.NewInt(4), priv.X, big.NewInt(23))
		if pub2.Y.Cmp(want) != 0 {
			t.Errorf("y=%s, want %s", pub2.Y, want)
		}
	}
}
