// Package arith provides the modular arithmetic used by the signature scheme.
package arith

import (
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	// ErrNoInverse is returned when gcd(a, modulus) != 1.
	ErrNoInverse = errors.New("no modular inverse exists")

	// ErrInvalidModulus is returned for a nil modulus or one below 2.
	ErrInvalidModulus = errors.New("modulus must be at least 2")

	// ErrNegativeExponent is returned for a nil or negative exponent.
	ErrNegativeExponent = errors.New("exponent must be non-negative")
)

var two = big.NewInt(2)

func checkModulus(m *big.Int) error {
	if m == nil || m.Cmp(two) < 0 {
		return ErrInvalidModulus
	}
	return nil
}

// ModPow computes base^exp mod m.
func ModPow(base, exp, m *big.Int) (*big.Int, error) {
	if err := checkModulus(m); err != nil {
		return nil, err
	}
	if exp == nil || exp.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if base == nil {
		base = new(big.Int)
	}
	b := new(big.Int).Mod(base, m)
	return b.Exp(b, exp, m), nil
}

// ModInverse returns the unique i in [1, m) with a*i = 1 (mod m).
//
// The inverse is computed with the extended Euclidean algorithm and the
// result is checked before it is returned.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if err := checkModulus(m); err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNoInverse
	}

	reduced := new(big.Int).Mod(a, m)
	if reduced.Sign() == 0 {
		return nil, ErrNoInverse
	}

	inv := new(big.Int).ModInverse(reduced, m)
	if inv == nil {
		return nil, ErrNoInverse
	}

	check := new(big.Int).Mul(reduced, inv)
	check.Mod(check, m)
	if check.Cmp(big.NewInt(1)) != 0 {
		return nil, ErrNoInverse
	}
	return inv, nil
}

// ModPowSecret computes base^exp mod m for a secret exponent.
//
// The exponentiation runs on fixed-size saferith naturals sized to the
// modulus, so the running time does not depend on the bit length of exp
// beyond that size. The modulus must be odd.
func ModPowSecret(base, exp, m *big.Int) (*big.Int, error) {
	if err := checkModulus(m); err != nil {
		return nil, err
	}
	if m.Bit(0) == 0 {
		return nil, ErrInvalidModulus
	}
	if exp == nil || exp.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if base == nil {
		base = new(big.Int)
	}

	size := m.BitLen()
	modulus := saferith.ModulusFromNat(new(saferith.Nat).SetBig(m, size))

	b := new(big.Int).Mod(base, m)
	bNat := new(saferith.Nat).SetBig(b, size)

	eSize := exp.BitLen()
	if eSize < size {
		eSize = size
	}
	eNat := new(saferith.Nat).SetBig(exp, eSize)

	return new(saferith.Nat).Exp(bNat, eNat, modulus).Big(), nil
}
