package dsa

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/subgroup-dsa/internal/arith"
	"github.com/mahdiidarabi/subgroup-dsa/internal/prime"
)

var (
	// ErrNoInverse indicates that a modular inverse does not exist
	ErrNoInverse = arith.ErrNoInverse

	// ErrNoPrimeInRange indicates the prime search budget was spent without a hit
	ErrNoPrimeInRange = prime.ErrNoPrimeInRange

	// ErrInvalidRange indicates a search range with min >= max
	ErrInvalidRange = prime.ErrInvalidRange

	// ErrParameterGeneration indicates that no (p, q, g) could be derived
	ErrParameterGeneration = errors.New("dsa: parameter generation failed")

	// ErrInvalidKey indicates a malformed private or public key
	ErrInvalidKey = errors.New("dsa: invalid key")

	// ErrInvalidParameters indicates domain parameters violating an invariant
	ErrInvalidParameters = errors.New("dsa: invalid domain parameters")

	// ErrSigningFailed indicates every nonce attempt produced a degenerate signature
	ErrSigningFailed = errors.New("dsa: signing failed")

	// ErrInvalidConfig indicates an unusable configuration
	ErrInvalidConfig = errors.New("dsa: invalid configuration")
)

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("dsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &Error{Op: op, Err: err}
}

func errorf(op string, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf(format, args...),
	}
}
