// Package dsa implements a DSA-style signature scheme over a prime-order
// subgroup of the multiplicative group modulo a prime p.
//
// Domain parameters (p, q, g) are derived per key pair: q is a prime drawn
// from a configurable range, p is a prime with q | p-1, and g generates the
// subgroup of order q. The private key is x in [1, q-1] and the public key is
// y = g^x mod p.
//
// Every search loop (prime sampling, the p search, the generator witness scan
// and nonce retries while signing) runs under an explicit attempt budget and
// fails with a typed error instead of looping forever.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/subgroup-dsa/pkg/dsa"
//
//	client := dsa.NewClient()
//
//	priv, pub, err := client.GenerateKeyPair(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sig, err := client.Sign(priv, []byte("Hello World!"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(client.Verify(pub, []byte("Hello World!"), sig)) // true
//
// # Customization
//
// Parameter ranges and search budgets are explicit:
//
//	client := dsa.NewClient().
//	    WithParameterConfig(dsa.ParameterConfig{
//	        QRange:          dsa.NewRange(1000, 5000),
//	        PRange:          dsa.NewRange(1000, 60000),
//	        ModulusAttempts: 1 << 14,
//	        NumWorkers:      4,
//	    }).
//	    WithHash(dsa.SHA3_256).
//	    WithNonceSource(dsa.DeterministicNonces{Hash: dsa.SHA3_256})
//
// # Custom Nonce Sources
//
// Implement the NonceSource interface to control how k is chosen:
//
//	type MySource struct{}
//
//	func (MySource) Stream(key *dsa.PrivateKey, digest []byte) dsa.NonceStream {
//	    // Your nonce derivation
//	}
//
//	func (MySource) Name() string {
//	    return "my-source"
//	}
//
// # Errors
//
// Failures are reported as *Error values wrapping one of the sentinel errors
// (ErrParameterGeneration, ErrNoPrimeInRange, ErrNoInverse, ErrSigningFailed,
// ErrInvalidKey, ...), so callers can match them with errors.Is. Verification
// never returns an error: any malformed input simply does not verify.
package dsa
