package dsa

import (
	"context"
	"fmt"
	"io"
	"math/big"

	"github.com/mahdiidarabi/subgroup-dsa/pkg/logging"
)

// Client provides a high-level API for key generation, signing and
// verification with one shared configuration.
type Client struct {
	params      ParameterConfig
	hash        Hash
	nonces      NonceSource
	maxAttempts int
	rand        io.Reader
	parser      SignatureParser
	logger      logging.Logger
}

// NewClient creates a new client with default settings: the reference
// parameter ranges, SHA-256, random nonces from crypto/rand.
func NewClient() *Client {
	return &Client{
		params: DefaultParameterConfig(),
		hash:   SHA256,
		parser: &JSONParser{},
		logger: logging.Discard(),
	}
}

// WithParameterConfig sets the parameter generation configuration.
func (c *Client) WithParameterConfig(cfg ParameterConfig) *Client {
	c.params = cfg
	return c
}

// WithHash sets the message digest used for signing and verification.
func (c *Client) WithHash(h Hash) *Client {
	c.hash = h
	return c
}

// WithNonceSource sets a custom nonce strategy.
func (c *Client) WithNonceSource(source NonceSource) *Client {
	c.nonces = source
	return c
}

// WithMaxSignAttempts bounds the nonces tried per signature.
func (c *Client) WithMaxSignAttempts(n int) *Client {
	c.maxAttempts = n
	return c
}

// WithRand sets the random source used for parameters, keys and random nonces.
func (c *Client) WithRand(rng io.Reader) *Client {
	c.rand = rng
	return c
}

// WithParser sets a custom signature parser.
func (c *Client) WithParser(parser SignatureParser) *Client {
	c.parser = parser
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	c.logger = logger
	return c
}

// ParameterConfig returns the parameter configuration in use.
func (c *Client) ParameterConfig() ParameterConfig {
	return c.params
}

// Hash returns the message digest in use.
func (c *Client) Hash() Hash {
	return c.hash
}

// GenerateKeyPair generates fresh parameters and a key pair.
func (c *Client) GenerateKeyPair(ctx context.Context) (*PrivateKey, *PublicKey, error) {
	c.logger.Info(ctx, "generating key pair",
		"q_range", c.params.QRange.String(),
		"p_range", c.params.PRange.String(),
	)

	priv, pub, err := generateKeyPair(ctx, c.rand, c.params, c.logger)
	if err != nil {
		c.logger.Error(ctx, "key generation failed", "error", err)
		return nil, nil, err
	}

	c.logger.Info(ctx, "key pair generated",
		"p", pub.P, "q", pub.Q, "g", pub.G, "y", pub.Y,
		logging.Redacted("x"),
	)
	return priv, pub, nil
}

// Sign signs message with key.
func (c *Client) Sign(key *PrivateKey, message []byte) (*Signature, error) {
	signer := c.signer()
	h1 := c.hash.Sum(message)

	sig, attempts, err := signer.sign(key, new(big.Int).SetBytes(h1), h1)
	ctx := context.Background()
	if err != nil {
		c.logger.Error(ctx, "signing failed", "nonces", signer.Nonces.Name(), "attempts", attempts, "error", err)
		return nil, err
	}
	if attempts > 1 {
		c.logger.Debug(ctx, "degenerate nonces skipped", "attempts", attempts)
	}
	c.logger.Debug(ctx, "message signed",
		"hash", c.hash.String(),
		"nonces", signer.Nonces.Name(),
		"r", sig.R, "s", sig.S,
		logging.Redacted("k"),
	)
	return sig, nil
}

// Verify reports whether sig is a valid signature of message under key.
func (c *Client) Verify(key *PublicKey, message []byte, sig *Signature) bool {
	return Verifier{Hash: c.hash}.Verify(key, message, sig)
}

// VerifyFile verifies every signature record of source against key.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to signature file (JSON or CSV, depending on the parser).
//   - key: Public key the signatures are checked against.
//
// Returns:
//   - One VerifyResult per record, in file order.
func (c *Client) VerifyFile(ctx context.Context, source string, key *PublicKey) ([]VerifyResult, error) {
	records, err := c.parser.ParseSignatures(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signatures: %w", err)
	}
	return c.VerifyRecords(ctx, records, key)
}

// VerifyRecords verifies in-memory signature records against key.
// Records without a digest are hashed with the client's hash.
func (c *Client) VerifyRecords(ctx context.Context, records []*Record, key *PublicKey) ([]VerifyResult, error) {
	verifier := Verifier{Hash: c.hash}
	results := make([]VerifyResult, 0, len(records))

	for i, rec := range records {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		if rec == nil {
			results = append(results, VerifyResult{Index: i})
			continue
		}

		z := rec.Z
		if z == nil {
			z = Digest(c.hash, rec.Message)
		}
		sig := rec.Signature
		valid := verifier.VerifyDigest(key, z, &sig)
		results = append(results, VerifyResult{Index: i, Valid: valid, Digest: z})
	}

	c.logger.Info(ctx, "verified signature records", "records", len(records), "valid", countValid(results))
	return results, nil
}

func (c *Client) signer() *Signer {
	source := c.nonces
	if source == nil {
		source = RandomNonces{Rand: c.rand}
	}
	return &Signer{Hash: c.hash, Nonces: source, MaxAttempts: c.maxAttempts}
}

func countValid(results []VerifyResult) int {
	n := 0
	for _, r := range results {
		if r.Valid {
			n++
		}
	}
	return n
}
