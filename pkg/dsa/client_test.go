package dsa

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mahdiidarabi/subgroup-dsa/pkg/logging"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient()

	if client.Hash() != SHA256 {
		t.Errorf("default hash = %s, want sha256", client.Hash())
	}
	cfg := client.ParameterConfig()
	if cfg.QRange.String() != "[1000, 5000)" || cfg.PRange.String() != "[1000, 60000)" {
		t.Errorf("unexpected default ranges q=%s p=%s", cfg.QRange, cfg.PRange)
	}
}

func TestClient_Builders(t *testing.T) {
	cfg := smallParameterConfig()
	client := NewClient().
		WithParameterConfig(cfg).
		WithHash(SHA3_256).
		WithNonceSource(DeterministicNonces{}).
		WithMaxSignAttempts(8).
		WithRand(testRand(1)).
		WithParser(&CSVParser{}).
		WithLogger(nil)

	if client.Hash() != SHA3_256 {
		t.Errorf("hash = %s, want sha3-256", client.Hash())
	}
	if client.ParameterConfig().QRange.String() != cfg.QRange.String() {
		t.Errorf("parameter config was not applied")
	}

	signer := client.signer()
	if signer.Nonces.Name() != "rfc6979-sha256" || signer.MaxAttempts != 8 {
		t.Errorf("unexpected signer %+v", signer)
	}
}

func TestClient_VerifyFile(t *testing.T) {
	_, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	tests := []struct {
		file   string
		parser SignatureParser
	}{
		{"test_signatures.json", &JSONParser{}},
		{"test_signatures.csv", &CSVParser{}},
	}

	want := []bool{true, true, true, false}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			client := NewClient().WithParser(tt.parser)
			results, err := client.VerifyFile(context.Background(), filepath.Join(fixturesDir(), tt.file), pub)
			if err != nil {
				t.Fatalf("VerifyFile failed: %v", err)
			}
			if len(results) != len(want) {
				t.Fatalf("Expected %d results, got %d", len(want), len(results))
			}
			for i, res := range results {
				if res.Index != i {
					t.Errorf("result %d has index %d", i, res.Index)
				}
				if res.Valid != want[i] {
					t.Errorf("record %d: valid=%v, want %v", i, res.Valid, want[i])
				}
			}
		})
	}
}

func TestClient_VerifyFileMissing(t *testing.T) {
	_, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	_, err = NewClient().VerifyFile(context.Background(), filepath.Join(t.TempDir(), "none.json"), pub)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestClient_VerifyRecordsHashesMessages(t *testing.T) {
	priv, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	client := NewClient().WithHash(BLAKE2b_256).WithRand(testRand(3))
	msg := []byte("Hello World!")
	sig, err := client.Sign(priv, msg)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	records := []*Record{
		{Message: msg, Signature: *sig},
		nil,
		{Z: Digest(BLAKE2b_256, msg), Signature: *sig},
	}
	results, err := client.VerifyRecords(context.Background(), records, pub)
	if err != nil {
		t.Fatalf("VerifyRecords failed: %v", err)
	}

	if !results[0].Valid || !results[2].Valid {
		t.Errorf("signed message should verify: %+v", results)
	}
	if results[1].Valid {
		t.Error("nil record should not verify")
	}
	if results[0].Digest.Cmp(Digest(BLAKE2b_256, msg)) != 0 {
		t.Errorf("digest %s was not computed with blake2b", results[0].Digest)
	}
}

func TestClient_VerifyRecordsCancelled(t *testing.T) {
	_, pub, err := loadTestKeys()
	if err != nil {
		t.Fatalf("Failed to load test keys: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []*Record{{Z: big.NewInt(5), Signature: Signature{R: big.NewInt(8), S: big.NewInt(1)}}}
	if _, err := NewClient().VerifyRecords(ctx, records, pub); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClient_LogsRedactSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	client := NewClient().
		WithParameterConfig(smallParameterConfig()).
		WithRand(testRand(5)).
		WithLogger(logger)

	priv, pub, err := client.GenerateKeyPair(context.Background())
	if err != nil {
		t.Fatalf("GenerateKeyPair failed: %v", err)
	}
	sig, err := client.Sign(priv, []byte("Hello World!"))
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if !client.Verify(pub, []byte("Hello World!"), sig) {
		t.Fatal("signature should verify")
	}

	out := buf.String()
	for _, want := range []string{"key pair generated", "x=" + logging.Placeholder(), "k=" + logging.Placeholder()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "x="+priv.X.String()+" ") {
		t.Errorf("private key leaked into logs:\n%s", out)
	}
}
