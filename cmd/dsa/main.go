package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"

	"github.com/mahdiidarabi/subgroup-dsa/internal/config"
	"github.com/mahdiidarabi/subgroup-dsa/pkg/dsa"
	"github.com/mahdiidarabi/subgroup-dsa/pkg/logging"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to YAML config file (optional)")
		message       = flag.String("message", "Hello World!", "Message to sign in demo mode")
		hashName      = flag.String("hash", "", "Message digest: sha256, sha3-256 or blake2b-256 (overrides config)")
		deterministic = flag.Bool("deterministic", false, "Derive nonces per RFC 6979 (overrides config)")
		verifyFile    = flag.String("verify-file", "", "Path to signatures file (JSON or CSV) to batch-verify")
		format        = flag.String("format", "json", "Signature file format (json or csv)")
		pFlag         = flag.String("p", "", "Public key modulus p (verify-file mode)")
		qFlag         = flag.String("q", "", "Public key subgroup order q (verify-file mode)")
		gFlag         = flag.String("g", "", "Public key generator g (verify-file mode)")
		yFlag         = flag.String("y", "", "Public key value y (verify-file mode)")
	)
	flag.Parse()

	cfg, err := config.LoadConfigFromPath(*configPath)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if *hashName != "" {
		cfg.Signing.Hash = *hashName
	}
	if *deterministic {
		cfg.Signing.Deterministic = true
	}

	client, err := cfg.NewClient()
	if err != nil {
		fatalf("Error: %v", err)
	}
	client = client.WithLogger(logging.NewCLI(os.Stderr, "DSA_DEBUG"))

	ctx := context.Background()

	if *verifyFile != "" {
		key, err := parsePublicKey(*pFlag, *qFlag, *gFlag, *yFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			flag.Usage()
			os.Exit(1)
		}
		if err := runVerifyFile(ctx, client, *verifyFile, *format, key); err != nil {
			fatalf("Error: %v", err)
		}
		return
	}

	if err := runDemo(ctx, client, []byte(*message)); err != nil {
		fatalf("Error: %v", err)
	}
}

// runDemo generates a key pair, signs and verifies message, then checks that
// a tampered public key is rejected.
func runDemo(ctx context.Context, client *dsa.Client, message []byte) error {
	priv, pub, err := client.GenerateKeyPair(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Domain parameters"))
	printField("p", pub.P)
	printField("q", pub.Q)
	printField("g", pub.G)
	printField("y", pub.Y)

	sig, err := client.Sign(priv, message)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Signature"))
	printField("message", fmt.Sprintf("%q", message))
	printField("hash", client.Hash())
	printField("r", sig.R)
	printField("s", sig.S)

	fmt.Println(titleStyle.Render("Verification"))
	valid := client.Verify(pub, message, sig)
	printResult("public key", valid, true)

	tampered := &dsa.PublicKey{Parameters: pub.Parameters, Y: new(big.Int).Add(pub.Y, big.NewInt(1))}
	tamperedValid := client.Verify(tampered, message, sig)
	printResult("public key with y+1", tamperedValid, false)

	if !valid || tamperedValid {
		return fmt.Errorf("verification did not behave as expected")
	}
	return nil
}

func runVerifyFile(ctx context.Context, client *dsa.Client, path, format string, key *dsa.PublicKey) error {
	var parser dsa.SignatureParser
	switch format {
	case "json":
		parser = &dsa.JSONParser{}
	case "csv":
		parser = &dsa.CSVParser{}
	default:
		return fmt.Errorf("unknown format %q (must be json or csv)", format)
	}

	fmt.Printf("Loading signatures from %s...\n", path)
	results, err := client.WithParser(parser).VerifyFile(ctx, path, key)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Results"))
	valid := 0
	for _, res := range results {
		label := fmt.Sprintf("record %d", res.Index)
		if res.Digest != nil {
			label = fmt.Sprintf("record %d (z=%s)", res.Index, res.Digest.Text(16))
		}
		printResult(label, res.Valid, true)
		if res.Valid {
			valid++
		}
	}
	fmt.Printf("\n%d of %d signatures valid\n", valid, len(results))
	return nil
}

func parsePublicKey(p, q, g, y string) (*dsa.PublicKey, error) {
	if p == "" || q == "" || g == "" || y == "" {
		return nil, fmt.Errorf("-p, -q, -g and -y are required with -verify-file")
	}

	values := make([]*big.Int, 4)
	for i, s := range []string{p, q, g, y} {
		v, err := dsa.ParseInt(s)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	key := &dsa.PublicKey{
		Parameters: dsa.Parameters{P: values[0], Q: values[1], G: values[2]},
		Y:          values[3],
	}
	if err := key.Parameters.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
