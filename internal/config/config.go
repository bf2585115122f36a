// Package config loads the YAML configuration of the dsa command.
package config

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/subgroup-dsa/pkg/dsa"
)

// BigInt is an integer that unmarshals from a YAML decimal or 0x-prefixed
// hexadecimal scalar.
type BigInt struct {
	*big.Int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *BigInt) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", value.Line)
	}
	v, err := dsa.ParseInt(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	b.Int = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (b BigInt) MarshalYAML() (interface{}, error) {
	if b.Int == nil {
		return nil, nil
	}
	return b.Int.String(), nil
}

// ParametersConfig holds the domain parameter generation settings.
type ParametersConfig struct {
	QMin BigInt `yaml:"q_min" description:"Inclusive lower bound for q" default:"1000"`
	QMax BigInt `yaml:"q_max" description:"Exclusive upper bound for q" default:"5000"`
	PMin BigInt `yaml:"p_min" description:"Inclusive lower bound for p" default:"1000"`
	PMax BigInt `yaml:"p_max" description:"Exclusive upper bound for p" default:"60000"`

	PrimeAttempts   int `yaml:"prime_attempts" description:"Candidates drawn per prime"`
	ModulusAttempts int `yaml:"modulus_attempts" description:"Primes p tried per q"`
	WitnessAttempts int `yaml:"witness_attempts" description:"Witnesses h tried per generator search"`
	Rounds          int `yaml:"rounds" description:"Fresh q values drawn before giving up"`
	Workers         int `yaml:"workers" description:"Workers searching for p (0 = auto-detect)"`
}

// SigningConfig holds the signing and verification settings.
type SigningConfig struct {
	Hash          string `yaml:"hash" description:"Message digest (sha256, sha3-256, blake2b-256)" default:"sha256"`
	Deterministic bool   `yaml:"deterministic" description:"Derive nonces per RFC 6979 instead of drawing them"`
	MaxAttempts   int    `yaml:"max_attempts" description:"Nonces tried per signature"`
}

// Config holds the dsa command configuration.
type Config struct {
	Parameters ParametersConfig `yaml:"parameters"`
	Signing    SigningConfig    `yaml:"signing"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	d := dsa.DefaultParameterConfig()
	return Config{
		Parameters: ParametersConfig{
			QMin:            BigInt{d.QRange.Min},
			QMax:            BigInt{d.QRange.Max},
			PMin:            BigInt{d.PRange.Min},
			PMax:            BigInt{d.PRange.Max},
			PrimeAttempts:   d.PrimeAttempts,
			ModulusAttempts: d.ModulusAttempts,
			WitnessAttempts: d.WitnessAttempts,
			Rounds:          d.Rounds,
			Workers:         d.NumWorkers,
		},
		Signing: SigningConfig{
			Hash:        dsa.SHA256.String(),
			MaxAttempts: dsa.DefaultSignAttempts,
		},
	}
}

// LoadConfigFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadConfigFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay config file values
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, err := config.ParameterConfig(); err != nil {
		return Config{}, err
	}
	if _, err := dsa.ParseHash(config.Signing.Hash); err != nil {
		return Config{}, err
	}
	if config.Signing.MaxAttempts < 0 {
		return Config{}, fmt.Errorf("invalid max_attempts %d in config", config.Signing.MaxAttempts)
	}

	return config, nil
}

// ParameterConfig converts the parameters section and validates it.
func (c Config) ParameterConfig() (dsa.ParameterConfig, error) {
	p := c.Parameters
	cfg := dsa.DefaultParameterConfig()
	cfg.QRange = dsa.Range{Min: p.QMin.Int, Max: p.QMax.Int}
	cfg.PRange = dsa.Range{Min: p.PMin.Int, Max: p.PMax.Int}
	cfg.PrimeAttempts = p.PrimeAttempts
	cfg.ModulusAttempts = p.ModulusAttempts
	cfg.WitnessAttempts = p.WitnessAttempts
	cfg.Rounds = p.Rounds
	cfg.NumWorkers = p.Workers

	if err := cfg.Validate(); err != nil {
		return dsa.ParameterConfig{}, err
	}
	return cfg, nil
}

// NewClient builds a dsa client from the configuration.
func (c Config) NewClient() (*dsa.Client, error) {
	params, err := c.ParameterConfig()
	if err != nil {
		return nil, err
	}
	h, err := dsa.ParseHash(c.Signing.Hash)
	if err != nil {
		return nil, err
	}

	client := dsa.NewClient().
		WithParameterConfig(params).
		WithHash(h).
		WithMaxSignAttempts(c.Signing.MaxAttempts)
	if c.Signing.Deterministic {
		client = client.WithNonceSource(dsa.DeterministicNonces{Hash: h})
	}
	return client, nil
}
