package dsa

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
)

// Record is one signature read from a file, with the message or the
// digest it was computed over.
type Record struct {
	Z       *big.Int // Message digest (nil = hash Message)
	Message []byte   // Signed message
	Signature
}

// SignatureParser defines the interface for parsing signatures from various sources.
type SignatureParser interface {
	// ParseSignatures parses signature records from a source.
	ParseSignatures(source string) ([]*Record, error)
}

// JSONParser parses signature records from JSON files.
type JSONParser struct {
	MessageField string // Field name for message (default: "message")
	RField       string // Field name for r (default: "r")
	SField       string // Field name for s (default: "s")
	ZField       string // Field name for z/digest (default: "z")
}

// ParseSignatures parses signature records from a JSON file.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "..."},
//	  {"z": "0x...", "r": "0x...", "s": "0x..."}
//	]
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	messageField := fieldOr(p.MessageField, "message")
	rField := fieldOr(p.RField, "r")
	sField := fieldOr(p.SField, "s")
	zField := fieldOr(p.ZField, "z")

	records := make([]*Record, 0, len(items))
	for i, item := range items {
		rec := &Record{}

		if zVal, ok := item[zField]; ok {
			z, err := parseBigInt(zVal)
			if err != nil {
				return nil, fmt.Errorf("record %d: failed to parse z: %w", i, err)
			}
			rec.Z = z
		}

		if msgVal, ok := item[messageField]; ok {
			msg, ok := msgVal.(string)
			if !ok {
				return nil, fmt.Errorf("record %d: message field must be a string", i)
			}
			rec.Message = []byte(msg)
		} else if rec.Z == nil {
			return nil, fmt.Errorf("record %d: missing message or z field", i)
		}

		rVal, ok := item[rField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing r field", i)
		}
		if rec.R, err = parseBigInt(rVal); err != nil {
			return nil, fmt.Errorf("record %d: failed to parse r: %w", i, err)
		}

		sVal, ok := item[sField]
		if !ok {
			return nil, fmt.Errorf("record %d: missing s field", i)
		}
		if rec.S, err = parseBigInt(sVal); err != nil {
			return nil, fmt.Errorf("record %d: failed to parse s: %w", i, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// CSVParser parses signature records from CSV files.
type CSVParser struct {
	MessageCol string // Column name for message (default: "message")
	RCol       string // Column name for r (default: "r")
	SCol       string // Column name for s (default: "s")
	ZCol       string // Column name for z/digest (default: "z")
}

// ParseSignatures parses signature records from a CSV file with a header row.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := fieldOr(p.MessageCol, "message")
	rCol := fieldOr(p.RCol, "r")
	sCol := fieldOr(p.SCol, "s")
	zCol := fieldOr(p.ZCol, "z")

	messageIdx, rIdx, sIdx, zIdx := -1, -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case messageCol:
			messageIdx = i
		case rCol:
			rIdx = i
		case sCol:
			sIdx = i
		case zCol:
			zIdx = i
		}
	}

	if rIdx == -1 || sIdx == -1 {
		return nil, fmt.Errorf("missing required columns: r or s")
	}
	if messageIdx == -1 && zIdx == -1 {
		return nil, fmt.Errorf("missing message or z column")
	}

	records := make([]*Record, 0)
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec := &Record{}
		if zIdx >= 0 && zIdx < len(row) && row[zIdx] != "" {
			if rec.Z, err = parseBigInt(row[zIdx]); err != nil {
				return nil, fmt.Errorf("line %d: failed to parse z: %w", line, err)
			}
		}
		if messageIdx >= 0 && messageIdx < len(row) {
			rec.Message = []byte(row[messageIdx])
		}

		if rIdx >= len(row) || sIdx >= len(row) {
			return nil, fmt.Errorf("line %d: r or s column index out of range", line)
		}
		if rec.R, err = parseBigInt(row[rIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse r: %w", line, err)
		}
		if rec.S, err = parseBigInt(row[sIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse s: %w", line, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

func fieldOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// parseBigInt parses a big integer from a 0x-prefixed hex string, a decimal
// string, or a JSON number.
func parseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		return ParseInt(v)

	case json.Number:
		z := new(big.Int)
		if _, ok := z.SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		s := fmt.Sprintf("%.0f", v)
		z := new(big.Int)
		if _, ok := z.SetString(s, 10); !ok {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		return z, nil

	case int64:
		return big.NewInt(v), nil

	case int:
		return big.NewInt(int64(v)), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

// ParseInt parses a decimal or 0x-prefixed hexadecimal integer.
// Unprefixed strings containing hex letters are read as hexadecimal.
func ParseInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.ContainsAny(s, "abcdefABCDEF"):
		base = 16
	}

	z, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("invalid number format: %s", s)
	}
	return z, nil
}
