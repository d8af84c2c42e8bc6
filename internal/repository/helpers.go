package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// marshalDecimals encodes a decimal slice as a JSON array of strings.
// An empty slice encodes to the empty string so unset bands stay compact.
func marshalDecimals(vals []decimal.Decimal) (string, error) {
	if len(vals) == 0 {
		return "", nil
	}
	data, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("encoding decimals: %w", err)
	}
	return string(data), nil
}

// unmarshalDecimals decodes a JSON array of decimal strings. The empty
// string decodes to nil.
func unmarshalDecimals(raw string) ([]decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	var vals []decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil, fmt.Errorf("decoding decimals: %w", err)
	}
	return vals, nil
}

// marshalParams encodes per-row override parameters; empty maps encode to
// the empty string.
func marshalParams(params map[string]float64) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encoding params: %w", err)
	}
	return string(data), nil
}

func unmarshalParams(raw string) (map[string]float64, error) {
	if raw == "" {
		return nil, nil
	}
	var params map[string]float64
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}
	return params, nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
