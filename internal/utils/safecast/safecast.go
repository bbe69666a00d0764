// Package safecast converts between integer types without silent truncation.
package safecast

import (
	"fmt"
	"math"
	"math/big"

	"github.com/spf13/cast"
)

// IntToUint8 converts an int to uint8, rejecting values outside [0, 255].
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}

// Uint64ToInt64 converts a uint64 to int64, rejecting values above MaxInt64.
func Uint64ToInt64(value uint64) (int64, error) {
	if value > math.MaxInt64 {
		return 0, fmt.Errorf("value %d exceeds int64 range", value)
	}

	return cast.ToInt64E(value)
}

// Int64ToUint64 converts an int64 to uint64, rejecting negative values.
func Int64ToUint64(value int64) (uint64, error) {
	if value < 0 {
		return 0, fmt.Errorf("value %d is negative, cannot convert to uint64", value)
	}

	return cast.ToUint64E(value)
}

// BigToUint64 converts an on-chain uint256 (nonce, threshold) to uint64.
func BigToUint64(value *big.Int) (uint64, error) {
	if value == nil {
		return 0, nil
	}
	if value.Sign() < 0 {
		return 0, fmt.Errorf("value %s is negative, cannot convert to uint64", value)
	}
	if !value.IsUint64() {
		return 0, fmt.Errorf("value %s exceeds uint64 range", value)
	}

	return value.Uint64(), nil
}

// StringToUint64 parses a decimal flag or environment value.
func StringToUint64(value string) (uint64, error) {
	n, err := cast.ToUint64E(value)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned integer %q: %w", value, err)
	}

	return n, nil
}
