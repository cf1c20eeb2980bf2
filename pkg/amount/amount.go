// Package amount converts between decimal-string token quantities and their
// 18-decimal fixed point on-chain representation.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Decimals is the fixed point scale used by every staking and reward token.
const Decimals = 18

var ErrInvalidAmount = errors.New("invalid amount")

// Parse reads a decimal string such as "1.5" into a fixed point decimal.
func Parse(s string) (sdkmath.LegacyDec, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	d, err := sdkmath.LegacyNewDecFromStr(trimmed)
	if err != nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	return d, nil
}

// ParseOrZero is Parse for values that are already known to be well formed,
// such as cached state. Malformed or empty input yields zero.
func ParseOrZero(s string) sdkmath.LegacyDec {
	d, err := Parse(s)
	if err != nil {
		return sdkmath.LegacyZeroDec()
	}
	return d
}

// Format renders d without trailing zeros: 3 -> "3", 1.50 -> "1.5".
func Format(d sdkmath.LegacyDec) string {
	if d.IsNil() {
		return "0"
	}
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// ToWei converts a decimal string into its 18-decimal integer representation.
func ToWei(s string) (*big.Int, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return d.BigInt(), nil
}

// FromWei converts an 18-decimal integer into a decimal string.
func FromWei(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return Format(sdkmath.LegacyNewDecFromBigIntWithPrec(wei, Decimals))
}

// Add returns a + b as a decimal string.
func Add(a, b string) (string, error) {
	x, err := Parse(a)
	if err != nil {
		return "", err
	}
	y, err := Parse(b)
	if err != nil {
		return "", err
	}
	return Format(x.Add(y)), nil
}

// Sub returns a - b as a decimal string. The result may be negative.
func Sub(a, b string) (string, error) {
	x, err := Parse(a)
	if err != nil {
		return "", err
	}
	y, err := Parse(b)
	if err != nil {
		return "", err
	}
	return Format(x.Sub(y)), nil
}

// ClampSub returns max(a - b, 0).
func ClampSub(a, b string) (string, error) {
	x, err := Parse(a)
	if err != nil {
		return "", err
	}
	y, err := Parse(b)
	if err != nil {
		return "", err
	}
	diff := x.Sub(y)
	if diff.IsNegative() {
		return "0", nil
	}
	return Format(diff), nil
}

// IsPositive reports whether s parses to a value strictly greater than zero.
func IsPositive(s string) bool {
	d, err := Parse(s)
	return err == nil && d.IsPositive()
}

// ToFloat converts a decimal string to float64 for display math.
// Unparseable input yields 0.
func ToFloat(s string) float64 {
	d, err := Parse(s)
	if err != nil {
		return 0
	}
	f, err := d.Float64()
	if err != nil {
		return 0
	}
	return f
}
