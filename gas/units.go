package gas

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/params"
	"github.com/shopspring/decimal"
)

// All parsers here ignore leading and trailing whitespace and reject anything else
// that is not part of the number.

const (
	// gweiExp is the decimal exponent between wei and gwei
	gweiExp = 9
	// maxWeiDigits is the decimal length of 2^256-1
	maxWeiDigits = 78
)

// ParseHexWei parses a hexadecimal wei value of any length. A single 0x or 0X prefix is optional.
func ParseHexWei(hex string) (*big.Int, error) {
	digits := strings.TrimSpace(hex)
	if len(digits) >= 2 && digits[0] == '0' && (digits[1]|0x20) == 'x' {
		digits = digits[2:]
	}
	if digits == "" {
		return nil, fmt.Errorf("%w: empty hex value %q", ErrMalformedInput, hex)
	}
	// big.Int accepts a sign, so reject anything that is not a hex digit first
	for _, c := range digits {
		if !isHexDigit(c) {
			return nil, fmt.Errorf("%w: invalid hex value %q", ErrMalformedInput, hex)
		}
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w: invalid hex value %q", ErrMalformedInput, hex)
	}
	return v, nil
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// EncodeHex renders a nonnegative wei amount or gas limit as 0x-prefixed hex
func EncodeHex(v *big.Int) string {
	return hexutil.EncodeBig(v)
}

// WeiToDecGwei renders a wei amount as a decimal gwei string with up to 9 fractional digits
func WeiToDecGwei(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, -gweiExp).String()
}

// HexWeiToDecGwei converts a hex wei value into a decimal gwei string, e.g. "0x3B9ACA00" -> "1"
func HexWeiToDecGwei(hex string) (string, error) {
	wei, err := ParseHexWei(hex)
	if err != nil {
		return "", err
	}
	return WeiToDecGwei(wei), nil
}

// DecGweiToWei parses a decimal gwei string into wei, rounding half up at the wei boundary.
// Exponent notation is accepted, but a result that does not fit in 256 bits fails with
// ErrOverflow before it is expanded.
func DecGweiToWei(dec string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(dec))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid decimal %q", ErrMalformedInput, dec)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("%w: %s gwei", ErrNegativeValue, dec)
	}
	if d.IsZero() {
		return new(big.Int), nil
	}

	// wei = coefficient * 10^exp, so the value is below 10^(digits+exp)
	exp := int64(d.Exponent()) + gweiExp
	magnitude := int64(d.NumDigits()) + exp
	switch {
	case magnitude > maxWeiDigits:
		return nil, fmt.Errorf("%w: %d digit gwei value", ErrOverflow, magnitude-gweiExp)
	case magnitude < 0:
		// below 0.1 wei, rounds to zero
		return new(big.Int), nil
	}

	// Round is half away from zero, which is half up for nonnegative values
	wei := d.Mul(decimal.NewFromInt(params.GWei)).Round(0).BigInt()
	if wei.BitLen() > 256 {
		return nil, fmt.Errorf("%w: gwei value of %d bits", ErrOverflow, wei.BitLen())
	}
	return wei, nil
}

// DecGweiToHexWei converts a decimal gwei string into a hex wei value, e.g. "20" -> "0x4a817c800"
func DecGweiToHexWei(dec string) (string, error) {
	wei, err := DecGweiToWei(dec)
	if err != nil {
		return "", err
	}
	return EncodeHex(wei), nil
}

// ParseDecimalInt parses a nonnegative decimal integer string such as a gas limit
func ParseDecimalInt(dec string) (*big.Int, error) {
	s := strings.TrimSpace(dec)
	if s == "" {
		return nil, fmt.Errorf("%w: empty decimal value", ErrMalformedInput)
	}
	negative := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if digits == "" {
		return nil, fmt.Errorf("%w: invalid integer %q", ErrMalformedInput, dec)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: invalid integer %q", ErrMalformedInput, dec)
		}
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid integer %q", ErrMalformedInput, dec)
	}
	if negative && v.Sign() != 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeValue, dec)
	}
	return v, nil
}

// DecimalToHex converts a decimal integer string into hex, e.g. "21000" -> "0x5208"
func DecimalToHex(dec string) (string, error) {
	v, err := ParseDecimalInt(dec)
	if err != nil {
		return "", err
	}
	return EncodeHex(v), nil
}

// HexToDecimal converts a hex integer into its decimal string, e.g. "0x5208" -> "21000"
func HexToDecimal(hex string) (string, error) {
	v, err := ParseHexWei(hex)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
