package gas

import "errors"

var (
	// ErrMalformedInput is returned when a numeric string cannot be parsed
	ErrMalformedInput = errors.New("malformed numeric input")
	// ErrNegativeValue is returned for a negative amount where only nonnegative values are valid
	ErrNegativeValue = errors.New("negative value")
	// ErrOverflow is returned when a value does not fit in a 256-bit word
	ErrOverflow = errors.New("value overflows 256 bits")
	// ErrEmptyEstimates is returned when the fee tier list is too short to pick a default
	ErrEmptyEstimates = errors.New("not enough fee tier estimates")
	// ErrRateUnavailable is returned when the conversion rate is missing or zero
	ErrRateUnavailable = errors.New("conversion rate unavailable")
	// ErrInsufficientBalance is returned when the balance cannot cover amount plus gas
	ErrInsufficientBalance = errors.New("insufficient balance")
)
