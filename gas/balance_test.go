package gas

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsBalanceSufficient_Insufficient(t *testing.T) {
	ok := IsBalanceSufficient(big.NewInt(100), big.NewInt(420000000000000), big.NewInt(50), decimal.NewFromFloat(1.0))
	assert.False(t, ok)

	err := CheckBalance(big.NewInt(100), big.NewInt(420000000000000), big.NewInt(50), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestIsBalanceSufficient_ExactAndAbove(t *testing.T) {
	amount := big.NewInt(1_000_000)
	gasTotal := big.NewInt(420000000000000)
	exact := new(big.Int).Add(amount, gasTotal)
	rates := []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("3123.45"),
	}
	for _, rate := range rates {
		assert.True(t, IsBalanceSufficient(amount, gasTotal, exact, rate), rate.String())
		assert.True(t, IsBalanceSufficient(amount, gasTotal, new(big.Int).Add(exact, big.NewInt(1)), rate), rate.String())
		assert.False(t, IsBalanceSufficient(amount, gasTotal, new(big.Int).Sub(exact, big.NewInt(1)), rate), rate.String())
	}
}

func TestIsBalanceSufficient_LargeValues(t *testing.T) {
	// 2^70 wei is well past float64 integer precision
	amount := new(big.Int).Lsh(big.NewInt(1), 70)
	gasTotal := big.NewInt(1)
	balance := new(big.Int).Lsh(big.NewInt(1), 70)
	assert.False(t, IsBalanceSufficient(amount, gasTotal, balance, decimal.NewFromInt(1)))
	balance.Add(balance, big.NewInt(1))
	assert.True(t, IsBalanceSufficient(amount, gasTotal, balance, decimal.NewFromInt(1)))
}

func TestCheckBalance_RateUnavailable(t *testing.T) {
	amount, gasTotal, balance := big.NewInt(0), big.NewInt(0), big.NewInt(1_000_000)
	for _, rate := range []decimal.Decimal{decimal.Zero, {}, decimal.NewFromInt(-1)} {
		err := CheckBalance(amount, gasTotal, balance, rate)
		assert.ErrorIs(t, err, ErrRateUnavailable)
		assert.False(t, IsBalanceSufficient(amount, gasTotal, balance, rate))
	}
}

func TestCheckBalance_InvalidOperands(t *testing.T) {
	rate := decimal.NewFromInt(1)
	assert.ErrorIs(t, CheckBalance(nil, big.NewInt(1), big.NewInt(1), rate), ErrMalformedInput)
	assert.ErrorIs(t, CheckBalance(big.NewInt(1), big.NewInt(-1), big.NewInt(10), rate), ErrNegativeValue)
	assert.ErrorIs(t, CheckBalance(big.NewInt(1), big.NewInt(1), big.NewInt(-10), rate), ErrNegativeValue)
}
