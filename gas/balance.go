package gas

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Draft is the pending transaction: the value being sent, separate from gas cost,
// and the rate used to value it in the display currency.
type Draft struct {
	Amount         *big.Int
	ConversionRate decimal.Decimal
}

// CheckBalance reports whether balance covers amount + gasTotal. Both sides are valued in
// the conversion currency at the same rate. A zero or negative rate fails closed with
// ErrRateUnavailable.
func CheckBalance(amount, gasTotal, balance *big.Int, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("%w: rate %s", ErrRateUnavailable, rate.String())
	}
	for _, v := range []*big.Int{amount, gasTotal, balance} {
		if v == nil {
			return fmt.Errorf("%w: missing amount", ErrMalformedInput)
		}
		if v.Sign() < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeValue, v.String())
		}
	}

	required := new(big.Int).Add(amount, gasTotal)
	requiredValue := decimal.NewFromBigInt(required, 0).Mul(rate)
	balanceValue := decimal.NewFromBigInt(balance, 0).Mul(rate)
	if balanceValue.LessThan(requiredValue) {
		return fmt.Errorf("%w: need %s wei, have %s wei", ErrInsufficientBalance, required.String(), balance.String())
	}
	return nil
}

// IsBalanceSufficient is CheckBalance as a verdict. Any error, including an unknown rate,
// counts as insufficient.
func IsBalanceSufficient(amount, gasTotal, balance *big.Int, rate decimal.Decimal) bool {
	return CheckBalance(amount, gasTotal, balance, rate) == nil
}
