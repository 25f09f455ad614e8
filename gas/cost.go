package gas

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// CalcGasTotal returns limit * price in wei. Both the price and the product must fit
// in a 256-bit word, anything larger fails with ErrOverflow instead of wrapping.
func CalcGasTotal(limit uint64, price *big.Int) (*big.Int, error) {
	if price == nil {
		return nil, fmt.Errorf("%w: gas price is not set", ErrMalformedInput)
	}
	if price.Sign() < 0 {
		return nil, fmt.Errorf("%w: gas price is below zero", ErrNegativeValue)
	}
	p, overflow := uint256.FromBig(price)
	if overflow {
		return nil, fmt.Errorf("%w: gas price of %d bits", ErrOverflow, price.BitLen())
	}
	total, overflow := new(uint256.Int).MulOverflow(p, uint256.NewInt(limit))
	if overflow {
		return nil, fmt.Errorf("%w: %d * %s", ErrOverflow, limit, p.Hex())
	}
	return total.ToBig(), nil
}

// CalcGasTotalHex is CalcGasTotal over hex encoded limit and price, as the send form stores them
func CalcGasTotalHex(limitHex, priceHex string) (string, error) {
	limit, err := ParseHexWei(limitHex)
	if err != nil {
		return "", fmt.Errorf("invalid gas limit: %w", err)
	}
	if !limit.IsUint64() {
		return "", fmt.Errorf("%w: gas limit %s", ErrOverflow, limitHex)
	}
	price, err := ParseHexWei(priceHex)
	if err != nil {
		return "", fmt.Errorf("invalid gas price: %w", err)
	}
	total, err := CalcGasTotal(limit.Uint64(), price)
	if err != nil {
		return "", err
	}
	return EncodeHex(total), nil
}
