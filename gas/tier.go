package gas

import (
	"fmt"
	"math/big"
)

// DefaultTier is the position of the recommended ("medium") tier in an estimate list
const DefaultTier = 1

// FeeTier is one externally supplied gas price recommendation. Lists are ordered by
// ascending price (low, medium, high) and are not modified here.
type FeeTier struct {
	Label    string
	PriceWei *big.Int
}

// RenderableTier is a FeeTier formatted for display
type RenderableTier struct {
	Label     string
	PriceGwei string
	PriceHex  string
}

// SelectActiveTier returns the index of the first tier priced exactly at price.
// ok is false when no tier matches, meaning a custom price is in effect.
func SelectActiveTier(tiers []FeeTier, price *big.Int) (index int, ok bool) {
	if price == nil {
		return -1, false
	}
	for i, t := range tiers {
		if t.PriceWei != nil && t.PriceWei.Cmp(price) == 0 {
			return i, true
		}
	}
	return -1, false
}

// DefaultTierIndex returns the recommended tier position, which requires at least two tiers
func DefaultTierIndex(tiers []FeeTier) (int, error) {
	if len(tiers) <= DefaultTier {
		return 0, fmt.Errorf("%w: got %d, need at least %d", ErrEmptyEstimates, len(tiers), DefaultTier+1)
	}
	return DefaultTier, nil
}

// RecommendedTier returns the tier at DefaultTierIndex
func RecommendedTier(tiers []FeeTier) (FeeTier, error) {
	i, err := DefaultTierIndex(tiers)
	if err != nil {
		return FeeTier{}, err
	}
	t := tiers[i]
	if t.PriceWei == nil {
		return FeeTier{}, fmt.Errorf("%w: tier %q has no price", ErrMalformedInput, t.Label)
	}
	if t.PriceWei.Sign() < 0 {
		return FeeTier{}, fmt.Errorf("%w: tier %q price %s", ErrNegativeValue, t.Label, t.PriceWei.String())
	}
	return t, nil
}

// RenderTiers formats every tier price in gwei and hex, keeping positions aligned with tiers.
// A tier without a price renders with empty price fields.
func RenderTiers(tiers []FeeTier) []RenderableTier {
	out := make([]RenderableTier, len(tiers))
	for i, t := range tiers {
		out[i].Label = t.Label
		if t.PriceWei == nil {
			continue
		}
		out[i].PriceGwei = WeiToDecGwei(t.PriceWei)
		out[i].PriceHex = EncodeHex(t.PriceWei)
	}
	return out
}
