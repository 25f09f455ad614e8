package gas

import (
	"fmt"
	"math/big"
	"sync"
)

// Settings is an immutable snapshot of a Configuration. Total always equals Price * Limit.
type Settings struct {
	Price  *big.Int
	Limit  uint64
	Total  *big.Int
	Custom bool // price was set by hand rather than reset to the recommended tier
}

// PriceGwei renders the gas price in decimal gwei
func (s Settings) PriceGwei() string {
	return WeiToDecGwei(s.Price)
}

// PriceHex renders the gas price as hex wei
func (s Settings) PriceHex() string {
	return EncodeHex(s.Price)
}

// LimitHex renders the gas limit as hex
func (s Settings) LimitHex() string {
	return EncodeHex(new(big.Int).SetUint64(s.Limit))
}

// TotalHex renders the gas total as hex wei
func (s Settings) TotalHex() string {
	return EncodeHex(s.Total)
}

// TotalGwei renders the gas total in decimal gwei
func (s Settings) TotalGwei() string {
	return WeiToDecGwei(s.Total)
}

// ActiveTier returns the tier matching the snapshot price, if any
func (s Settings) ActiveTier(tiers []FeeTier) (int, bool) {
	return SelectActiveTier(tiers, s.Price)
}

// Sufficient reports whether balance covers the draft amount plus the snapshot total
func (s Settings) Sufficient(d Draft, balance *big.Int) bool {
	return IsBalanceSufficient(d.Amount, s.Total, balance, d.ConversionRate)
}

// Configuration holds the gas price, limit and total of one transaction draft.
// Transitions are serialized and recompute the total before releasing the lock, so
// readers never see a total that disagrees with price and limit.
type Configuration struct {
	mu       sync.RWMutex
	settings Settings
}

// NewConfiguration starts a configuration at the recommended tier price with the given limit
func NewConfiguration(tiers []FeeTier, limit uint64) (*Configuration, error) {
	tier, err := RecommendedTier(tiers)
	if err != nil {
		return nil, err
	}
	s, err := settingsFor(tier.PriceWei, limit, false)
	if err != nil {
		return nil, err
	}
	return &Configuration{settings: s}, nil
}

// settingsFor builds a consistent Settings value; inputs are copied
func settingsFor(price *big.Int, limit uint64, custom bool) (Settings, error) {
	total, err := CalcGasTotal(limit, price)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Price:  new(big.Int).Set(price),
		Limit:  limit,
		Total:  total,
		Custom: custom,
	}, nil
}

func (s Settings) clone() Settings {
	s.Price = new(big.Int).Set(s.Price)
	s.Total = new(big.Int).Set(s.Total)
	return s
}

// Snapshot returns a copy of the current settings
func (c *Configuration) Snapshot() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings.clone()
}

// SetPrice sets the gas price in wei and recomputes the total with the current limit.
// On error the configuration is unchanged.
func (c *Configuration) SetPrice(price *big.Int) (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := settingsFor(price, c.settings.Limit, true)
	if err != nil {
		return c.settings.clone(), fmt.Errorf("failed to set gas price: %w", err)
	}
	c.settings = s
	return s.clone(), nil
}

// SetPriceGwei is SetPrice for a decimal gwei string typed by the user
func (c *Configuration) SetPriceGwei(dec string) (Settings, error) {
	price, err := DecGweiToWei(dec)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("failed to set gas price: %w", err)
	}
	return c.SetPrice(price)
}

// SetLimit sets the gas limit and recomputes the total with the current price.
// On error the configuration is unchanged.
func (c *Configuration) SetLimit(limit uint64) (Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := settingsFor(c.settings.Price, limit, c.settings.Custom)
	if err != nil {
		return c.settings.clone(), fmt.Errorf("failed to set gas limit: %w", err)
	}
	c.settings = s
	return s.clone(), nil
}

// SetLimitDecimal is SetLimit for a decimal integer string typed by the user
func (c *Configuration) SetLimitDecimal(dec string) (Settings, error) {
	limit, err := ParseDecimalInt(dec)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("failed to set gas limit: %w", err)
	}
	if !limit.IsUint64() {
		return c.Snapshot(), fmt.Errorf("failed to set gas limit: %w: %s", ErrOverflow, dec)
	}
	return c.SetLimit(limit.Uint64())
}

// ResetToRecommended moves the price back to the recommended tier and clears the custom marker
func (c *Configuration) ResetToRecommended(tiers []FeeTier) (Settings, error) {
	tier, err := RecommendedTier(tiers)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("failed to reset gas price: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := settingsFor(tier.PriceWei, c.settings.Limit, false)
	if err != nil {
		return c.settings.clone(), fmt.Errorf("failed to reset gas price: %w", err)
	}
	c.settings = s
	return s.clone(), nil
}
