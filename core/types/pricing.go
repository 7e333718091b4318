// Package types - Pricing tier types
package types

import "fmt"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// PricingTier is one bracket of the flat monthly price table.
type PricingTier struct {
	// Name is a stable identifier (e.g. "growth")
	Name string `json:"name"`

	// MaxSessions is the inclusive upper bound of monthly sessions
	MaxSessions int64 `json:"max_sessions"`

	// MonthlyPriceUSD is the flat monthly price; nil means a custom quote
	MonthlyPriceUSD *int64 `json:"monthly_price_usd"`
}

// IsCustom reports whether the tier requires a negotiated quote
func (t PricingTier) IsCustom() bool {
	return t.MonthlyPriceUSD == nil
}

// SessionBounds are the slider limits a caller clamps input to.
// They never clamp inside the calculator.
type SessionBounds struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether sessions lies within the bounds
func (b SessionBounds) Contains(sessions int64) bool {
	return sessions >= b.Min && sessions <= b.Max
}

// TierTable is an ordered, validated set of pricing tiers.
type TierTable struct {
	// Currency of every price in the table
	Currency Currency `json:"currency"`

	// Tiers ordered by ascending MaxSessions
	Tiers []PricingTier `json:"tiers"`

	// Bounds is the session range offered by the calculator UI
	Bounds SessionBounds `json:"bounds"`
}

// Validate checks the table invariants: at least one tier, non-negative
// strictly increasing thresholds, non-negative prices, and only the last
// tier may be custom.
func (t *TierTable) Validate() error {
	if len(t.Tiers) == 0 {
		return fmt.Errorf("tier table has no tiers")
	}

	var prev int64 = -1
	for i, tier := range t.Tiers {
		if tier.MaxSessions < 0 {
			return fmt.Errorf("tier %q: max_sessions must be non-negative, got %d", tier.Name, tier.MaxSessions)
		}
		if tier.MaxSessions <= prev {
			return fmt.Errorf("tier %q: max_sessions %d must exceed previous threshold %d", tier.Name, tier.MaxSessions, prev)
		}
		prev = tier.MaxSessions

		if tier.MonthlyPriceUSD == nil {
			if i != len(t.Tiers)-1 {
				return fmt.Errorf("tier %q: only the last tier may be custom", tier.Name)
			}
			continue
		}
		if *tier.MonthlyPriceUSD < 0 {
			return fmt.Errorf("tier %q: monthly price must be non-negative, got %d", tier.Name, *tier.MonthlyPriceUSD)
		}
	}

	if t.Bounds.Min < 0 || t.Bounds.Max < t.Bounds.Min {
		return fmt.Errorf("invalid session bounds [%d, %d]", t.Bounds.Min, t.Bounds.Max)
	}

	return nil
}

// TierQuote is the outcome of resolving a session volume against a table.
type TierQuote struct {
	// Sessions is the resolved volume
	Sessions int64 `json:"sessions"`

	// Tier is the matching bracket; nil when the volume exceeds every threshold
	Tier *PricingTier `json:"tier,omitempty"`

	// MonthlyPriceUSD is the flat price; zero when Custom
	MonthlyPriceUSD int64 `json:"monthly_price_usd"`

	// Custom is set when a negotiated quote is required
	Custom bool `json:"custom"`
}

// TierName returns the tier name or "custom" for volumes above every tier
func (q TierQuote) TierName() string {
	if q.Tier == nil {
		return "custom"
	}
	return q.Tier.Name
}

// Price returns a pointer to an int64, for building tables
func Price(usd int64) *int64 {
	return &usd
}
