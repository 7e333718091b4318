// Package pricing resolves session volumes to flat monthly tier prices.
// Catalogs are immutable once built and safe for concurrent use.
package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

// Catalog is a validated tier table.
type Catalog struct {
	table  types.TierTable
	source string
	hash   string
}

// NewCatalog validates table and returns a catalog over a private copy of it.
func NewCatalog(table types.TierTable, source string) (*Catalog, error) {
	if err := table.Validate(); err != nil {
		return nil, errors.Pricing("invalid tier table from "+source, err)
	}
	if table.Currency == "" {
		table.Currency = types.CurrencyUSD
	}

	tiers := make([]types.PricingTier, len(table.Tiers))
	for i, tier := range table.Tiers {
		if tier.MonthlyPriceUSD != nil {
			tier.MonthlyPriceUSD = types.Price(*tier.MonthlyPriceUSD)
		}
		tiers[i] = tier
	}
	table.Tiers = tiers

	// The table holds only plain values, so encoding cannot fail.
	data, _ := json.Marshal(table)
	sum := sha256.Sum256(data)

	return &Catalog{table: table, source: source, hash: hex.EncodeToString(sum[:])}, nil
}

// DefaultCatalog returns the canonical TRACEFLOW tier table.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

var defaultCatalog = mustCatalog(types.TierTable{
	Currency: types.CurrencyUSD,
	Tiers: []types.PricingTier{
		{Name: "starter", MaxSessions: 100_000, MonthlyPriceUSD: types.Price(499)},
		{Name: "growth", MaxSessions: 250_000, MonthlyPriceUSD: types.Price(999)},
		{Name: "scale", MaxSessions: 500_000, MonthlyPriceUSD: types.Price(1_799)},
		{Name: "business", MaxSessions: 1_000_000, MonthlyPriceUSD: types.Price(2_999)},
		{Name: "enterprise", MaxSessions: 2_500_000, MonthlyPriceUSD: types.Price(5_999)},
		{Name: "enterprise-plus", MaxSessions: 5_000_000, MonthlyPriceUSD: types.Price(9_999)},
	},
	Bounds: types.SessionBounds{Min: 10_000, Max: 5_000_000},
}, "builtin")

func mustCatalog(table types.TierTable, source string) *Catalog {
	c, err := NewCatalog(table, source)
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve returns the quote for a monthly session volume. The first tier whose
// threshold is >= sessions applies, so a threshold belongs to its own tier.
// Volumes above every threshold resolve to a custom quote. Only negative
// volumes are rejected.
func (c *Catalog) Resolve(sessions int64) (types.TierQuote, error) {
	if sessions < 0 {
		return types.TierQuote{}, errors.InvalidField("monthly_sessions", sessions, "must be non-negative")
	}

	tiers := c.table.Tiers
	i := sort.Search(len(tiers), func(i int) bool {
		return sessions <= tiers[i].MaxSessions
	})

	quote := types.TierQuote{Sessions: sessions}
	if i == len(tiers) {
		quote.Custom = true
		return quote, nil
	}

	tier := tiers[i]
	quote.Tier = &tier
	if tier.IsCustom() {
		quote.Custom = true
		return quote, nil
	}
	quote.MonthlyPriceUSD = *tier.MonthlyPriceUSD
	return quote, nil
}

// Table returns a copy of the tier table
func (c *Catalog) Table() types.TierTable {
	table := c.table
	table.Tiers = make([]types.PricingTier, len(c.table.Tiers))
	for i, tier := range c.table.Tiers {
		if tier.MonthlyPriceUSD != nil {
			tier.MonthlyPriceUSD = types.Price(*tier.MonthlyPriceUSD)
		}
		table.Tiers[i] = tier
	}
	return table
}

// Bounds returns the calculator session bounds
func (c *Catalog) Bounds() types.SessionBounds {
	return c.table.Bounds
}

// Currency returns the price currency
func (c *Catalog) Currency() types.Currency {
	return c.table.Currency
}

// Hash is the SHA-256 of the table content. Two catalogs with the same
// tiers, bounds and currency share a hash whatever their source.
func (c *Catalog) Hash() string {
	return c.hash
}

// Source describes where the catalog was loaded from
func (c *Catalog) Source() string {
	return c.source
}
