// Package pricing - Tier resolution tests
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

// TestResolveCanonicalTable checks every threshold and the values around it
func TestResolveCanonicalTable(t *testing.T) {
	tests := []struct {
		name     string
		sessions int64
		tier     string
		price    int64
		custom   bool
	}{
		{name: "zero volume uses smallest tier", sessions: 0, tier: "starter", price: 499},
		{name: "inside starter", sessions: 42_000, tier: "starter", price: 499},
		{name: "starter threshold is inclusive", sessions: 100_000, tier: "starter", price: 499},
		{name: "one past starter", sessions: 100_001, tier: "growth", price: 999},
		{name: "growth threshold", sessions: 250_000, tier: "growth", price: 999},
		{name: "scale threshold", sessions: 500_000, tier: "scale", price: 1_799},
		{name: "business", sessions: 750_000, tier: "business", price: 2_999},
		{name: "business threshold", sessions: 1_000_000, tier: "business", price: 2_999},
		{name: "enterprise", sessions: 2_500_000, tier: "enterprise", price: 5_999},
		{name: "largest threshold", sessions: 5_000_000, tier: "enterprise-plus", price: 9_999},
		{name: "one past largest threshold", sessions: 5_000_001, tier: "custom", custom: true},
		{name: "far above", sessions: 6_000_000, tier: "custom", custom: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ResolveTier(tt.sessions)
			require.NoError(t, err)

			assert.Equal(t, tt.sessions, quote.Sessions)
			assert.Equal(t, tt.tier, quote.TierName())
			assert.Equal(t, tt.custom, quote.Custom)
			if tt.custom {
				assert.Nil(t, quote.Tier)
				assert.Zero(t, quote.MonthlyPriceUSD)
			} else {
				assert.Equal(t, tt.price, quote.MonthlyPriceUSD)
			}
		})
	}
}

// TestResolveIsMonotonic walks the whole priced range and checks the price never drops
func TestResolveIsMonotonic(t *testing.T) {
	catalog := DefaultCatalog()

	var prev int64
	for sessions := int64(0); sessions <= 5_000_000; sessions += 9_973 {
		quote, err := catalog.Resolve(sessions)
		require.NoError(t, err)
		require.False(t, quote.Custom, "sessions=%d", sessions)
		require.GreaterOrEqual(t, quote.MonthlyPriceUSD, prev, "price dropped at %d sessions", sessions)
		prev = quote.MonthlyPriceUSD
	}
}

// TestResolveRejectsNegativeVolume proves negative volumes are input errors, not tiers
func TestResolveRejectsNegativeVolume(t *testing.T) {
	_, err := ResolveTier(-1)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))

	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "monthly_sessions", e.Context["field"])
}

// TestResolveExplicitCustomTier covers a table whose last tier has no price
func TestResolveExplicitCustomTier(t *testing.T) {
	catalog, err := NewCatalog(types.TierTable{
		Tiers: []types.PricingTier{
			{Name: "small", MaxSessions: 1_000, MonthlyPriceUSD: types.Price(10)},
			{Name: "contact-us", MaxSessions: 10_000},
		},
	}, "test")
	require.NoError(t, err)

	quote, err := catalog.Resolve(5_000)
	require.NoError(t, err)
	assert.True(t, quote.Custom)
	require.NotNil(t, quote.Tier)
	assert.Equal(t, "contact-us", quote.TierName())

	quote, err = catalog.Resolve(50_000)
	require.NoError(t, err)
	assert.True(t, quote.Custom)
	assert.Equal(t, "custom", quote.TierName())

	assert.Equal(t, types.CurrencyUSD, catalog.Currency())
}

// TestNewCatalogRejectsBrokenTables proves invariant violations never become catalogs
func TestNewCatalogRejectsBrokenTables(t *testing.T) {
	tests := []struct {
		name  string
		tiers []types.PricingTier
	}{
		{name: "empty", tiers: nil},
		{
			name: "thresholds not increasing",
			tiers: []types.PricingTier{
				{Name: "a", MaxSessions: 100, MonthlyPriceUSD: types.Price(1)},
				{Name: "b", MaxSessions: 100, MonthlyPriceUSD: types.Price(2)},
			},
		},
		{
			name: "custom tier not last",
			tiers: []types.PricingTier{
				{Name: "a", MaxSessions: 100},
				{Name: "b", MaxSessions: 200, MonthlyPriceUSD: types.Price(2)},
			},
		},
		{
			name:  "negative price",
			tiers: []types.PricingTier{{Name: "a", MaxSessions: 100, MonthlyPriceUSD: types.Price(-5)}},
		},
		{
			name:  "negative threshold",
			tiers: []types.PricingTier{{Name: "a", MaxSessions: -1, MonthlyPriceUSD: types.Price(5)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(types.TierTable{Tiers: tt.tiers}, "test")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypePricing))
		})
	}
}

// TestCatalogIsolatedFromCaller proves mutating the input table after
// construction does not change resolution
func TestCatalogIsolatedFromCaller(t *testing.T) {
	price := int64(100)
	table := types.TierTable{Tiers: []types.PricingTier{{Name: "only", MaxSessions: 10, MonthlyPriceUSD: &price}}}

	catalog, err := NewCatalog(table, "test")
	require.NoError(t, err)

	price = 1
	table.Tiers[0].MaxSessions = 1

	quote, err := catalog.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, int64(100), quote.MonthlyPriceUSD)
	assert.False(t, quote.Custom)

	copied := catalog.Table()
	copied.Tiers[0].Name = "changed"
	assert.Equal(t, "only", catalog.Table().Tiers[0].Name)
}

// TestStoreSwap proves resolution follows the installed catalog
func TestStoreSwap(t *testing.T) {
	store := NewStore(nil)
	assert.Same(t, DefaultCatalog(), store.Load())

	next, err := NewCatalog(types.TierTable{
		Tiers: []types.PricingTier{{Name: "flat", MaxSessions: 10_000_000, MonthlyPriceUSD: types.Price(100)}},
	}, "test")
	require.NoError(t, err)

	prev := store.Swap(next)
	assert.Same(t, DefaultCatalog(), prev)

	quote, err := store.Resolve(6_000_000)
	require.NoError(t, err)
	assert.Equal(t, "flat", quote.TierName())
	assert.Equal(t, int64(100), quote.MonthlyPriceUSD)
}

// TestCatalogHashTracksContent proves the hash ignores the source and changes with any price
func TestCatalogHashTracksContent(t *testing.T) {
	table := DefaultCatalog().Table()

	same, err := NewCatalog(table, "copy.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Hash(), same.Hash())
	assert.Len(t, same.Hash(), 64)

	table.Tiers[2].MonthlyPriceUSD = types.Price(1_899)
	changed, err := NewCatalog(table, "builtin")
	require.NoError(t, err)
	assert.NotEqual(t, DefaultCatalog().Hash(), changed.Hash())
}
