package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

const canonicalHCL = `
currency = "usd"

bounds {
  min_sessions = 10000
  max_sessions = 5000000
}

tier "starter" {
  max_sessions      = 100000
  monthly_price_usd = 499
}

tier "growth" {
  max_sessions      = 250000
  monthly_price_usd = 999
}

tier "scale" {
  max_sessions      = 500000
  monthly_price_usd = 1799
}

tier "business" {
  max_sessions      = 1000000
  monthly_price_usd = 2999
}

tier "enterprise" {
  max_sessions      = 2500000
  monthly_price_usd = 5999
}

tier "enterprise-plus" {
  max_sessions      = 5000000
  monthly_price_usd = 9999
}
`

// TestParseCatalogMatchesBuiltin proves the HCL form of the canonical table
// decodes to exactly the built-in table
func TestParseCatalogMatchesBuiltin(t *testing.T) {
	catalog, err := ParseCatalog([]byte(canonicalHCL), "canonical.hcl")
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultCatalog().Table(), catalog.Table()); diff != "" {
		t.Errorf("catalog mismatch (-builtin +parsed):\n%s", diff)
	}
	assert.Equal(t, "canonical.hcl", catalog.Source())
}

// TestParseCatalogCustomTierAndDefaultBounds covers a trailing priceless tier
// and bounds derived from the tiers
func TestParseCatalogCustomTierAndDefaultBounds(t *testing.T) {
	src := `
tier "team" {
  max_sessions      = 50000
  monthly_price_usd = 199
}

tier "negotiated" {
  max_sessions = 1000000
}
`
	catalog, err := ParseCatalog([]byte(src), "custom.hcl")
	require.NoError(t, err)

	assert.Equal(t, types.SessionBounds{Min: 0, Max: 1_000_000}, catalog.Bounds())
	assert.Equal(t, types.CurrencyUSD, catalog.Currency())

	quote, err := catalog.Resolve(60_000)
	require.NoError(t, err)
	assert.True(t, quote.Custom)
	assert.Equal(t, "negotiated", quote.TierName())
}

// TestParseCatalogJSONSyntax covers the HCL-JSON form
func TestParseCatalogJSONSyntax(t *testing.T) {
	src := `{
  "tier": {
    "solo": {"max_sessions": 1000, "monthly_price_usd": 19}
  }
}`
	catalog, err := ParseCatalog([]byte(src), "catalog.json")
	require.NoError(t, err)

	quote, err := catalog.Resolve(1_000)
	require.NoError(t, err)
	assert.Equal(t, int64(19), quote.MonthlyPriceUSD)
}

// TestParseCatalogErrors proves syntax, schema and invariant failures are typed
func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{
			name:    "syntax error",
			src:     `tier "a" {`,
			errType: errors.TypeParsing,
		},
		{
			name:    "missing required attribute",
			src:     `tier "a" { monthly_price_usd = 10 }`,
			errType: errors.TypeParsing,
		},
		{
			name:    "unknown attribute",
			src: `
tier "a" {
  max_sessions = 10
  discount     = 5
}`,
			errType: errors.TypeParsing,
		},
		{
			name: "decreasing thresholds",
			src: `
tier "a" {
  max_sessions      = 200
  monthly_price_usd = 1
}
tier "b" {
  max_sessions      = 100
  monthly_price_usd = 2
}`,
			errType: errors.TypePricing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

// TestLoadCatalogFile reads from disk and reports missing files as config errors
func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.hcl")
	require.NoError(t, os.WriteFile(path, []byte(canonicalHCL), 0o644))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Table().Tiers, 6)

	_, err = LoadCatalogFile(filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
