package pricing

import (
	"traceflow-pricing/core/types"
)

// Resolver resolves session volumes to tier quotes
type Resolver interface {
	// Resolve returns the quote for a monthly session volume
	Resolve(sessions int64) (types.TierQuote, error)
}

var (
	_ Resolver = (*Catalog)(nil)
	_ Resolver = (*Store)(nil)
)

// ResolveTier resolves sessions against the canonical tier table.
func ResolveTier(sessions int64) (types.TierQuote, error) {
	return defaultCatalog.Resolve(sessions)
}
