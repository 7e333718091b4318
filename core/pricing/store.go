package pricing

import (
	"sync/atomic"

	"traceflow-pricing/core/types"
)

// Store holds the active catalog and lets it be replaced while readers
// keep resolving. Each Resolve sees exactly one catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore creates a store serving initial
func NewStore(initial *Catalog) *Store {
	if initial == nil {
		initial = DefaultCatalog()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Load returns the active catalog
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap installs next and returns the previous catalog
func (s *Store) Swap(next *Catalog) *Catalog {
	return s.current.Swap(next)
}

// Resolve resolves against the active catalog
func (s *Store) Resolve(sessions int64) (types.TierQuote, error) {
	return s.Load().Resolve(sessions)
}
