package analyzer

import "github.com/fernwood-labs/carbontrack/internal/store"

// Analyzer computes reduction opportunities and emission statistics over the
// activity database. All of its methods are read-only; it never mutates the
// underlying tables, so a single Analyzer is safe to share between callers.
type Analyzer struct {
	store *store.Store
}

// New creates a new Analyzer instance with the given store.
func New(store *store.Store) *Analyzer {
	return &Analyzer{store: store}
}
