package store

import (
	"fmt"

	"scanner-rag/internal/config"
)

// FromConfig builds the configured store backend.
func FromConfig(cfg *config.Config) (VectorStore, error) {
	switch cfg.Store.Backend {
	case "supabase":
		return NewSupabaseStore(&cfg.Database)
	case "chromem":
		return NewChromemStore(cfg.Store.Path, cfg.Store.Collection, false)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
