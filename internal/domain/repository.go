package domain

import (
	"context"
	"time"
)

// ProductCache stores product search results per keyword.
// This is a PORT - adapters (SQLite, Memory) implement it
type ProductCache interface {
	// SaveProducts replaces the cached result for keyword
	SaveProducts(ctx context.Context, keyword string, products []Product, fetchedAt time.Time) error

	// GetProducts returns the cached result for keyword, or ErrCacheMiss
	GetProducts(ctx context.Context, keyword string) (*CachedProducts, error)

	// DeleteStale removes entries fetched more than olderThan ago
	DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// PlantCatalog is the read-only, ordered plant list
type PlantCatalog interface {
	// All returns every plant in curated order
	All() []Plant

	// BySlug returns one plant, or ErrPlantNotFound
	BySlug(slug string) (Plant, error)
}
