package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// ProductCache implements domain.ProductCache with in-memory storage
// This is perfect for development - no database setup needed
type ProductCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.CachedProducts
}

// NewProductCache creates an empty in-memory cache
func NewProductCache() *ProductCache {
	return &ProductCache{
		entries: make(map[string]*domain.CachedProducts),
	}
}

// SaveProducts stores a copy of products under keyword
func (c *ProductCache) SaveProducts(ctx context.Context, keyword string, products []domain.Product, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[keyword] = &domain.CachedProducts{
		Keyword:   keyword,
		Products:  slices.Clone(products),
		FetchedAt: fetchedAt,
	}
	return nil
}

// GetProducts returns the cached entry for keyword
func (c *ProductCache) GetProducts(ctx context.Context, keyword string) (*domain.CachedProducts, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[keyword]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	return &domain.CachedProducts{
		Keyword:   entry.Keyword,
		Products:  slices.Clone(entry.Products),
		FetchedAt: entry.FetchedAt,
	}, nil
}

// DeleteStale removes entries fetched before now-olderThan
func (c *ProductCache) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	var removed int64
	for keyword, entry := range c.entries {
		if entry.FetchedAt.Before(cutoff) {
			delete(c.entries, keyword)
			removed++
		}
	}

	return removed, nil
}
