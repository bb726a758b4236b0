package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// timeLayout is how fetched_at is stored; always UTC so it sorts as text
const timeLayout = "2006-01-02 15:04:05"

// ProductCache implements domain.ProductCache with SQLite
type ProductCache struct {
	db *sql.DB
}

// NewProductCache opens (or creates) a SQLite-backed cache
func NewProductCache(dbPath string) (*ProductCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table if not exists
	schema := `
	CREATE TABLE IF NOT EXISTS product_cache (
		keyword TEXT PRIMARY KEY,
		products TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fetched_at ON product_cache(fetched_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ProductCache{db: db}, nil
}

// SaveProducts upserts the products for keyword
func (c *ProductCache) SaveProducts(ctx context.Context, keyword string, products []domain.Product, fetchedAt time.Time) error {
	if products == nil {
		products = []domain.Product{}
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}

	query := `
		INSERT INTO product_cache (keyword, products, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(keyword) DO UPDATE SET products = excluded.products, fetched_at = excluded.fetched_at
	`

	_, err = c.db.ExecContext(ctx, query, keyword, string(payload), fetchedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}

	return nil
}

// GetProducts returns the cached entry for keyword
func (c *ProductCache) GetProducts(ctx context.Context, keyword string) (*domain.CachedProducts, error) {
	query := `SELECT products, fetched_at FROM product_cache WHERE keyword = ?`

	var payload, fetchedAt string
	err := c.db.QueryRowContext(ctx, query, keyword).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	entry := &domain.CachedProducts{Keyword: keyword}
	if err := json.Unmarshal([]byte(payload), &entry.Products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	entry.FetchedAt, err = time.Parse(timeLayout, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}

	return entry, nil
}

// DeleteStale removes entries fetched more than olderThan ago
func (c *ProductCache) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC()
	query := `DELETE FROM product_cache WHERE fetched_at < ?`

	result, err := c.db.ExecContext(ctx, query, cutoff.Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale products: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}

	return removed, nil
}

// Close closes the database connection
func (c *ProductCache) Close() error {
	return c.db.Close()
}
