package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

func newTestCache(t *testing.T) *ProductCache {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	cache, err := NewProductCache(dbPath)
	if err != nil {
		t.Fatalf("failed to create SQLite cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func sampleProducts() []domain.Product {
	rating := 4.5
	return []domain.Product{
		{Name: "Pachira 7-inch pot", Price: 3980, URL: "https://item.example.com/1", ShopName: "Green Shop", ReviewAverage: &rating, ReviewCount: 12},
		{Name: "Pachira braided", Price: 5980, URL: "https://item.example.com/2", ShopName: "Leaf Store"},
	}
}

func TestSaveAndGetProducts(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	fetchedAt := time.Now().UTC().Truncate(time.Second)
	if err := cache.SaveProducts(ctx, "houseplant Pachira", sampleProducts(), fetchedAt); err != nil {
		t.Fatalf("SaveProducts failed: %v", err)
	}

	got, err := cache.GetProducts(ctx, "houseplant Pachira")
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}
	if len(got.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got.Products))
	}
	if got.Products[0].ReviewAverage == nil || *got.Products[0].ReviewAverage != 4.5 {
		t.Errorf("rating not preserved: %+v", got.Products[0])
	}
	if got.Products[1].ReviewAverage != nil {
		t.Errorf("expected missing rating to stay nil")
	}
	if !got.FetchedAt.Equal(fetchedAt) {
		t.Errorf("got fetched_at %v, want %v", got.FetchedAt, fetchedAt)
	}
}

func TestSaveProducts_Overwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	_ = cache.SaveProducts(ctx, "kw", sampleProducts(), time.Now())
	if err := cache.SaveProducts(ctx, "kw", nil, time.Now()); err != nil {
		t.Fatalf("SaveProducts failed: %v", err)
	}

	got, err := cache.GetProducts(ctx, "kw")
	if err != nil {
		t.Fatalf("GetProducts failed: %v", err)
	}
	if len(got.Products) != 0 {
		t.Errorf("expected overwritten entry to be empty, got %d products", len(got.Products))
	}
}

func TestGetProducts_Miss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.GetProducts(context.Background(), "nothing")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestDeleteStale(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	now := time.Now()
	_ = cache.SaveProducts(ctx, "old", sampleProducts(), now.Add(-48*time.Hour))
	_ = cache.SaveProducts(ctx, "recent", sampleProducts(), now.Add(-1*time.Hour))

	removed, err := cache.DeleteStale(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteStale failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed entry, got %d", removed)
	}

	// Old entry should be gone
	if _, err := cache.GetProducts(ctx, "old"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("expected old entry to be deleted, got err: %v", err)
	}

	// Recent entry should remain
	if _, err := cache.GetProducts(ctx, "recent"); err != nil {
		t.Errorf("expected recent entry to remain, got err: %v", err)
	}
}
