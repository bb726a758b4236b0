package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

func TestFakeSearcher_Deterministic(t *testing.T) {
	s := NewFakeSearcher(3)

	products, err := s.Search(context.Background(), "houseplant Pachira")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].Name != "houseplant Pachira #1" {
		t.Errorf("unexpected name %q", products[0].Name)
	}
	if products[2].Price != 3000 {
		t.Errorf("expected price 3000, got %d", products[2].Price)
	}
	if got := s.Calls(); len(got) != 1 || got[0] != "houseplant Pachira" {
		t.Errorf("unexpected calls %v", got)
	}
}

func TestFakeSearcher_FailOn(t *testing.T) {
	s := NewFakeSearcher(1)
	s.FailOn("houseplant Ivy", domain.ErrSearchUnavailable)

	if _, err := s.Search(context.Background(), "houseplant Ivy"); !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", err)
	}
	if _, err := s.Search(context.Background(), "houseplant Pothos"); err != nil {
		t.Errorf("expected other keywords to succeed, got %v", err)
	}
}

func TestFakeSearcher_LatencyHonorsContext(t *testing.T) {
	s := NewFakeSearcher(1).WithLatency(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := s.Search(ctx, "houseplant Pachira"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
