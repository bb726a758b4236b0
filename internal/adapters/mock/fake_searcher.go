package mock

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// FakeSearcher simulates the product search API for development and tests
// This implements the ports.ProductSearcher interface
type FakeSearcher struct {
	perKeyword int
	latency    time.Duration

	mu      sync.Mutex
	failing map[string]error
	calls   []string
}

// NewFakeSearcher creates a searcher returning perKeyword products per search
func NewFakeSearcher(perKeyword int) *FakeSearcher {
	return &FakeSearcher{
		perKeyword: perKeyword,
		failing:    make(map[string]error),
	}
}

// WithLatency makes every search take d, like a real network call
func (s *FakeSearcher) WithLatency(d time.Duration) *FakeSearcher {
	s.latency = d
	return s
}

// FailOn makes searches for keyword return err
func (s *FakeSearcher) FailOn(keyword string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[keyword] = err
}

// Calls returns the keywords searched so far, in order
func (s *FakeSearcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Search returns deterministic products derived from the keyword
func (s *FakeSearcher) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	s.mu.Lock()
	s.calls = append(s.calls, keyword)
	failErr := s.failing[keyword]
	s.mu.Unlock()

	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.latency):
		}
	}

	if failErr != nil {
		return nil, failErr
	}

	products := make([]domain.Product, s.perKeyword)
	for i := range products {
		itemURL := fmt.Sprintf("https://shop.example.com/items/%s/%d", url.PathEscape(keyword), i+1)
		products[i] = domain.Product{
			Name:         fmt.Sprintf("%s #%d", keyword, i+1),
			Price:        1000 * (i + 1),
			URL:          itemURL,
			AffiliateURL: itemURL,
			ImageURL:     fmt.Sprintf("https://shop.example.com/images/%d.jpg", i+1),
			ShopName:     "Greenhouse Test Shop",
		}
	}
	return products, nil
}
