package ports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// CachingSearcher serves fresh results from a ProductCache and
// falls through to the wrapped searcher otherwise
type CachingSearcher struct {
	next  ProductSearcher
	cache domain.ProductCache
	ttl   time.Duration
	now   func() time.Time
}

// NewCachingSearcher wraps next with a read-through cache
func NewCachingSearcher(next ProductSearcher, cache domain.ProductCache, ttl time.Duration) *CachingSearcher {
	return &CachingSearcher{
		next:  next,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Search returns cached products when fresh, otherwise searches and stores them.
// Cache failures are logged and never fail the search.
func (s *CachingSearcher) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}

	cached, err := s.cache.GetProducts(ctx, keyword)
	switch {
	case err == nil && s.now().Sub(cached.FetchedAt) < s.ttl:
		log.Debug().Str("keyword", keyword).Msg("product cache hit")
		return cached.Products, nil
	case err != nil && !errors.Is(err, domain.ErrCacheMiss):
		log.Warn().Err(err).Str("keyword", keyword).Msg("product cache read failed")
	}

	products, err := s.next.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SaveProducts(ctx, keyword, products, s.now()); err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("product cache write failed")
	}

	return products, nil
}
