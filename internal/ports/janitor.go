package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// CacheJanitor periodically removes stale product cache entries
type CacheJanitor struct {
	cache    domain.ProductCache
	interval time.Duration
	maxAge   time.Duration
}

// NewCacheJanitor creates a janitor that prunes entries older than maxAge
func NewCacheJanitor(cache domain.ProductCache, interval, maxAge time.Duration) *CacheJanitor {
	return &CacheJanitor{
		cache:    cache,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start prunes on every tick.
// This runs in a goroutine until context is cancelled
func (j *CacheJanitor) Start(ctx context.Context) {
	log.Info().
		Dur("interval", j.interval).
		Dur("max_age", j.maxAge).
		Msg("starting product cache janitor")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.pruneOnce(ctx)

		case <-ctx.Done():
			log.Info().Msg("stopping product cache janitor")
			return
		}
	}
}

// pruneOnce deletes stale entries and logs the outcome
func (j *CacheJanitor) pruneOnce(ctx context.Context) {
	removed, err := j.cache.DeleteStale(ctx, j.maxAge)
	if err != nil {
		log.Error().Err(err).Msg("failed to prune product cache")
		return
	}

	log.Info().Int64("removed", removed).Msg("pruned product cache")
}
