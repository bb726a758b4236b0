package ports

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

// ProductLookup fetches products for each recommended plant in turn,
// pausing between requests to respect the search API's rate limit
type ProductLookup struct {
	searcher ProductSearcher
	delay    time.Duration
}

// NewProductLookup creates a lookup that waits delay between searches
func NewProductLookup(searcher ProductSearcher, delay time.Duration) *ProductLookup {
	return &ProductLookup{
		searcher: searcher,
		delay:    delay,
	}
}

// Run searches once per plant, in order, and hands every result to deliver
// as soon as it arrives. A failed search is delivered with no products and
// never stops the remaining plants. Run returns early when ctx ends.
func (l *ProductLookup) Run(ctx context.Context, plants []domain.Plant, deliver func(domain.PlantProducts)) error {
	for i, plant := range plants {
		if err := ctx.Err(); err != nil {
			return err
		}

		keyword := plant.Keyword()
		result := domain.PlantProducts{
			Plant:    plant,
			Keyword:  keyword,
			Products: []domain.Product{},
		}

		products, err := l.searcher.Search(ctx, keyword)
		if err != nil {
			log.Error().Err(err).Str("plant", plant.Name).Str("keyword", keyword).Msg("product search failed")
			result.Err = err
		} else if products != nil {
			result.Products = products
		}

		// A superseded run must not deliver anything
		if ctx.Err() != nil {
			return ctx.Err()
		}
		deliver(result)

		if i < len(plants)-1 && l.delay > 0 {
			timer := time.NewTimer(l.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil
}

// LookupSession runs one ProductLookup at a time on behalf of a single user.
// Starting a new run cancels the previous one, and results belonging to a
// superseded run are dropped instead of being delivered. deliver is called
// without the session lock held; a result racing with Start still carries
// its generation so receivers can compare it against Current.
type LookupSession struct {
	lookup *ProductLookup

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLookupSession creates an idle session
func NewLookupSession(lookup *ProductLookup) *LookupSession {
	return &LookupSession{lookup: lookup}
}

// Start cancels any running lookup and begins a new one in the background.
// It returns the generation number of the new run.
func (s *LookupSession) Start(ctx context.Context, plants []domain.Plant, deliver func(gen uint64, result domain.PlantProducts)) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	s.gen++
	gen := s.gen
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer cancel()

		err := s.lookup.Run(runCtx, plants, func(result domain.PlantProducts) {
			if s.Current() != gen {
				return
			}
			deliver(gen, result)
		})
		if err != nil {
			log.Debug().Err(err).Uint64("generation", gen).Msg("product lookup stopped")
		}
	}()

	return gen
}

// Current returns the generation of the most recent run
func (s *LookupSession) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Cancel supersedes the running lookup without waiting for it.
// Nothing more is delivered for it once Cancel returns.
func (s *LookupSession) Cancel() {
	s.cancelRun()
}

// Stop cancels the running lookup and waits for it to exit
func (s *LookupSession) Stop() {
	if done := s.cancelRun(); done != nil {
		<-done
	}
}

func (s *LookupSession) cancelRun() <-chan struct{} {
	s.mu.Lock()
	s.gen++
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return done
}

// Wait blocks until the most recent run has finished
func (s *LookupSession) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}
