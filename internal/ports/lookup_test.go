package ports

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/adapters/mock"
	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

func testPlants(names ...string) []domain.Plant {
	plants := make([]domain.Plant, len(names))
	for i, name := range names {
		plants[i] = domain.Plant{Name: name, Slug: name, Sunlight: 3}
	}
	return plants
}

func TestProductLookup_DeliversInOrder(t *testing.T) {
	fake := mock.NewFakeSearcher(3)
	lookup := NewProductLookup(fake, 0)

	var got []domain.PlantProducts
	err := lookup.Run(context.Background(), testPlants("Pachira", "Monstera", "Pothos"), func(r domain.PlantProducts) {
		got = append(got, r)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i, name := range []string{"Pachira", "Monstera", "Pothos"} {
		if got[i].Plant.Name != name {
			t.Errorf("result %d: expected %s, got %s", i, name, got[i].Plant.Name)
		}
		if got[i].Keyword != "houseplant "+name {
			t.Errorf("result %d: unexpected keyword %q", i, got[i].Keyword)
		}
		if len(got[i].Products) != 3 {
			t.Errorf("result %d: expected 3 products, got %d", i, len(got[i].Products))
		}
	}
}

func TestProductLookup_FailureDegradesToEmpty(t *testing.T) {
	fake := mock.NewFakeSearcher(2)
	fake.FailOn("houseplant Monstera", domain.ErrSearchUnavailable)
	lookup := NewProductLookup(fake, 0)

	var got []domain.PlantProducts
	err := lookup.Run(context.Background(), testPlants("Pachira", "Monstera", "Pothos"), func(r domain.PlantProducts) {
		got = append(got, r)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected every plant to be delivered, got %d", len(got))
	}
	failed := got[1]
	if !errors.Is(failed.Err, domain.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got %v", failed.Err)
	}
	if failed.Products == nil || len(failed.Products) != 0 {
		t.Errorf("expected empty non-nil products, got %v", failed.Products)
	}
	if len(got[2].Products) != 2 {
		t.Errorf("expected lookup to continue after failure, got %d products", len(got[2].Products))
	}
}

func TestProductLookup_PacesRequests(t *testing.T) {
	fake := mock.NewFakeSearcher(1)
	delay := 30 * time.Millisecond
	lookup := NewProductLookup(fake, delay)

	start := time.Now()
	err := lookup.Run(context.Background(), testPlants("A", "B", "C"), func(domain.PlantProducts) {})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Two pauses between three plants, none after the last
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("expected at least %v between requests, took %v", 2*delay, elapsed)
	}
}

func TestProductLookup_StopsOnCancel(t *testing.T) {
	fake := mock.NewFakeSearcher(1)
	lookup := NewProductLookup(fake, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	var got []domain.PlantProducts
	done := make(chan error, 1)
	go func() {
		done <- lookup.Run(ctx, testPlants("A", "B"), func(r domain.PlantProducts) {
			got = append(got, r)
			cancel()
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	if len(got) != 1 {
		t.Errorf("expected 1 delivery before cancel, got %d", len(got))
	}
}

func TestLookupSession_SupersededRunIsDropped(t *testing.T) {
	fake := mock.NewFakeSearcher(1).WithLatency(20 * time.Millisecond)
	session := NewLookupSession(NewProductLookup(fake, 50*time.Millisecond))
	defer session.Stop()

	var mu sync.Mutex
	delivered := map[uint64][]string{}
	deliver := func(gen uint64, r domain.PlantProducts) {
		mu.Lock()
		defer mu.Unlock()
		delivered[gen] = append(delivered[gen], r.Plant.Name)
	}

	first := session.Start(context.Background(), testPlants("Old1", "Old2", "Old3"), deliver)
	time.Sleep(30 * time.Millisecond)
	second := session.Start(context.Background(), testPlants("New1", "New2"), deliver)
	session.Wait()

	if second != first+1 {
		t.Errorf("expected generation %d, got %d", first+1, second)
	}
	if session.Current() != second {
		t.Errorf("expected current generation %d, got %d", second, session.Current())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(delivered[first]) > 1 {
		t.Errorf("superseded run kept delivering: %v", delivered[first])
	}
	if got := delivered[second]; len(got) != 2 || got[0] != "New1" || got[1] != "New2" {
		t.Errorf("unexpected deliveries for current run: %v", got)
	}
}

func TestLookupSession_StopDropsPending(t *testing.T) {
	fake := mock.NewFakeSearcher(1).WithLatency(50 * time.Millisecond)
	session := NewLookupSession(NewProductLookup(fake, 0))

	var mu sync.Mutex
	count := 0
	session.Start(context.Background(), testPlants("A", "B", "C"), func(uint64, domain.PlantProducts) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	session.Stop()

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("expected no deliveries after Stop, got %d", count)
	}
}

func TestLookupSession_CancelReturnsImmediately(t *testing.T) {
	fake := mock.NewFakeSearcher(1).WithLatency(time.Hour)
	session := NewLookupSession(NewProductLookup(fake, 0))

	gen := session.Start(context.Background(), testPlants("A"), func(uint64, domain.PlantProducts) {
		t.Error("cancelled run must not deliver")
	})

	start := time.Now()
	session.Cancel()
	if time.Since(start) > time.Second {
		t.Error("Cancel should not wait for the run")
	}
	if session.Current() == gen {
		t.Error("expected Cancel to advance the generation")
	}
	session.Stop()
}
