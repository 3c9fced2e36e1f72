package cmd

import (
	"sync"
	"testing"

	"jobscout/pkg/models"
)

func TestWatcherRecordReportsOnlyFreshMatches(t *testing.T) {
	w := &watcher{seen: map[int]map[int]bool{}}

	fresh, first := w.record(7, []models.Listing{{ID: 1}, {ID: 2}})
	if !first {
		t.Fatal("first run should be the baseline")
	}
	if len(fresh) != 0 {
		t.Fatalf("baseline run reported %d fresh matches", len(fresh))
	}

	fresh, first = w.record(7, []models.Listing{{ID: 2}, {ID: 3}})
	if first {
		t.Fatal("second run should not be a baseline")
	}
	if len(fresh) != 1 || fresh[0].ID != 3 {
		t.Fatalf("expected only listing 3 as fresh, got %+v", fresh)
	}

	// A listing that dropped out and comes back counts as fresh again.
	fresh, _ = w.record(7, []models.Listing{{ID: 1}})
	if len(fresh) != 1 || fresh[0].ID != 1 {
		t.Fatalf("expected listing 1 to be fresh after dropping out, got %+v", fresh)
	}
}

func TestWatcherRecordTracksSearchesIndependently(t *testing.T) {
	w := &watcher{seen: map[int]map[int]bool{}}

	w.record(1, []models.Listing{{ID: 10}})
	w.record(2, []models.Listing{{ID: 10}})

	fresh, first := w.record(1, []models.Listing{{ID: 10}, {ID: 11}})
	if first || len(fresh) != 1 || fresh[0].ID != 11 {
		t.Fatalf("search 1 should only report listing 11, got first=%v fresh=%+v", first, fresh)
	}
}

func TestWatcherRecordConcurrentSweeps(t *testing.T) {
	w := &watcher{seen: map[int]map[int]bool{}}
	listings := []models.Listing{{ID: 1}, {ID: 2}, {ID: 3}}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				w.record(g%3, listings)
			}
		}(g)
	}
	wg.Wait()
}
