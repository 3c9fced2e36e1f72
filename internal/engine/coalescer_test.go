package engine

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCoalescerDebouncesContinuousInput(t *testing.T) {
	var runs atomic.Int32
	c := NewCoalescer(60*time.Millisecond, 10*time.Millisecond, func() {
		runs.Add(1)
	})
	defer c.Stop()

	// A keystroke burst: each trigger supersedes the previous timer.
	for i := 0; i < 5; i++ {
		c.Trigger(Continuous)
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if got := runs.Load(); got != 1 {
		t.Fatalf("burst of 5 triggers should coalesce into 1 run, got %d", got)
	}
}

func TestCoalescerDiscreteDelayShorterThanSettle(t *testing.T) {
	var runs atomic.Int32
	c := NewCoalescer(500*time.Millisecond, 20*time.Millisecond, func() {
		runs.Add(1)
	})
	defer c.Stop()

	c.Trigger(Discrete)
	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("discrete trigger should run well before the settle window, got %d runs", got)
	}
}

func TestCoalescerSerializesRecomputes(t *testing.T) {
	var inFlight, overlaps, runs atomic.Int32
	started := make(chan struct{}, 1)
	c := NewCoalescer(10*time.Millisecond, 10*time.Millisecond, func() {
		if inFlight.Add(1) > 1 {
			overlaps.Add(1)
		}
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(-1)
		runs.Add(1)
	})
	defer c.Stop()

	go c.Flush()
	<-started
	// Arrives mid-recompute: must queue, never interleave.
	c.Flush()

	time.Sleep(200 * time.Millisecond)
	if overlaps.Load() != 0 {
		t.Fatal("overlapping recomputes observed")
	}
	if got := runs.Load(); got != 2 {
		t.Fatalf("queued trigger should run exactly once after the in-flight run, got %d", got)
	}
}

func TestCoalescerPendingTriggersCoalesce(t *testing.T) {
	var runs atomic.Int32
	release := make(chan struct{})
	var once sync.Once
	c := NewCoalescer(10*time.Millisecond, 5*time.Millisecond, func() {
		once.Do(func() { <-release })
		runs.Add(1)
	})

	go c.Flush()
	time.Sleep(20 * time.Millisecond)
	// Several triggers land while the first run is blocked; they collapse
	// into a single follow-up run.
	c.Trigger(Discrete)
	time.Sleep(20 * time.Millisecond)
	c.Trigger(Discrete)
	time.Sleep(20 * time.Millisecond)
	close(release)

	time.Sleep(150 * time.Millisecond)
	c.Stop()
	if got := runs.Load(); got != 2 {
		t.Fatalf("pending triggers should coalesce to one follow-up run, got %d total", got)
	}
}

func TestCoalescerStopCancelsPendingTimer(t *testing.T) {
	var runs atomic.Int32
	c := NewCoalescer(30*time.Millisecond, 30*time.Millisecond, func() {
		runs.Add(1)
	})
	c.Trigger(Continuous)
	c.Stop()
	time.Sleep(100 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatal("Stop should cancel the pending timer outright")
	}
}
