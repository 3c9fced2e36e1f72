package engine

import (
	"sync"
	"time"
)

// Default delays: continuous inputs wait for typing to settle, discrete
// inputs dispatch almost immediately since a click is an atomic action.
const (
	DefaultSettleDelay   = 400 * time.Millisecond
	DefaultDiscreteDelay = 100 * time.Millisecond
)

// Coalescer merges rapid triggers into one scheduled recompute. A trigger
// resets any pending timer outright; a trigger that fires while a recompute
// is in flight is queued and runs once afterwards, never interleaved.
type Coalescer struct {
	mu       sync.Mutex
	settle   time.Duration
	discrete time.Duration
	timer    *time.Timer
	running  bool
	pending  bool
	stopped  bool
	run      func()
}

// NewCoalescer wires a coalescer to a recompute function. Zero durations
// fall back to the defaults.
func NewCoalescer(settle, discrete time.Duration, run func()) *Coalescer {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	if discrete <= 0 {
		discrete = DefaultDiscreteDelay
	}
	return &Coalescer{settle: settle, discrete: discrete, run: run}
}

// Trigger schedules a recompute after the delay for the input kind,
// superseding any timer already pending.
func (c *Coalescer) Trigger(kind InputKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	delay := c.discrete
	if kind == Continuous {
		delay = c.settle
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(delay, c.fire)
}

// Flush cancels any pending timer and runs the recompute now, still
// serialized against an in-flight run.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.fire()
}

// Stop cancels any pending work. Subsequent triggers are ignored.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// fire serializes recomputation behind a single running flag. Overlapping
// fires set pending and return; the running fire loops until quiescent, so
// no partial result is ever committed.
func (c *Coalescer) fire() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.running {
		c.pending = true
		c.mu.Unlock()
		return
	}
	c.running = true
	c.mu.Unlock()

	for {
		c.run()
		c.mu.Lock()
		if !c.pending || c.stopped {
			c.running = false
			c.mu.Unlock()
			return
		}
		c.pending = false
		c.mu.Unlock()
	}
}
