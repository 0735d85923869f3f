// Package inertia drives decaying-velocity callbacks: a gesture ends
// with some velocity, and the controller keeps invoking a tick
// callback with that velocity shrinking each tick until it falls under
// a threshold. Nothing in here knows about timelines; the package is a
// generic repeated-callback primitive.
package inertia

import (
	"math"
	"sync"
	"time"
)

// Defaults, applied where the corresponding Controller field is zero.
const (
	DefaultTickInterval = time.Second / 60
	DefaultDecay        = 0.95
	DefaultThreshold    = 0.1
)

// Controller runs at most one decaying-velocity loop at a time.
// Start while running stops the previous run first (last caller wins).
// The zero value is ready to use.
type Controller struct {
	// TickInterval is the callback period. Zero means
	// DefaultTickInterval (60 Hz).
	TickInterval time.Duration
	// Decay multiplies the velocity after each tick. Zero means
	// DefaultDecay.
	Decay float64
	// Threshold is the absolute velocity below which the run stops on
	// its own, with no final zero tick. Zero means DefaultThreshold.
	Threshold float64

	mu      sync.Mutex
	current *run
}

type run struct {
	done chan struct{}
}

// Start begins invoking onTick with the current velocity at the tick
// rate, decaying the velocity after each invocation. The run stops
// itself once the velocity's magnitude falls below the threshold, or
// when Stop (or a later Start) cancels it. onTick is invoked from the
// controller's own goroutine; callers that mutate shared state must
// marshal the tick back to their own thread.
func (c *Controller) Start(velocity float64, onTick func(velocity float64)) {
	interval := c.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	decay := c.Decay
	if decay == 0 {
		decay = DefaultDecay
	}
	threshold := c.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	r := &run{done: make(chan struct{})}
	c.mu.Lock()
	if c.current != nil {
		close(c.current.done)
	}
	c.current = r
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		v := velocity
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				c.mu.Lock()
				live := c.current == r
				c.mu.Unlock()
				if !live {
					return
				}
				// Re-check cancellation at the last instant; liveness
				// above can go stale before delivery.
				select {
				case <-r.done:
					return
				default:
				}
				onTick(v)
				v *= decay
				if math.Abs(v) < threshold {
					c.mu.Lock()
					if c.current == r {
						c.current = nil
					}
					c.mu.Unlock()
					return
				}
			}
		}
	}()
}

// Stop cancels any in-flight run. It is idempotent and safe to call
// from a tick callback. No further ticks begin after Stop returns; a
// tick whose delivery already started concurrently with Stop may still
// complete, so hosts that apply ticks asynchronously should also
// discard anything still pending when they stop.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.current != nil {
		close(c.current.done)
		c.current = nil
	}
	c.mu.Unlock()
}

// Active reports whether a run is currently in flight.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}
