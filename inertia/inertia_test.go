package inertia

import (
	"math"
	"sync"
	"testing"
	"time"
)

// recorder collects tick velocities behind a lock, since ticks arrive
// on the controller's goroutine.
type recorder struct {
	mu    sync.Mutex
	ticks []float64
}

func (r *recorder) tick(v float64) {
	r.mu.Lock()
	r.ticks = append(r.ticks, v)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, len(r.ticks))
	copy(out, r.ticks)
	return out
}

func TestStartThenImmediateStop(t *testing.T) {
	var c Controller
	c.TickInterval = 5 * time.Millisecond
	rec := &recorder{}
	c.Start(10, rec.tick)
	c.Stop()
	time.Sleep(50 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("callback must never fire after an immediate stop, got %d ticks", len(got))
	}
	if c.Active() {
		t.Errorf("controller should be inactive after stop")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	var c Controller
	c.Stop()
	c.Stop()
	c.Start(5, func(float64) {})
	c.Stop()
	c.Stop()
}

func TestDecaysAndStops(t *testing.T) {
	c := Controller{
		TickInterval: time.Millisecond,
	}
	rec := &recorder{}
	done := make(chan struct{})
	c.Start(1, func(v float64) {
		rec.tick(v)
		// 1 * 0.95^n drops below 0.1 after 45 decays.
		if len(rec.snapshot()) == 45 {
			close(done)
		}
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("inertia run did not finish in time, got %d ticks", len(rec.snapshot()))
	}
	time.Sleep(20 * time.Millisecond)
	ticks := rec.snapshot()
	if len(ticks) != 45 {
		t.Fatalf("expected exactly 45 ticks before crossing the threshold, got %d", len(ticks))
	}
	if ticks[0] != 1 {
		t.Errorf("first tick must carry the initial velocity, got %f", ticks[0])
	}
	for i := 1; i < len(ticks); i++ {
		if math.Abs(ticks[i]-ticks[i-1]*DefaultDecay) > 1e-9 {
			t.Errorf("tick %d: expected %f, got %f", i, ticks[i-1]*DefaultDecay, ticks[i])
		}
	}
	if last := ticks[len(ticks)-1]; last < DefaultThreshold {
		t.Errorf("no tick should be delivered below the threshold, got %f", last)
	}
	if c.Active() {
		t.Errorf("controller should stop itself once velocity decays away")
	}
}

func TestStartReplacesRunningInertia(t *testing.T) {
	c := Controller{
		TickInterval: time.Millisecond,
		// Large threshold relative to the velocities below keeps both
		// runs short-lived if the test goes wrong.
		Threshold: 0.5,
	}
	first := &recorder{}
	second := &recorder{}
	c.Start(1000, first.tick)
	c.Start(-1000, second.tick)
	time.Sleep(50 * time.Millisecond)
	c.Stop()
	for _, v := range second.snapshot() {
		if v > 0 {
			t.Errorf("second run observed a velocity from the first run: %f", v)
		}
	}
	firstLen := len(first.snapshot())
	time.Sleep(20 * time.Millisecond)
	if got := len(first.snapshot()); got != firstLen {
		t.Errorf("first run kept ticking after being replaced: %d -> %d", firstLen, got)
	}
}
