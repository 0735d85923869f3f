package timeline

import (
	"errors"
	"testing"
)

// countingMeasurer tracks how many raw measurements were performed.
type countingMeasurer struct {
	calls int
}

func (c *countingMeasurer) TextWidth(text string) float64 {
	c.calls++
	return float64(len(text)) * 7
}

func TestMetricsCacheRequiresMeasurer(t *testing.T) {
	_, err := NewMetricsCache(nil)
	if !errors.Is(err, ErrMeasurementUnavailable) {
		t.Errorf("expected ErrMeasurementUnavailable, got %v", err)
	}
	_, err = NewLayouter(nil, Projection{})
	if !errors.Is(err, ErrMeasurementUnavailable) {
		t.Errorf("layouter without a measurer must fail, got %v", err)
	}
}

func TestMetricsCacheMemoizes(t *testing.T) {
	m := &countingMeasurer{}
	cache, err := NewMetricsCache(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := cache.TextWidth("hello")
	for i := 0; i < 5; i++ {
		if w := cache.TextWidth("hello"); w != first {
			t.Errorf("memoized width changed: %f != %f", w, first)
		}
	}
	cache.TextWidth("there")
	if m.calls != 2 {
		t.Errorf("expected 2 raw measurements, got %d", m.calls)
	}
	if cache.Size() != 2 {
		t.Errorf("expected 2 cached entries, got %d", cache.Size())
	}
}

func TestMetricsCacheReset(t *testing.T) {
	m := &countingMeasurer{}
	cache, err := NewMetricsCache(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cache.TextWidth("hello")
	cache.Reset()
	if cache.Size() != 0 {
		t.Errorf("expected empty cache after reset, got %d entries", cache.Size())
	}
	cache.TextWidth("hello")
	if m.calls != 2 {
		t.Errorf("expected re-measurement after reset, got %d calls", m.calls)
	}
}
