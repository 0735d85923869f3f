package timeline

// TextMeasurer is the injected text measurement capability. It must
// report the rendered width in pixels of the given string in the
// timeline's (fixed) label font.
type TextMeasurer interface {
	TextWidth(text string) float64
}

// MetricsCache memoizes text width measurement by exact string.
// Measurement is assumed expensive and the same titles are re-measured
// on every layout pass, so hits dominate after the first pass. The
// cache grows without bound for the session; the title vocabulary is
// bounded by the input data, but callers recycling one cache across
// very large datasets should watch its size.
type MetricsCache struct {
	measurer TextMeasurer
	widths   map[string]float64
}

// NewMetricsCache wraps the given measurer. A nil measurer fails with
// ErrMeasurementUnavailable: layout cannot proceed without label
// sizing.
func NewMetricsCache(m TextMeasurer) (*MetricsCache, error) {
	if m == nil {
		return nil, ErrMeasurementUnavailable
	}
	return &MetricsCache{
		measurer: m,
		widths:   make(map[string]float64),
	}, nil
}

// TextWidth returns the memoized width of text, measuring on first
// use.
func (c *MetricsCache) TextWidth(text string) float64 {
	if w, ok := c.widths[text]; ok {
		return w
	}
	w := c.measurer.TextWidth(text)
	c.widths[text] = w
	return w
}

// Reset discards all memoized widths. Must be called if the label font
// ever changes; stale widths would otherwise misplace labels.
func (c *MetricsCache) Reset() {
	clear(c.widths)
}

// Size returns the number of memoized strings.
func (c *MetricsCache) Size() int {
	return len(c.widths)
}
