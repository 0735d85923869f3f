package timeline

import (
	"slices"
	"sort"
)

// Layouter recomputes the positioned layout whenever the extent, the
// container size, or the input collections change. Triggers are
// coalesced: any number of Set/Resize calls between two Layout calls
// cost one recomputation, and Layout with unchanged inputs returns the
// cached result untouched. Layouter is not safe for concurrent use; it
// is designed for a single UI goroutine, where "concurrent" triggers
// arrive as an ordered burst within one frame.
type Layouter struct {
	cache  *MetricsCache
	params Projection

	collections []Collection
	extent      TimeExtent
	widthPx     float64
	heightPx    float64

	dirty  bool
	result LayoutResult
}

// NewLayouter builds a Layouter measuring labels through m. Fails with
// ErrMeasurementUnavailable when m is nil.
func NewLayouter(m TextMeasurer, params Projection) (*Layouter, error) {
	cache, err := NewMetricsCache(m)
	if err != nil {
		return nil, err
	}
	return &Layouter{
		cache:  cache,
		params: params.normalized(),
	}, nil
}

// SetCollections replaces the input collections. Collections are
// treated as immutable once handed over; passing the same slice again
// is a no-op, so hosts may call this every frame.
func (l *Layouter) SetCollections(collections []Collection) {
	if sameCollections(l.collections, collections) {
		return
	}
	l.collections = collections
	l.dirty = true
}

func sameCollections(a, b []Collection) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// SetExtent replaces the visible time window.
func (l *Layouter) SetExtent(ext TimeExtent) {
	if ext == l.extent {
		return
	}
	l.extent = ext
	l.dirty = true
}

// Resize records the container's pixel dimensions.
func (l *Layouter) Resize(widthPx, heightPx float64) {
	if widthPx == l.widthPx && heightPx == l.heightPx {
		return
	}
	l.widthPx = widthPx
	l.heightPx = heightPx
	l.dirty = true
}

// Metrics exposes the layouter's text metrics cache, chiefly so hosts
// can Reset it on a font change.
func (l *Layouter) Metrics() *MetricsCache {
	return l.cache
}

// Invalidate forces the next Layout call to recompute even though no
// input changed, for when the meaning of an input changed out of band,
// such as cached text widths being discarded after a scale change.
func (l *Layouter) Invalidate() {
	l.dirty = true
}

// Layout returns the positioned events for the current inputs,
// recomputing only when an input changed since the last call. A
// degenerate container (zero width or height) or an invalid extent
// skips computation entirely and leaves the previous result standing.
func (l *Layouter) Layout() LayoutResult {
	if !l.dirty {
		return l.result
	}
	if l.widthPx <= 0 || l.heightPx <= 0 || !l.extent.Valid() {
		return l.result
	}
	result := make(LayoutResult, 0, len(l.collections))
	for _, c := range l.collections {
		result = append(result, CollectionLayout{
			Title:  c.Title,
			Events: l.layoutCollection(c),
		})
	}
	l.result = result
	l.dirty = false
	return l.result
}

func (l *Layouter) layoutCollection(c Collection) []PositionedEvent {
	events := slices.Clone(c.Events)
	SortEvents(events)
	positioned := make([]PositionedEvent, len(events))
	for i, ev := range events {
		positioned[i] = l.params.Project(ev, l.extent, l.widthPx, l.cache.TextWidth(ev.Title))
	}
	AssignLanes(positioned)
	for i := range positioned {
		positioned[i].TopPx = float64(positioned[i].Lane) * l.params.LaneHeightPx
		positioned[i].HeightPx = l.params.LaneHeightPx
	}
	return positioned
}

// SortEvents orders events for lane assignment: color ascending with
// the empty (colorless) string first, then start time ascending. The
// sort is stable, so equal keys preserve input order and repeated
// layouts of the same data are deterministic.
func SortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Color != events[j].Color {
			return events[i].Color < events[j].Color
		}
		return events[i].Start < events[j].Start
	})
}
