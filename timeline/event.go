// Package timeline computes pixel layouts for dated events. Given a
// visible time window (an extent) and collections of events, it
// projects each event's time span onto horizontal pixel coordinates,
// packs overlapping events into stacked lanes, and provides the pure
// transforms that pan and zoom gestures apply to the extent.
//
// All instants are Unix milliseconds. Millisecond epochs cover the
// full historical range timelines care about; Unix nanoseconds
// overflow int64 outside 1678-2262.
package timeline

// Event is a single dated happening. An event without an end is a
// point event and renders as a dot only; an event with an end renders
// as a span bar. Events are immutable values owned by the caller; the
// layout code never mutates them.
type Event struct {
	Title string
	// Start and End are Unix milliseconds. End is meaningful only
	// when HasEnd is set. Callers are expected to supply End >= Start.
	Start  int64
	End    int64
	HasEnd bool
	// Color groups related events into shared lanes. Empty means
	// uncolored.
	Color string
}

// EndOrStart returns the end of the event's time span, or its start
// for point events.
func (e Event) EndOrStart() int64 {
	if e.HasEnd {
		return e.End
	}
	return e.Start
}

// Collection is one visual row of the timeline: a titled, ordered
// sequence of events. Collections are passed by value into each layout
// pass and are not retained beyond it.
type Collection struct {
	Title  string
	Events []Event
}

// TimeExtent is the currently visible time window [Start, End) in
// Unix milliseconds. Extents are replaced wholesale by the transforms
// in this package, never mutated in place.
type TimeExtent struct {
	Start int64
	End   int64
}

// Span returns the width of the extent in milliseconds.
func (t TimeExtent) Span() int64 {
	return t.End - t.Start
}

// Valid reports whether the extent covers a positive span.
func (t TimeExtent) Valid() bool {
	return t.End > t.Start
}

// PositionedEvent is the layout output for one event. It is ephemeral:
// recomputed on every layout pass and superseded wholesale by the
// next.
type PositionedEvent struct {
	Event Event
	// LeftPx is the left edge of the dot marking the event start.
	LeftPx float64
	// EventWidthPx is the width of the span bar; point events
	// collapse to the dot size.
	EventWidthPx float64
	// DisplayWidthPx is the total horizontal footprint, wide enough
	// for both the span bar and the rendered label.
	DisplayWidthPx float64
	// TextWidthPx is the measured width of the rendered title.
	TextWidthPx float64
	// LabelLeftPx is the label's offset from LeftPx.
	LabelLeftPx float64
	// Lane is the packed lane index within the collection, and
	// determines TopPx.
	Lane     int
	TopPx    float64
	HeightPx float64
}

// CollectionLayout is the positioned form of one collection.
type CollectionLayout struct {
	Title  string
	Events []PositionedEvent
}

// LayoutResult holds one CollectionLayout per input collection, in
// input order. It is consumed immediately by presentation and replaced
// by the next layout pass.
type LayoutResult []CollectionLayout
