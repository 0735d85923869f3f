package main

import (
	"testing"
	"time"

	"git.sr.ht/~whereswaldon/chronoline/config"
	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

func ms(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func collectionsAround(startYear int) []timeline.Collection {
	return []timeline.Collection{{Title: "events", Events: []timeline.Event{
		{Title: "a", Start: ms(startYear, 1, 1)},
		{Title: "b", Start: ms(startYear, 6, 1), End: ms(startYear+1, 1, 1), HasEnd: true},
	}}}
}

func TestResetViewDerivesExtentFromNextSession(t *testing.T) {
	tv := NewTimelineView(config.Default(), func() {})
	tv.SetCollections(collectionsAround(1990))
	if !tv.haveExtent || tv.view.Extent.Start != ms(1990, 1, 1) {
		t.Fatalf("expected extent derived from first session, got %+v", tv.view.Extent)
	}

	// A new session resets the view before its data arrives; the new
	// extent must come from the new data, not the outgoing session's.
	tv.ResetView()
	if tv.haveExtent {
		t.Fatalf("reset must leave the extent underived until new data arrives")
	}
	tv.SetCollections(collectionsAround(2020))
	if tv.view.Extent.Start != ms(2020, 1, 1) {
		t.Errorf("second session framed in the first session's window: extent starts at %s",
			formatInstant(tv.view.Extent.Start))
	}
	if tv.view.Extent.End != ms(2021, 1, 1) {
		t.Errorf("expected extent through the second session's last end, got %s",
			formatInstant(tv.view.Extent.End))
	}
}

func TestStopMomentumDiscardsPendingPan(t *testing.T) {
	tv := NewTimelineView(config.Default(), func() {})
	tv.SetCollections(collectionsAround(2000))
	tv.fling(42)
	tv.stopMomentum()
	tv.pendingMu.Lock()
	pending := tv.pendingPanPx
	tv.pendingMu.Unlock()
	if pending != 0 {
		t.Errorf("momentum ticks delivered before the stop must be discarded, got %f pending", pending)
	}
}
