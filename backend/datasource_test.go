package backend

import (
	"testing"

	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

func TestAppendStreamedLeavesSnapshotsAlone(t *testing.T) {
	first := appendStreamed(nil, "stdin", timeline.Event{Title: "one", Start: 100})
	snapshot := first
	second := appendStreamed(first, "stdin", timeline.Event{Title: "two", Start: 200})

	if len(snapshot[0].Events) != 1 {
		t.Fatalf("a held snapshot grew behind the receiver's back: %d events", len(snapshot[0].Events))
	}
	if snapshot[0].Events[0].Title != "one" {
		t.Errorf("snapshot contents changed, got %q", snapshot[0].Events[0].Title)
	}
	if len(second[0].Events) != 2 {
		t.Fatalf("expected the new emission to carry both events, got %d", len(second[0].Events))
	}
	if &snapshot[0] == &second[0] {
		t.Errorf("each emission must have a fresh collection slice so change detection sees it")
	}
	if len(snapshot[0].Events) > 0 && len(second[0].Events) > 0 && &snapshot[0].Events[0] == &second[0].Events[0] {
		t.Errorf("emissions must not share an event backing array")
	}
}

func TestAppendStreamedKeepsTitleAndOrder(t *testing.T) {
	collections := appendStreamed(nil, "history", timeline.Event{Title: "a", Start: 1})
	collections = appendStreamed(collections, "history", timeline.Event{Title: "b", Start: 2})
	collections = appendStreamed(collections, "history", timeline.Event{Title: "c", Start: 3})
	if len(collections) != 1 || collections[0].Title != "history" {
		t.Fatalf("streamed events belong to one titled collection, got %+v", collections)
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := collections[0].Events[i].Title; got != want {
			t.Errorf("position %d: expected %q, got %q", i, want, got)
		}
	}
}
