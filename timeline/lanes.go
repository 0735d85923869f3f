package timeline

// AssignLanes packs the given events into lanes so that no two events
// sharing a lane overlap horizontally. Events must already be in the
// orchestrator's sort order (color ascending with the empty color
// first, then start ascending); processing them in that order keeps
// color groups contiguous.
//
// Placement prefers lanes as follows: an event whose color is already
// placed reuses that color's lane; otherwise the lowest lane holding
// no colored event is preferred, which keeps uncolored point events
// out of the colored span rows when space allows. From the preferred
// lane the search scans upward until it finds a lane with no
// horizontal overlap, so assignment always terminates. The result is
// overlap-free and color-stable but deliberately not a minimum
// coloring of the interval graph; see the package tests for the
// grouping properties this trades lane count for.
//
// Overlap is tested on the half-open display spans
// [LeftPx, LeftPx+DisplayWidthPx), so label footprints count.
func AssignLanes(events []PositionedEvent) {
	for i := range events {
		ev := &events[i]
		placed := events[:i]
		lane := preferredLane(ev.Event.Color, placed)
		for overlapsLane(lane, *ev, placed) {
			lane++
		}
		ev.Lane = lane
	}
}

func preferredLane(color string, placed []PositionedEvent) int {
	if color != "" {
		for _, other := range placed {
			if other.Event.Color == color {
				return other.Lane
			}
		}
	}
	// Lowest lane free of colored events. Lane indices are unbounded
	// upward, so one always exists.
	coloredLanes := make(map[int]bool)
	for _, other := range placed {
		if other.Event.Color != "" {
			coloredLanes[other.Lane] = true
		}
	}
	lane := 0
	for coloredLanes[lane] {
		lane++
	}
	return lane
}

func overlapsLane(lane int, ev PositionedEvent, placed []PositionedEvent) bool {
	for _, other := range placed {
		if other.Lane != lane {
			continue
		}
		if spansOverlap(ev.LeftPx, ev.DisplayWidthPx, other.LeftPx, other.DisplayWidthPx) {
			return true
		}
	}
	return false
}

func spansOverlap(aLeft, aWidth, bLeft, bWidth float64) bool {
	return aLeft < bLeft+bWidth && bLeft < aLeft+aWidth
}

// LaneCount returns the number of lanes used by a packed event slice:
// the highest assigned lane plus one, or zero for no events.
func LaneCount(events []PositionedEvent) int {
	lanes := 0
	for _, ev := range events {
		lanes = max(lanes, ev.Lane+1)
	}
	return lanes
}
