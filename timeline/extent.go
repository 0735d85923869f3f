package timeline

import (
	"math"
	"time"
)

// DefaultExtentCapYears bounds the span of the initial extent derived
// from the data. Events past the cap stay in the data and are revealed
// by panning.
const DefaultExtentCapYears = 20

// Zoom divisors convert raw gesture deltas into a scale factor. Wheel
// hardware reports much larger deltas per notch than a pinch drag
// does, so each gesture source gets its own sensitivity.
const (
	WheelZoomDivisor = 1000.0
	PinchZoomDivisor = 250.0
)

// CalculateExtent derives the initial visible window from the given
// collections: the minimum start through the maximum end (or start,
// for point events) across every event. Spans longer than capYears
// are clamped to start + capYears; capYears <= 0 selects
// DefaultExtentCapYears. Returns ErrEmptyInput when the collections
// hold no events at all.
func CalculateExtent(collections []Collection, capYears int) (TimeExtent, error) {
	if capYears <= 0 {
		capYears = DefaultExtentCapYears
	}
	var (
		minStart int64
		maxEnd   int64
		seen     bool
	)
	for _, c := range collections {
		for _, ev := range c.Events {
			if !seen {
				minStart = ev.Start
				maxEnd = ev.EndOrStart()
				seen = true
				continue
			}
			minStart = min(minStart, ev.Start)
			maxEnd = max(maxEnd, ev.EndOrStart())
		}
	}
	if !seen {
		return TimeExtent{}, ErrEmptyInput
	}
	capEnd := time.UnixMilli(minStart).UTC().AddDate(capYears, 0, 0).UnixMilli()
	if maxEnd > capEnd {
		maxEnd = capEnd
	}
	if maxEnd <= minStart {
		// A lone point event (or events sharing one instant) spans no
		// time; pad to a day so the extent stays valid.
		maxEnd = minStart + int64(24*time.Hour/time.Millisecond)
	}
	return TimeExtent{Start: minStart, End: maxEnd}, nil
}

// Pan shifts the extent by a horizontal pixel delta. A positive delta
// (dragging right) moves the visible window earlier in time. The span
// is preserved exactly.
func Pan(deltaPx float64, ext TimeExtent, widthPx float64) TimeExtent {
	if widthPx <= 0 || !ext.Valid() {
		return ext
	}
	scale := widthPx / float64(ext.Span())
	shift := int64(math.Round(-deltaPx / scale))
	return TimeExtent{Start: ext.Start + shift, End: ext.End + shift}
}

// Zoom scales the extent by a gesture delta, anchored so that the
// instant under centerFraction (0 = left edge, 1 = right edge) stays
// fixed. divisor selects the gesture sensitivity; zero selects
// WheelZoomDivisor. No bounds are placed on how far out the caller may
// zoom, but a delta that would collapse or invert the span is rejected
// with ErrInvalidExtent and the input extent is returned unchanged.
func Zoom(deltaUnits, centerFraction, divisor float64, ext TimeExtent) (TimeExtent, error) {
	if !ext.Valid() {
		return ext, ErrInvalidExtent
	}
	if divisor == 0 {
		divisor = WheelZoomDivisor
	}
	factor := 1 + deltaUnits/divisor
	span := float64(ext.Span())
	newStart := float64(ext.Start) - span*centerFraction*(factor-1)
	newEnd := float64(ext.End) + span*(1-centerFraction)*(factor-1)
	out := TimeExtent{
		Start: int64(math.Round(newStart)),
		End:   int64(math.Round(newEnd)),
	}
	if !out.Valid() {
		return ext, ErrInvalidExtent
	}
	return out, nil
}
