package timeline

import (
	"errors"
	"math"
	"testing"
	"time"
)

func ms(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestCalculateExtentEmpty(t *testing.T) {
	_, err := CalculateExtent(nil, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for no collections, got %v", err)
	}
	_, err = CalculateExtent([]Collection{{Title: "empty"}, {Title: "also empty"}}, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput for empty collections, got %v", err)
	}
}

func TestCalculateExtentCoversEvents(t *testing.T) {
	collections := []Collection{
		{Events: []Event{
			{Title: "b", Start: ms(2011, 3, 1)},
			{Title: "a", Start: ms(2010, 1, 1), End: ms(2012, 6, 1), HasEnd: true},
		}},
		{Events: []Event{
			{Title: "c", Start: ms(2011, 7, 1), End: ms(2014, 2, 1), HasEnd: true},
		}},
	}
	ext, err := CalculateExtent(collections, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Start != ms(2010, 1, 1) {
		t.Errorf("expected extent start at earliest event, got %d", ext.Start)
	}
	if ext.End != ms(2014, 2, 1) {
		t.Errorf("expected extent end at latest event end, got %d", ext.End)
	}
}

func TestCalculateExtentCap(t *testing.T) {
	collections := []Collection{
		{Events: []Event{
			{Title: "early", Start: ms(1970, 1, 1)},
			{Title: "late", Start: ms(2020, 1, 1)},
		}},
	}
	ext, err := CalculateExtent(collections, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Start != ms(1970, 1, 1) {
		t.Errorf("expected extent start at earliest event, got %d", ext.Start)
	}
	if want := ms(1990, 1, 1); ext.End != want {
		t.Errorf("expected extent clamped to start+20y (%d), got %d", want, ext.End)
	}
}

func TestCalculateExtentSinglePoint(t *testing.T) {
	ext, err := CalculateExtent([]Collection{
		{Events: []Event{{Title: "only", Start: ms(2024, 5, 4)}}},
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ext.Valid() {
		t.Errorf("extent from a single point event must still span time, got %+v", ext)
	}
}

func TestPanInvertible(t *testing.T) {
	ext := TimeExtent{Start: ms(2020, 1, 1), End: ms(2021, 1, 1)}
	const width = 1000.0
	for _, delta := range []float64{1, -1, 13.5, -250, 999} {
		back := Pan(delta, Pan(-delta, ext, width), width)
		if diff := back.Start - ext.Start; diff > 1 || diff < -1 {
			t.Errorf("pan(%f) not invertible: start off by %dms", delta, diff)
		}
		if back.Span() != ext.Span() {
			t.Errorf("pan(%f) changed the span: %d != %d", delta, back.Span(), ext.Span())
		}
	}
}

func TestPanDirection(t *testing.T) {
	ext := TimeExtent{Start: 0, End: 1000}
	// Dragging right (positive delta) reveals earlier time.
	out := Pan(100, ext, 1000)
	if out.Start >= ext.Start {
		t.Errorf("positive pan delta should move the window earlier, start went %d -> %d", ext.Start, out.Start)
	}
}

func TestZoomMidpointFixed(t *testing.T) {
	ext := TimeExtent{Start: ms(2020, 1, 1), End: ms(2024, 1, 1)}
	mid := float64(ext.Start+ext.End) / 2
	for _, delta := range []float64{120, -120, 750} {
		out, err := Zoom(delta, 0.5, WheelZoomDivisor, ext)
		if err != nil {
			t.Fatalf("unexpected error zooming by %f: %v", delta, err)
		}
		outMid := float64(out.Start+out.End) / 2
		if math.Abs(outMid-mid) > 1 {
			t.Errorf("midpoint moved under centered zoom by %f: %f -> %f", delta, mid, outMid)
		}
	}
}

func TestZoomAnchorsCenterFraction(t *testing.T) {
	ext := TimeExtent{Start: 0, End: 1_000_000}
	const center = 0.25
	anchor := float64(ext.Start) + float64(ext.Span())*center
	out, err := Zoom(500, center, WheelZoomDivisor, ext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outAnchor := float64(out.Start) + float64(out.Span())*center
	if math.Abs(outAnchor-anchor) > 1 {
		t.Errorf("anchor point moved: %f -> %f", anchor, outAnchor)
	}
}

func TestZoomRejectsCollapse(t *testing.T) {
	ext := TimeExtent{Start: 0, End: 10}
	out, err := Zoom(-2000, 0.5, WheelZoomDivisor, ext)
	if !errors.Is(err, ErrInvalidExtent) {
		t.Errorf("expected ErrInvalidExtent, got %v", err)
	}
	if out != ext {
		t.Errorf("rejected zoom must return the input extent, got %+v", out)
	}
}

func TestViewRetainsExtentOnInvalidZoom(t *testing.T) {
	v := View{Extent: TimeExtent{Start: 0, End: 10}}
	before := v.Extent
	if err := v.Zoom(-5000, 0.5, WheelZoomDivisor); err == nil {
		t.Errorf("expected collapsing zoom to error")
	}
	if v.Extent != before {
		t.Errorf("view must retain prior extent after a rejected zoom, got %+v", v.Extent)
	}
}
