package timeline

import "math"

// Default projection constants, in pixels.
const (
	DefaultDotSizePx     = 8.0
	DefaultTextPaddingPx = 4.0
	DefaultLaneHeightPx  = 20.0
)

// Projection holds the pixel constants used to project events. The
// zero value selects the defaults.
type Projection struct {
	// DotSizePx is the diameter of the dot marking an event start.
	DotSizePx float64
	// TextPaddingPx is the horizontal gap around labels.
	TextPaddingPx float64
	// LaneHeightPx is the vertical pitch of stacked lanes.
	LaneHeightPx float64
}

func (p Projection) normalized() Projection {
	if p.DotSizePx <= 0 {
		p.DotSizePx = DefaultDotSizePx
	}
	if p.TextPaddingPx <= 0 {
		p.TextPaddingPx = DefaultTextPaddingPx
	}
	if p.LaneHeightPx <= 0 {
		p.LaneHeightPx = DefaultLaneHeightPx
	}
	return p
}

// Scale returns the time-to-pixel ratio for the given extent and
// container width.
func Scale(ext TimeExtent, widthPx float64) float64 {
	return widthPx / float64(ext.Span())
}

// Project computes the horizontal geometry of one event within the
// extent. Lane assignment is independent of projection; Lane, TopPx
// and HeightPx are filled in afterwards by the orchestrator.
//
// The -1/+1 pixel nudges cancel the border overlap between the dot and
// the span bar; they are cosmetic but load-bearing for visual parity,
// so keep them.
func (p Projection) Project(ev Event, ext TimeExtent, widthPx, textWidthPx float64) PositionedEvent {
	p = p.normalized()
	dotRadius := p.DotSizePx / 2
	scale := Scale(ext, widthPx)
	left := float64(ev.Start-ext.Start)*scale - dotRadius + 1
	spanMs := float64(ev.EndOrStart() - ev.Start)
	eventWidth := math.Max(p.DotSizePx, spanMs*scale+dotRadius-1)
	displayWidth := math.Max(eventWidth, p.DotSizePx+textWidthPx+2*p.TextPaddingPx)
	return PositionedEvent{
		Event:          ev,
		LeftPx:         left,
		EventWidthPx:   eventWidth,
		DisplayWidthPx: displayWidth,
		TextWidthPx:    textWidthPx,
		LabelLeftPx:    p.labelOffset(ev, left, eventWidth, textWidthPx),
	}
}

// labelOffset places the label relative to LeftPx. The usual position
// is immediately after the dot. A span bar whose left edge has
// scrolled substantially off-screen instead slides its label right to
// stay readable, clamped so it never overflows the bar's right edge.
func (p Projection) labelOffset(ev Event, leftPx, eventWidthPx, textWidthPx float64) float64 {
	dotRadius := p.DotSizePx / 2
	afterDot := p.DotSizePx + p.TextPaddingPx
	labelFits := p.DotSizePx+textWidthPx+2*p.TextPaddingPx < eventWidthPx
	offscreenLeft := leftPx < -p.DotSizePx
	if !ev.HasEnd || !labelFits || !offscreenLeft {
		return afterDot
	}
	slid := -leftPx + dotRadius + p.TextPaddingPx
	maxOffset := eventWidthPx - textWidthPx - dotRadius
	return math.Min(slid, maxOffset)
}
