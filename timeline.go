package main

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/chronoline/config"
	"git.sr.ht/~whereswaldon/chronoline/inertia"
	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

// TimelineView owns the interactive state of the timeline: the visible
// extent, the pan and zoom gestures, and the layouter that positions
// events within it.
type TimelineView struct {
	cfg        config.Config
	invalidate func()

	measurer    *shaperMeasurer
	layouter    *timeline.Layouter
	view        timeline.View
	haveExtent  bool
	collections []timeline.Collection

	zoom     gesture.Scroll
	momentum inertia.Controller
	// pendingPanPx accumulates momentum ticks between frames. Ticks
	// arrive on the momentum goroutine, so access is locked.
	pendingMu    sync.Mutex
	pendingPanPx float64

	resetBtn widget.Clickable
	rows     widget.List

	widthPx    float64
	lastMetric unit.Metric
	pos        image.Point
	dragging   bool
	lastX      float32
	lastTime   time.Duration
	velocity   float64
}

func NewTimelineView(cfg config.Config, invalidate func()) *TimelineView {
	measurer := &shaperMeasurer{}
	layouter, err := timeline.NewLayouter(measurer, cfg.Projection())
	if err != nil {
		// Unreachable: the measurer above is never nil.
		panic(err)
	}
	tv := &TimelineView{
		cfg:        cfg,
		invalidate: invalidate,
		measurer:   measurer,
		layouter:   layouter,
	}
	tv.rows.Axis = layout.Vertical
	return tv
}

// SetCollections hands the view the event data to lay out. The first
// nonempty set after a reset also derives the initial extent.
func (tv *TimelineView) SetCollections(collections []timeline.Collection) {
	tv.collections = collections
	tv.layouter.SetCollections(collections)
	if !tv.haveExtent {
		tv.deriveExtent()
	}
}

// ResetView discards the interactive state so the next data derives a
// fresh extent, for when a new session replaces the current one. The
// extent itself is derived by the following SetCollections call; the
// data still held here belongs to the outgoing session.
func (tv *TimelineView) ResetView() {
	tv.stopMomentum()
	tv.view = timeline.View{}
	tv.haveExtent = false
}

// stopMomentum cancels any inertia run and discards ticks it already
// delivered but that no frame has applied yet.
func (tv *TimelineView) stopMomentum() {
	tv.momentum.Stop()
	tv.pendingMu.Lock()
	tv.pendingPanPx = 0
	tv.pendingMu.Unlock()
}

func (tv *TimelineView) deriveExtent() {
	ext, err := timeline.CalculateExtent(tv.collections, tv.cfg.ExtentCapYears)
	if err != nil {
		return
	}
	tv.view.Extent = ext
	tv.haveExtent = true
}

// fling applies one momentum tick. It runs on the momentum goroutine,
// so it only records the distance and wakes the window; the pan itself
// happens on the UI goroutine during the next frame.
func (tv *TimelineView) fling(velocityPx float64) {
	tv.pendingMu.Lock()
	tv.pendingPanPx += velocityPx
	tv.pendingMu.Unlock()
	tv.invalidate()
}

func (tv *TimelineView) Update(gtx C) {
	if gtx.Metric != tv.lastMetric {
		// Cached text widths are only valid at one scale.
		tv.layouter.Metrics().Reset()
		tv.layouter.Invalidate()
		tv.lastMetric = gtx.Metric
	}
	tv.pendingMu.Lock()
	pending := tv.pendingPanPx
	tv.pendingPanPx = 0
	tv.pendingMu.Unlock()
	if pending != 0 {
		tv.view.Pan(pending, tv.widthPx)
	}
	if dist := tv.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 && tv.widthPx > 0 {
		center := clamp(float64(tv.pos.X)/tv.widthPx, 0, 1)
		// A rejected zoom simply retains the current extent.
		_ = tv.view.Zoom(float64(dist), center, timeline.WheelZoomDivisor)
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: tv,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Move | pointer.Enter | pointer.Leave,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			// The drag owns the extent from here; momentum ticks that
			// raced in before the press must not fight it.
			tv.stopMomentum()
			tv.dragging = true
			tv.view.Dragging = true
			tv.lastX = pe.Position.X
			tv.lastTime = pe.Time
			tv.velocity = 0
			tv.pos = pe.Position.Round()
		case pointer.Drag:
			if !tv.dragging {
				break
			}
			delta := pe.Position.X - tv.lastX
			tv.view.Pan(float64(delta), tv.widthPx)
			if dt := pe.Time - tv.lastTime; dt > 0 {
				tv.velocity = float64(delta) * (inertia.DefaultTickInterval.Seconds() / dt.Seconds())
			}
			tv.lastX = pe.Position.X
			tv.lastTime = pe.Time
			tv.pos = pe.Position.Round()
		case pointer.Release:
			tv.dragging = false
			tv.view.Dragging = false
			if tv.velocity != 0 {
				tv.momentum.Start(tv.velocity, tv.fling)
			}
		case pointer.Cancel:
			tv.dragging = false
			tv.view.Dragging = false
			tv.velocity = 0
		case pointer.Enter, pointer.Move:
			tv.pos = pe.Position.Round()
		case pointer.Leave:
		}
	}
	if tv.resetBtn.Clicked(gtx) {
		tv.stopMomentum()
		tv.deriveExtent()
	}
}

func (tv *TimelineView) Layout(gtx C, th *material.Theme) D {
	tv.measurer.begin(gtx, th)
	tv.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return tv.layoutHeader(gtx, th)
		}),
		layout.Flexed(1, func(gtx C) D {
			return tv.layoutLanes(gtx, th)
		}),
	)
}

func (tv *TimelineView) layoutHeader(gtx C, th *material.Theme) D {
	ext := tv.view.Extent
	startLabel := material.Body2(th, formatInstant(ext.Start))
	endLabel := material.Body2(th, formatInstant(ext.End))
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(startLabel.Layout),
		layout.Flexed(1, func(gtx C) D {
			return D{Size: image.Pt(gtx.Constraints.Max.X, 0)}
		}),
		layout.Rigid(func(gtx C) D {
			sideLen := gtx.Dp(24)
			gtx.Constraints = layout.Exact(image.Pt(sideLen, sideLen))
			return material.Clickable(gtx, &tv.resetBtn, func(gtx C) D {
				return resetIcon.Layout(gtx, th.Fg)
			})
		}),
		layout.Flexed(1, func(gtx C) D {
			return D{Size: image.Pt(gtx.Constraints.Max.X, 0)}
		}),
		layout.Rigid(endLabel.Layout),
	)
}

func (tv *TimelineView) layoutLanes(gtx C, th *material.Theme) D {
	tv.widthPx = float64(gtx.Constraints.Max.X)
	tv.layouter.SetExtent(tv.view.Extent)
	tv.layouter.Resize(tv.widthPx, float64(gtx.Constraints.Max.Y))
	result := tv.layouter.Layout()

	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, tv)
	tv.zoom.Add(gtx.Ops)
	tv.layoutTodayMarker(gtx)
	list := material.List(th, &tv.rows)
	list.Layout(gtx, len(result), func(gtx C, i int) D {
		return tv.layoutCollection(gtx, th, result[i])
	})
	return D{Size: gtx.Constraints.Max}
}

// layoutTodayMarker draws a vertical line at the current instant when
// it falls within the visible extent.
func (tv *TimelineView) layoutTodayMarker(gtx C) {
	ext := tv.view.Extent
	scale := timeline.Scale(ext, tv.widthPx)
	if scale <= 0 {
		return
	}
	x := int(float64(time.Now().UnixMilli()-ext.Start) * scale)
	if x < 0 || x >= gtx.Constraints.Max.X {
		return
	}
	paint.FillShape(gtx.Ops, color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0x90}, clip.Rect{
		Min: image.Pt(x, 0),
		Max: image.Pt(x+gtx.Dp(1), gtx.Constraints.Max.Y),
	}.Op())
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func (tv *TimelineView) layoutCollection(gtx C, th *material.Theme, cl timeline.CollectionLayout) D {
	laneHeight := tv.cfg.LaneHeightPx
	canvasHeight := int(laneHeight) * timeline.LaneCount(cl.Events)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			title := material.Body1(th, cl.Title)
			title.MaxLines = 1
			return layout.Inset{Top: 4, Bottom: 2}.Layout(gtx, title.Layout)
		}),
		layout.Rigid(func(gtx C) D {
			size := image.Pt(gtx.Constraints.Max.X, canvasHeight)
			defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
			for i, ev := range cl.Events {
				tv.layoutEvent(gtx, th, ev, i)
			}
			return D{Size: size}
		}),
	)
}

func (tv *TimelineView) layoutEvent(gtx C, th *material.Theme, ev timeline.PositionedEvent, index int) {
	col := eventColor(ev.Event.Color, index)
	top := int(ev.TopPx)
	laneHeight := int(ev.HeightPx)
	if ev.Event.HasEnd {
		bar := image.Rect(
			int(ev.LeftPx), top+1,
			int(ev.LeftPx+ev.EventWidthPx), top+laneHeight-1,
		)
		barCol := col
		barCol.A = 0xa0
		paint.FillShape(gtx.Ops, barCol, clip.UniformRRect(bar, gtx.Dp(3)).Op(gtx.Ops))
	}
	dotSide := int(tv.cfg.DotSizePx)
	dotMin := image.Pt(int(ev.LeftPx), top+(laneHeight-dotSide)/2)
	paint.FillShape(gtx.Ops, col, clip.Ellipse{
		Min: dotMin,
		Max: dotMin.Add(image.Pt(dotSide, dotSide)),
	}.Op(gtx.Ops))

	gtx.Constraints.Min = image.Point{}
	label := material.Body2(th, ev.Event.Title)
	label.MaxLines = 1
	labelDims, labelCall := rec(gtx, label.Layout)
	offset := op.Offset(image.Pt(
		int(ev.LeftPx+ev.LabelLeftPx),
		top+(laneHeight-labelDims.Size.Y)/2,
	)).Push(gtx.Ops)
	labelCall.Add(gtx.Ops)
	offset.Pop()
}

func formatInstant(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
