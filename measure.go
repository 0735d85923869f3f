package main

import (
	"image"

	"gioui.org/op"
	"gioui.org/widget/material"
)

// shaperMeasurer measures label widths with the window's text shaper
// by laying the text out into a discarded macro. It must be primed
// with the current frame's context before the layouter runs.
type shaperMeasurer struct {
	th    *material.Theme
	gtx   C
	ready bool
}

func (m *shaperMeasurer) begin(gtx C, th *material.Theme) {
	m.gtx = gtx
	m.th = th
	m.ready = true
}

func (m *shaperMeasurer) TextWidth(text string) float64 {
	if !m.ready {
		return 0
	}
	gtx := m.gtx
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max = image.Pt(1e6, 1e6)
	macro := op.Record(gtx.Ops)
	label := material.Body2(m.th, text)
	label.MaxLines = 1
	dims := label.Layout(gtx)
	_ = macro.Stop()
	return float64(dims.Size.X)
}
