package main

import (
	"errors"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chronoline/backend"
	"git.sr.ht/~whereswaldon/chronoline/config"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	timeline *TimelineView
	openBtn  widget.Clickable
	loadErr  string

	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config.Config, invalidate func()) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.CurrentSessionStream),
	}
	ui.timeline = NewTimelineView(cfg, invalidate)
	return ui
}

// Update the state of the UI and generate events. Must be called at the
// start of each frame.
func (ui *UI) Update(gtx C) {
	prevID := ui.session.ID
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	if ui.session.ID != prevID {
		ui.timeline.ResetView()
	}
	ui.timeline.SetCollections(ui.session.Collections)
	if ui.session.Err != nil {
		ui.loadErr = ui.session.Err.Error()
	}
	if ui.openBtn.Clicked(gtx) {
		if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil && !errors.Is(err, explorer.ErrUserDecline) {
			ui.loadErr = err.Error()
		}
	}
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No events yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Event File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			return ui.timeline.Layout(gtx, ui.th)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if len(ui.session.Collections) == 0 {
		return ui.layoutStartScreen(gtx)
	}
	return ui.layoutMainArea(gtx)
}
