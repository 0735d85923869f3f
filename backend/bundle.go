package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState carries the application services alongside a stream
// controller bound to one window's invalidation.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

type Bundle struct {
	Datasource *Datasource
}

func NewBundle(mutator *stream.Mutator) Bundle {
	return Bundle{
		Datasource: NewDatasource(mutator),
	}
}
