package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chronoline/backend"
	"git.sr.ht/~whereswaldon/chronoline/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed loading config: %v", err)
	}
	files := append(cfg.Files, flag.Args()...)
	go func() {
		w := app.NewWindow(
			app.Title("chronoline"),
			app.Size(unit.Dp(900), unit.Dp(600)),
		)
		expl := explorer.NewExplorer(w)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		mutator := stream.NewMutator(ctx)
		bundle := backend.NewBundle(mutator)
		ws := backend.NewWindowState(ctx, bundle, w)
		if len(files) > 0 {
			if _, err := bundle.Datasource.LoadFiles(files...); err != nil {
				log.Printf("failed loading event files: %v", err)
			}
		} else if stat, err := os.Stdin.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			// Piped input becomes a live session.
			bundle.Datasource.LoadFromStream("stdin", os.Stdin)
		}
		if err := loop(w, ws, expl, cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, ws backend.WindowState, expl *explorer.Explorer, cfg config.Config) error {
	ui := NewUI(ws, expl, cfg, w.Invalidate)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case system.DestroyEvent:
			return ev.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
