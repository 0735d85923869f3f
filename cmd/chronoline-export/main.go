// Command chronoline-export renders event table files to a static SVG
// or PNG without opening a window.
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"

	"git.sr.ht/~whereswaldon/chronoline/backend"
	"git.sr.ht/~whereswaldon/chronoline/config"
	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

const fontSizePx = 13

// runeWidthMeasurer estimates label widths without a text shaper. The
// 0.6 factor approximates the average advance of a proportional face
// relative to its size, which is plenty for static export.
type runeWidthMeasurer struct{}

func (runeWidthMeasurer) TextWidth(text string) float64 {
	return 0.6 * fontSizePx * float64(utf8.RuneCountInString(text))
}

func main() {
	output := flag.String("o", "", "output file path (default: stdout)")
	width := flag.Float64("width", 1200, "rendered width in pixels")
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()
	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <events.csv>... <format>\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "\nFormats: svg, png")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	format := strings.ToLower(args[len(args)-1])
	if format != "svg" && format != "png" {
		log.Fatalf("unsupported format %q, expected svg or png", format)
	}
	files := args[:len(args)-1]

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed loading config: %v", err)
	}

	collections := make([]timeline.Collection, 0, len(files))
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("failed opening %q: %v", path, err)
		}
		collection, err := backend.ReadCollection(f, backend.CollectionTitle(path), backend.CommaFor(path), time.Now())
		f.Close()
		if err != nil {
			log.Fatalf("failed reading %q: %v", path, err)
		}
		collections = append(collections, collection)
	}

	extent, err := timeline.CalculateExtent(collections, cfg.ExtentCapYears)
	if err != nil {
		log.Fatalf("nothing to render: %v", err)
	}
	layouter, err := timeline.NewLayouter(runeWidthMeasurer{}, cfg.Projection())
	if err != nil {
		log.Fatalf("failed building layouter: %v", err)
	}
	layouter.SetCollections(collections)
	layouter.SetExtent(extent)
	layouter.Resize(*width, 1)
	result := layouter.Layout()

	svg := renderSVG(result, svgOptions{
		WidthPx:      *width,
		LaneHeightPx: cfg.LaneHeightPx,
		DotSizePx:    cfg.DotSizePx,
		FontSizePx:   fontSizePx,
	})

	var out io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("failed creating output file: %v", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("failed closing output file: %v", err)
			}
		}()
		out = f
	}

	switch format {
	case "svg":
		if _, err := io.WriteString(out, svg); err != nil {
			log.Fatalf("failed writing SVG: %v", err)
		}
	case "png":
		if err := renderPNG(svg, out); err != nil {
			log.Fatalf("failed rendering PNG: %v", err)
		}
	}
}

// renderPNG rasterizes the SVG by loading it into a headless browser
// as a data URI and screenshotting the svg element.
func renderPNG(svg string, out io.Writer) error {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()
	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	var screenshot []byte
	err := chromedp.Run(ctx, chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshot, chromedp.ByQuery),
	})
	if err != nil {
		return fmt.Errorf("headless render failed: %w", err)
	}
	if len(screenshot) == 0 {
		return fmt.Errorf("headless render produced no image data")
	}
	_, err = io.Copy(out, bytes.NewReader(screenshot))
	return err
}
