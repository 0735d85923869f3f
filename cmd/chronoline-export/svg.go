package main

import (
	"fmt"
	"strings"

	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

type svgOptions struct {
	WidthPx      float64
	LaneHeightPx float64
	DotSizePx    float64
	FontSizePx   float64
}

const collectionTitleHeightPx = 26.0

var svgPalette = []string{
	"#a4633a", "#857625", "#51854d", "#2b7fa8", "#726cae", "#975f91",
}

var svgNamedColors = map[string]string{
	"red":    "#c0392b",
	"orange": "#d35400",
	"yellow": "#f1c40f",
	"green":  "#278e43",
	"teal":   "#16a085",
	"blue":   "#2980b9",
	"purple": "#8e44ad",
	"pink":   "#c2568c",
	"brown":  "#795548",
	"gray":   "#7f8c8d",
	"grey":   "#7f8c8d",
	"black":  "#2c3e50",
}

func svgColor(name string, index int) string {
	if col, ok := svgNamedColors[name]; ok {
		return col
	}
	if strings.HasPrefix(name, "#") && (len(name) == 4 || len(name) == 7) {
		return name
	}
	return svgPalette[index%len(svgPalette)]
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// renderSVG draws the positioned layout as standalone SVG markup. Each
// collection gets a titled band of lanes stacked below the previous
// one.
func renderSVG(result timeline.LayoutResult, opts svgOptions) string {
	totalHeight := 0.0
	for _, cl := range result {
		totalHeight += collectionTitleHeightPx + float64(timeline.LaneCount(cl.Events))*opts.LaneHeightPx
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		opts.WidthPx, totalHeight, opts.WidthPx, totalHeight)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")

	bandTop := 0.0
	for _, cl := range result {
		fmt.Fprintf(&b, `<text x="4" y="%.1f" font-size="%.0f" font-weight="bold" font-family="sans-serif">%s</text>`+"\n",
			bandTop+collectionTitleHeightPx-8, opts.FontSizePx+2, xmlEscaper.Replace(cl.Title))
		lanesTop := bandTop + collectionTitleHeightPx
		for i, ev := range cl.Events {
			renderEvent(&b, ev, lanesTop, svgColor(ev.Event.Color, i), opts)
		}
		bandTop = lanesTop + float64(timeline.LaneCount(cl.Events))*opts.LaneHeightPx
	}
	b.WriteString("</svg>\n")
	return b.String()
}

func renderEvent(b *strings.Builder, ev timeline.PositionedEvent, lanesTop float64, color string, opts svgOptions) {
	top := lanesTop + ev.TopPx
	if ev.Event.HasEnd {
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s" fill-opacity="0.6"/>`+"\n",
			ev.LeftPx, top+1, ev.EventWidthPx, ev.HeightPx-2, color)
	}
	radius := opts.DotSizePx / 2
	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
		ev.LeftPx+radius, top+ev.HeightPx/2, radius, color)
	fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="%.0f" font-family="sans-serif">%s</text>`+"\n",
		ev.LeftPx+ev.LabelLeftPx, top+ev.HeightPx/2+opts.FontSizePx/3, opts.FontSizePx, xmlEscaper.Replace(ev.Event.Title))
}
