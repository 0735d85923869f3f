package main

import (
	"image/color"
	"strconv"
	"strings"
)

// palette colors events without a recognized color of their own,
// cycling by position within the collection.
var palette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff},
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff},
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff},
}

// namedColors covers the color names commonly found in event tables.
// Names are matched after lowercasing during parse.
var namedColors = map[string]color.NRGBA{
	"red":    {R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
	"orange": {R: 0xd3, G: 0x54, B: 0x00, A: 0xff},
	"yellow": {R: 0xf1, G: 0xc4, B: 0x0f, A: 0xff},
	"green":  {R: 0x27, G: 0x8e, B: 0x43, A: 0xff},
	"teal":   {R: 0x16, G: 0xa0, B: 0x85, A: 0xff},
	"blue":   {R: 0x29, G: 0x80, B: 0xb9, A: 0xff},
	"purple": {R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
	"pink":   {R: 0xc2, G: 0x56, B: 0x8c, A: 0xff},
	"brown":  {R: 0x79, G: 0x55, B: 0x48, A: 0xff},
	"gray":   {R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff},
	"grey":   {R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff},
	"black":  {R: 0x2c, G: 0x3e, B: 0x50, A: 0xff},
}

// parseHexColor accepts #rgb and #rrggbb.
func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3:
		v, err := strconv.ParseUint(s, 16, 16)
		if err != nil {
			return color.NRGBA{}, false
		}
		r := uint8(v >> 8 & 0xf)
		g := uint8(v >> 4 & 0xf)
		b := uint8(v & 0xf)
		return color.NRGBA{R: r*16 + r, G: g*16 + g, B: b*16 + b, A: 0xff}, true
	case 6:
		v, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
	default:
		return color.NRGBA{}, false
	}
}

// eventColor resolves an event's color field to a drawable color,
// falling back to the palette by position for unknown or empty names.
func eventColor(name string, index int) color.NRGBA {
	if col, ok := namedColors[name]; ok {
		return col
	}
	if col, ok := parseHexColor(name); ok {
		return col
	}
	return palette[index%len(palette)]
}
