package main

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	if col, ok := parseHexColor("#ff8000"); !ok || col != (color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}) {
		t.Errorf("expected #ff8000 to parse, got %v %v", col, ok)
	}
	if col, ok := parseHexColor("#f80"); !ok || col != (color.NRGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}) {
		t.Errorf("expected #f80 to expand per digit, got %v %v", col, ok)
	}
	if _, ok := parseHexColor("nope"); ok {
		t.Errorf("expected junk to fail")
	}
}

func TestEventColor(t *testing.T) {
	if eventColor("red", 0) != namedColors["red"] {
		t.Errorf("named colors must resolve from the table")
	}
	if eventColor("#2980b9", 0) != (color.NRGBA{R: 0x29, G: 0x80, B: 0xb9, A: 0xff}) {
		t.Errorf("hex colors must parse")
	}
	if eventColor("", 1) != palette[1] || eventColor("", 1+len(palette)) != palette[1] {
		t.Errorf("unknown colors must cycle the palette by index")
	}
}
