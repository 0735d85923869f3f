package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"git.sr.ht/~whereswaldon/chronoline/timeline"
)

// startFormats are tried in order when parsing instants. The list is
// fixed; rows whose start matches none of them are dropped.
var startFormats = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"2006",
}

// ongoingYear is the sentinel boundary for "ongoing" events: source
// data marks open-ended spans with an implausibly distant end date,
// and any end past this year is normalized to the current time.
const ongoingYear = 3000

func parseInstant(field string) (time.Time, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return time.Time{}, false
	}
	for _, format := range startFormats {
		if t, err := time.Parse(format, field); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReadCollection parses one delimiter-separated event table into a
// collection. The first record names the columns; "title" and "start"
// are required, "end" and "color" optional, all case-insensitive and
// in any order. Quoted fields and embedded delimiters follow the usual
// CSV rules.
//
// Rows whose start instant does not parse are dropped with a log line
// rather than failing the collection: showing the valid events beats
// showing nothing. An unparseable end demotes the row to a point
// event. An end dated past year 3000 means "ongoing" and becomes now.
func ReadCollection(r io.Reader, title string, comma rune, now time.Time) (timeline.Collection, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = comma
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	headings, err := csvReader.Read()
	if err != nil {
		return timeline.Collection{}, fmt.Errorf("failed reading event table headings: %w", err)
	}
	cols, err := columnsFor(headings)
	if err != nil {
		return timeline.Collection{}, err
	}
	collection := timeline.Collection{Title: title}
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return collection, fmt.Errorf("failed reading event record: %w", err)
		}
		if ev, ok := cols.eventFrom(rec, now); ok {
			collection.Events = append(collection.Events, ev)
		}
	}
	return collection, nil
}

// columns maps the recognized headings to field indices. -1 marks an
// absent optional column.
type columns struct {
	title int
	start int
	end   int
	color int
}

func columnsFor(headings []string) (columns, error) {
	cols := columns{title: -1, start: -1, end: -1, color: -1}
	for i, heading := range headings {
		switch strings.ToLower(strings.TrimSpace(heading)) {
		case "title":
			cols.title = i
		case "start":
			cols.start = i
		case "end":
			cols.end = i
		case "color":
			cols.color = i
		}
	}
	if cols.title < 0 || cols.start < 0 {
		return cols, fmt.Errorf("event table must have title and start columns, got %q", headings)
	}
	return cols, nil
}

func (c columns) field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func (c columns) eventFrom(rec []string, now time.Time) (timeline.Event, bool) {
	start, ok := parseInstant(c.field(rec, c.start))
	if !ok {
		log.Printf("dropping event row with unparseable start %q", c.field(rec, c.start))
		return timeline.Event{}, false
	}
	ev := timeline.Event{
		Title: c.field(rec, c.title),
		Start: start.UnixMilli(),
		Color: strings.ToLower(c.field(rec, c.color)),
	}
	if end, ok := parseInstant(c.field(rec, c.end)); ok {
		if end.Year() > ongoingYear {
			end = now
		}
		ev.End = end.UnixMilli()
		ev.HasEnd = true
	}
	return ev, true
}

// CommaFor picks the field delimiter from the file extension: tab for
// .tsv, comma otherwise.
func CommaFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// CollectionTitle derives a collection title from a file path: the
// base name without its extension.
func CollectionTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
