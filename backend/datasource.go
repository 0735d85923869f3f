package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/chronoline/timeline"
	"github.com/fsnotify/fsnotify"
)

// Session is one loaded set of event collections. Sessions backed by
// files re-emit whenever a source file changes on disk.
type Session struct {
	ID          string
	Collections []timeline.Collection
	Err         error
}

type Datasource struct {
	pool *stream.MutationPool[string, Session]
}

func NewDatasource(mutator *stream.Mutator) *Datasource {
	return &Datasource{
		pool: stream.NewMutationPool[string, Session](mutator),
	}
}

func (d *Datasource) SessionStream(ctx context.Context) <-chan map[string]*stream.Mutation[Session] {
	return d.pool.Stream(ctx)
}

// CurrentSessionStream follows the newest session, switching over
// whenever a newer one appears. Session IDs are UTC timestamps, so the
// lexicographically largest ID is the most recent.
func (d *Datasource) CurrentSessionStream(ctx context.Context) <-chan Session {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, state string, mutations map[string]*stream.Mutation[Session]) (<-chan Session, string) {
		newest := ""
		for id := range mutations {
			if id > newest {
				newest = id
			}
		}
		if newest == "" || newest == state {
			return nil, state
		}
		return mutations[newest].Stream(ctx), newest
	})
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// LoadFiles starts a session parsing the given event table files. The
// session watches the files and re-parses whenever one is written, so
// edits show up without restarting.
func (d *Datasource) LoadFiles(paths ...string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
	}
	id := generateSessionID()
	d.recordFileSession(id, paths)
	return id, nil
}

// LoadFromFile prompts for a file with the platform file picker. When
// the picker hands back a real file on disk, the session loads it by
// path so that change watching works; otherwise the data is read once
// as a stream.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile()
	if err != nil {
		return "", err
	}
	if f, ok := file.(*os.File); ok {
		name := f.Name()
		f.Close()
		return d.LoadFiles(name)
	}
	return d.LoadFromStream("events", file), nil
}

// LoadFromStream starts a session parsing one comma-delimited event
// table from a stream such as stdin. Events are appended to a single
// collection as complete rows arrive.
func (d *Datasource) LoadFromStream(title string, source io.ReadCloser) string {
	id := generateSessionID()
	d.recordStreamSession(id, title, source)
	return id
}

func loadCollections(paths []string, now time.Time) ([]timeline.Collection, error) {
	collections := make([]timeline.Collection, 0, len(paths))
	var errs error
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		collection, err := ReadCollection(f, CollectionTitle(path), CommaFor(path), now)
		errs = errors.Join(errs, err, f.Close())
		collections = append(collections, collection)
	}
	return collections, errs
}

func (d *Datasource) recordFileSession(sessionID string, paths []string) *stream.Mutation[Session] {
	box, _ := stream.Mutate(d.pool, sessionID, func(ctx context.Context) <-chan Session {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			session := Session{ID: sessionID}
			session.Collections, session.Err = loadCollections(paths, time.Now())
			out <- session

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				log.Printf("failed creating file watcher: %v", err)
				return
			}
			defer watcher.Close()
			for _, path := range paths {
				if err := watcher.Add(path); err != nil {
					log.Printf("failed watching %q: %v", path, err)
				}
			}
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-watcher.Events:
					if !ok {
						return
					}
					if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
						continue
					}
					session.Collections, session.Err = loadCollections(paths, time.Now())
					select {
					case <-ctx.Done():
						return
					case out <- session:
					}
				}
			}
		}()
		return out
	})
	return box
}

func (d *Datasource) recordStreamSession(sessionID, title string, source io.ReadCloser) *stream.Mutation[Session] {
	box, _ := stream.Mutate(d.pool, sessionID, func(ctx context.Context) <-chan Session {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			defer source.Close()
			session := Session{
				ID:          sessionID,
				Collections: []timeline.Collection{{Title: title}},
			}
			out <- session

			events := make(chan timeline.Event, 64)
			go readEventStream(source, events)
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-events:
					if !ok {
						return
					}
					session.Collections = appendStreamed(session.Collections, title, ev)
					select {
					case <-ctx.Done():
						return
					case out <- session:
					}
				}
			}
		}()
		return out
	})
	return box
}

// appendStreamed grows a streamed session's single collection by one
// event, building entirely fresh slices. Emitted sessions are consumed
// concurrently by UI frames, so an emission must never share a backing
// array with the one still growing here; fresh slices also give each
// emission a distinct identity, which is what downstream change
// detection keys on.
func appendStreamed(prev []timeline.Collection, title string, ev timeline.Event) []timeline.Collection {
	var current []timeline.Event
	if len(prev) > 0 {
		current = prev[0].Events
	}
	grown := make([]timeline.Event, len(current), len(current)+1)
	copy(grown, current)
	return []timeline.Collection{{Title: title, Events: append(grown, ev)}}
}

// readEventStream parses complete rows off a live stream and sends the
// resulting events. It closes the channel once the stream ends.
func readEventStream(source io.Reader, events chan<- timeline.Event) {
	defer close(events)
	csvReader := csv.NewReader(NewLineReader(source))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	headings, err := csvReader.Read()
	if err != nil {
		log.Printf("failed reading event stream headings: %v", err)
		return
	}
	cols, err := columnsFor(headings)
	if err != nil {
		log.Printf("cannot parse event stream: %v", err)
		return
	}
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("could not read event data: %v", err)
			}
			return
		}
		if ev, ok := cols.eventFrom(rec, time.Now()); ok {
			events <- ev
		}
	}
}
